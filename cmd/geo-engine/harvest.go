package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/geo-engine/internal/harvest"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Collect candidate questions without generating pages",
	Long: `Harvest queries the configured question source and prints the
de-duplicated questions, one per line. With --save the list is also written
to a YAML question file that later runs can replay with source "file".`,
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().String("save", "", "write the harvested questions to this YAML file")

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	source, err := harvest.NewSource(cfg.Harvest, nil, logger)
	if err != nil {
		return err
	}
	questions, err := source.Questions(cmd.Context())
	if err != nil {
		return err
	}
	for _, q := range questions {
		fmt.Fprintln(cmd.OutOrStdout(), q)
	}

	save, _ := cmd.Flags().GetString("save")
	if save == "" {
		return nil
	}
	if err := harvest.WriteQuestionFile(save, source.Name(), questions, time.Now()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d question(s) to %s\n", len(questions), save)
	return nil
}

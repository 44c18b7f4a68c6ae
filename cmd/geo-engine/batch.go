package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runBatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	res, err := a.batch(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d page(s) in %s (run %s)\n",
		len(res.Pages), cfg.Publish.OutputDir, res.ID)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Refresh the homepage and regenerate comparison and specialty pages",
	Long: `Rewrite updates the homepage in place: growth statistics, a seasonal
FAQ item, the weekly testimonial, schema dates, the review count and the meta
description. It then regenerates the competitor comparison pages and the
specialty landing pages.`,
	RunE: runRewrite,
}

func init() {
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	res, err := a.rewrite(cmd.Context())
	if err != nil {
		return err
	}
	state := "unchanged"
	if res.Changed {
		state = "updated"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Homepage %s %s, %d companion page(s) written\n",
		cfg.Site.IndexPath, state, len(res.Pages))
	return nil
}

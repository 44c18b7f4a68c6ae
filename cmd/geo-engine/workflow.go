package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/geo-engine/internal/workflow"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Write a GitHub Actions workflow that runs geo-engine on a schedule",
	Long: `Workflow emits a GitHub Actions workflow that checks out the
repository, runs the batch, and commits the generated pages. The default
schedule runs twice a day. Use --stdout to print instead of writing.`,
	RunE: runWorkflow,
}

func init() {
	workflowCmd.Flags().String("output", workflow.DefaultPath, "workflow file to write")
	workflowCmd.Flags().String("cron", "", "cron schedule (default: every 12 hours)")
	workflowCmd.Flags().Bool("stdout", false, "print the workflow instead of writing it")

	rootCmd.AddCommand(workflowCmd)
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	opts := workflow.DefaultOptions(cfg.Publish)
	if cron, _ := cmd.Flags().GetString("cron"); cron != "" {
		opts.Cron = cron
	}
	data, err := workflow.Generate(opts)
	if err != nil {
		return err
	}

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating workflow directory: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing workflow: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
	return nil
}

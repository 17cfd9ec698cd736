package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/checks"
	"github.com/vertti/repocheck/pkg/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered checks with their weights and categories",
	Args:  cobra.NoArgs,
	RunE:  runListCommand,
}

func init() {
	listCmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
	rootCmd.AddCommand(listCmd)
}

func runListCommand(cmd *cobra.Command, _ []string) error {
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	entries := checks.Default.Entries()
	metas := make([]check.Metadata, len(entries))
	for i, e := range entries {
		metas[i] = e.Metadata
	}
	return output.NewPrinter(cmd.OutOrStdout(), format).PrintChecks(metas)
}

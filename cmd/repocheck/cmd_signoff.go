package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vertti/repocheck/pkg/output"
	"github.com/vertti/repocheck/pkg/signoff"
)

var signoffUseGit bool

var signoffCmd = &cobra.Command{
	Use:   "signoff [path]",
	Short: "Check that recent commits carry a DCO sign-off",
	Long: `Walk the last 20 commits from HEAD and check that every non-merge commit
carries a Signed-off-by trailer. The walk stops at the first unsigned commit.

Examples:
  repocheck signoff                      # Last 20 commits of the current repository
  repocheck signoff ./project
  repocheck signoff --git                # Read history with the git executable`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSignoffCommand,
}

func init() {
	signoffCmd.Flags().BoolVar(&signoffUseGit, "git", false,
		"read history with the git executable instead of the built-in reader")
	signoffCmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
	rootCmd.AddCommand(signoffCmd)
}

func runSignoffCommand(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	a := &signoff.Analyzer{MaxCommits: signoff.DefaultMaxCommits}
	if signoffUseGit {
		a.Open = signoff.OpenCLI(&signoff.RealGitRunner{}, signoff.DefaultMaxCommits)
	}
	v, err := a.Analyze(root)
	if err != nil {
		return err
	}

	if err := output.NewPrinter(cmd.OutOrStdout(), format).PrintVerdict(v); err != nil {
		return err
	}
	if !v.Passed {
		return ErrChecksFailed
	}
	return nil
}

package main

import (
	"errors"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/checks"
	"github.com/vertti/repocheck/pkg/linter"
	"github.com/vertti/repocheck/pkg/logging"
	"github.com/vertti/repocheck/pkg/output"
	"github.com/vertti/repocheck/pkg/scorecard"
)

// ErrChecksFailed is returned in strict mode when any check fails.
var ErrChecksFailed = errors.New("checks failed")

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Run all checks against a repository",
	Long: `Run all registered checks against the repository at path (default: .).

Examples:
  repocheck check                                   # Local checks on the current directory
  repocheck check ./project --format json           # JSON report
  repocheck check --strict                          # Exit 1 if any check fails
  repocheck check --mode remote \
    --repo-url https://github.com/org/repo \
    --metadata repo.json                            # Add platform metadata and scorecard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckCommand,
}

func init() {
	checkCmd.Flags().String("mode", "local", "evaluation mode (local, remote)")
	checkCmd.Flags().String("repo-url", "", "repository URL, required in remote mode")
	checkCmd.Flags().String("metadata", "", "platform metadata snapshot (JSON), remote mode only")
	checkCmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
	checkCmd.Flags().Bool("strict", false, "exit with an error if any check fails")
	checkCmd.Flags().Int("workers", linter.DefaultWorkers, "checks evaluated concurrently")
	checkCmd.Flags().String("scorecard-binary", scorecard.DefaultBinary, "scorecard executable")
	checkCmd.Flags().Duration("scorecard-timeout", scorecard.DefaultTimeout, "scorecard run timeout")
	rootCmd.AddCommand(checkCmd)
}

func runCheckCommand(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	if err := cfg.ValidateCheck(); err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	logger := logging.FromContext(cmd.Context())
	mode := cfg.CheckMode()

	var sc linter.ScorecardSource
	if mode == check.ModeRemote {
		if cfg.GitHubToken == "" {
			logger.Warn("no GitHub token configured, scorecard requests may be rate limited")
		}
		sc = &scorecard.Client{
			Binary:  cfg.Scorecard.Binary,
			Token:   cfg.GitHubToken,
			Checks:  checks.Default.ExternalNames(),
			Timeout: cfg.Scorecard.Timeout,
			Runner:  &scorecard.RealRunner{},
			Logger:  logger,
		}
	}

	opts := linter.Options{
		Root:         root,
		Mode:         mode,
		RepoURL:      cfg.RepoURL,
		MetadataFile: cfg.MetadataFile,
		Workers:      cfg.Workers,
	}
	if cfg.Scorecard.MinVersion != "" {
		opts.MinScorecardVersion = semver.MustParse(cfg.Scorecard.MinVersion)
	}

	report, err := linter.New(checks.Default, sc, logger).Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if err := output.NewPrinter(cmd.OutOrStdout(), format).PrintReport(report); err != nil {
		return err
	}
	if cfg.Strict && !report.AllPassed() {
		return ErrChecksFailed
	}
	return nil
}

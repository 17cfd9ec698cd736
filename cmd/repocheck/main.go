package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/vertti/repocheck/pkg/config"
	"github.com/vertti/repocheck/pkg/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	configFile string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "repocheck",
	Short: "Evaluate a repository against open-source best-practice checks",
	Long: `Repocheck inspects a repository clone for best-practice evidence such as a
security policy, issue and pull request templates, and DCO sign-offs. In remote
mode it also consults platform metadata and the OpenSSF scorecard tool.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: .repocheck.yaml found from the repository upwards)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
}

// setup loads the configuration and installs the logger in the command
// context. The first positional argument, if any, is the repository
// root and the starting point for config file discovery.
func setup(cmd *cobra.Command, args []string) error {
	startDir := "."
	if len(args) > 0 {
		startDir = args[0]
	}

	file, err := config.FindFile(startDir, configFile)
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return err
	}

	cfg, err = config.Load(file, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: logging.Format(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	if file != "" {
		logger.WithField("file", file).Debug("loaded config")
	}
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	return nil
}

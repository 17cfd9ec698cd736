// Package config loads repocheck settings from defaults, an optional
// YAML file, REPOCHECK_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vertti/repocheck/pkg/check"
)

const EnvPrefix = "REPOCHECK"

// ErrInvalidConfig is returned when loaded settings are inconsistent.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved configuration.
type Config struct {
	Mode         string          `mapstructure:"mode"`
	RepoURL      string          `mapstructure:"repo_url"`
	GitHubToken  string          `mapstructure:"github_token"`
	MetadataFile string          `mapstructure:"metadata_file"`
	Format       string          `mapstructure:"format"`
	LogLevel     string          `mapstructure:"log_level"`
	LogFormat    string          `mapstructure:"log_format"`
	Strict       bool            `mapstructure:"strict"`
	Workers      int             `mapstructure:"workers"`
	Scorecard    ScorecardConfig `mapstructure:"scorecard"`
}

// ScorecardConfig configures the external scorecard tool.
type ScorecardConfig struct {
	Binary     string        `mapstructure:"binary"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MinVersion string        `mapstructure:"min_version"`
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"mode":              "mode",
	"repo-url":          "repo_url",
	"metadata":          "metadata_file",
	"format":            "format",
	"log-level":         "log_level",
	"log-format":        "log_format",
	"strict":            "strict",
	"workers":           "workers",
	"scorecard-binary":  "scorecard.binary",
	"scorecard-timeout": "scorecard.timeout",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", string(check.ModeLocal))
	v.SetDefault("format", "text")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("strict", false)
	v.SetDefault("workers", 4)
	v.SetDefault("scorecard.binary", "scorecard")
	v.SetDefault("scorecard.timeout", 10*time.Minute)
	v.SetDefault("scorecard.min_version", "4.0.0")
}

// Load resolves the configuration. file may be empty; flags may be nil.
// Only flags listed in FlagKeys are bound.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("github_token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, err
	}

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings for consistency. Requirements that only
// apply to a check run are left to ValidateCheck.
func (c *Config) Validate() error {
	if _, err := check.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.Scorecard.Timeout <= 0 {
		return fmt.Errorf("%w: scorecard.timeout must be positive", ErrInvalidConfig)
	}
	if c.Scorecard.MinVersion != "" {
		if _, err := semver.NewVersion(c.Scorecard.MinVersion); err != nil {
			return fmt.Errorf("%w: scorecard.min_version: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ValidateCheck checks the settings a check run needs on top of Validate.
func (c *Config) ValidateCheck() error {
	if c.CheckMode() == check.ModeRemote && c.RepoURL == "" {
		return fmt.Errorf("%w: remote mode requires repo_url", ErrInvalidConfig)
	}
	return nil
}

// CheckMode returns the parsed evaluation mode. Call Validate first.
func (c *Config) CheckMode() check.Mode {
	mode, _ := check.ParseMode(c.Mode)
	return mode
}

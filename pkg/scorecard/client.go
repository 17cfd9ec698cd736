// Package scorecard runs the OpenSSF scorecard tool against a repository
// and exposes its report to checks.
package scorecard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/sirupsen/logrus"

	"github.com/vertti/repocheck/pkg/logging"
)

const (
	// DefaultBinary is the scorecard executable looked up in PATH.
	DefaultBinary = "scorecard"

	// DefaultTimeout bounds a single scorecard run.
	DefaultTimeout = 10 * time.Minute
)

// ErrToolFailed is returned when the scorecard process exits unsuccessfully.
var ErrToolFailed = errors.New("scorecard failed")

// Client invokes the scorecard tool.
type Client struct {
	Binary  string        // executable name (default: scorecard)
	Token   string        // passed as GITHUB_TOKEN
	Checks  []string      // sub-checks to compute, in order
	Timeout time.Duration // per run (default: 10m)
	Runner  Runner
	Environ func() []string // inherited environment (default: os.Environ)
	Logger  logrus.FieldLogger
}

func (c *Client) binary() string {
	if c.Binary == "" {
		return DefaultBinary
	}
	return c.Binary
}

func (c *Client) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return logging.Component(c.Logger, "scorecard")
}

// Args returns the command-line arguments used to score repoURL.
func (c *Client) Args(repoURL string) []string {
	return []string{
		"--repo=" + repoURL,
		"--format=json",
		"--show-details",
		"--checks=" + strings.Join(c.Checks, ","),
	}
}

// Env returns the process environment: the inherited one without any
// GITHUB_REF or GITHUB_TOKEN, plus GITHUB_TOKEN set to the client token.
// GITHUB_REF is dropped so the tool does not infer a ref from CI.
func (c *Client) Env() []string {
	environ := c.Environ
	if environ == nil {
		environ = os.Environ
	}

	var env []string
	for _, kv := range environ() {
		if strings.HasPrefix(kv, "GITHUB_REF=") || strings.HasPrefix(kv, "GITHUB_TOKEN=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, "GITHUB_TOKEN="+c.Token)
}

// Run scores repoURL and decodes the report. A non-zero exit or
// undecodable output is returned as an error; nothing is retried.
func (c *Client) Run(ctx context.Context, repoURL string) (*Report, error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := c.logger().WithField("repo", repoURL)
	log.Debugf("running %s for checks %s", c.binary(), strings.Join(c.Checks, ","))

	start := time.Now()
	stdout, stderr, err := c.Runner.RunCommandContext(ctx, c.Env(), c.binary(), c.Args(repoURL)...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %s", ErrToolFailed, timeout)
		}
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrToolFailed, msg)
	}

	report, err := Decode(stdout)
	if err != nil {
		return nil, err
	}
	log.WithField("duration", time.Since(start).Round(time.Millisecond)).
		Debugf("scorecard returned %d checks", len(report.Checks))
	return report, nil
}

// Outcome runs the tool once and captures either the report or the failure.
func (c *Client) Outcome(ctx context.Context, repoURL string) Outcome {
	report, err := c.Run(ctx, repoURL)
	if err != nil {
		return Failed(err)
	}
	return Outcome{Report: report}
}

var versionRegex = regexp.MustCompile(`v?\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z.-]+)?`)

// ToolVersion runs `scorecard version` and extracts the reported version.
func (c *Client) ToolVersion(ctx context.Context) (*semver.Version, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	stdout, stderr, err := c.Runner.RunCommandContext(ctx, c.Env(), c.binary(), "version")
	if err != nil {
		return nil, fmt.Errorf("%w: version: %v", ErrToolFailed, err)
	}
	out := string(stdout) + string(stderr)

	// Output is a block of "Key: value" lines; prefer the GitVersion line.
	for _, line := range strings.Split(out, "\n") {
		if key, value, ok := strings.Cut(line, ":"); ok && strings.TrimSpace(key) == "GitVersion" {
			out = value
			break
		}
	}
	match := versionRegex.FindString(out)
	if match == "" {
		return nil, fmt.Errorf("no version found in scorecard output %q", strings.TrimSpace(out))
	}
	return semver.NewVersion(match)
}

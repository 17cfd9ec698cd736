// Package linter evaluates a repository against a registry of checks.
//
// It builds the check.Input once, runs the scorecard tool at most once,
// then evaluates every registered check concurrently against the same
// read-only input.
package linter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/github"
	"github.com/vertti/repocheck/pkg/logging"
	"github.com/vertti/repocheck/pkg/registry"
	"github.com/vertti/repocheck/pkg/scorecard"
)

// DefaultWorkers bounds concurrent check evaluation when Options.Workers is unset.
const DefaultWorkers = 4

var (
	// ErrRepositoryRoot is returned when the repository root cannot be used.
	ErrRepositoryRoot = errors.New("invalid repository root")
	// ErrRepositoryURL is returned when remote mode has no repository URL.
	ErrRepositoryURL = errors.New("remote mode requires a repository URL")
)

// ScorecardSource produces the scorecard outcome for a repository.
// *scorecard.Client implements it.
type ScorecardSource interface {
	Outcome(ctx context.Context, repoURL string) scorecard.Outcome
	ToolVersion(ctx context.Context) (*semver.Version, error)
}

// Options describes one evaluation.
type Options struct {
	Root         string
	Mode         check.Mode
	RepoURL      string // required in remote mode
	MetadataFile string // platform metadata snapshot, remote mode only
	Workers      int

	MinScorecardVersion *semver.Version // nil skips the version probe
}

// Linter runs the checks of a registry.
type Linter struct {
	Registry  *registry.Registry
	Scorecard ScorecardSource // nil leaves scorecard checks without a report
	Logger    logrus.FieldLogger
}

// New returns a Linter over reg.
func New(reg *registry.Registry, sc ScorecardSource, logger logrus.FieldLogger) *Linter {
	return &Linter{Registry: reg, Scorecard: sc, Logger: logger}
}

func (l *Linter) logger() logrus.FieldLogger {
	if l.Logger == nil {
		return logging.Discard()
	}
	return logging.Component(l.Logger, "linter")
}

// Run evaluates every registered check. Evidence-source failures are
// reported per check; only an unusable root, a cancelled context or a
// check returning an error aborts the evaluation.
func (l *Linter) Run(ctx context.Context, opts Options) (*Report, error) {
	log := l.logger()

	abs, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryRoot, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRepositoryRoot, abs)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryRoot, err)
	}
	defer func() { _ = root.Close() }()

	mode := opts.Mode
	if mode == "" {
		mode = check.ModeLocal
	}
	in := &check.Input{Root: abs, FS: root.FS(), Mode: mode}

	if !in.Local() {
		if opts.RepoURL == "" {
			return nil, ErrRepositoryURL
		}
		in.Remote = l.loadMetadata(log, opts.MetadataFile)
		in.Scorecard = l.runScorecard(ctx, log, opts)
	}

	log.WithFields(logrus.Fields{"root": abs, "mode": mode}).Debugf("evaluating %d checks", l.Registry.Len())

	results, err := l.evaluate(ctx, log, in, opts.Workers)
	if err != nil {
		return nil, err
	}

	report := newReport(abs, mode, results)
	log.WithFields(logrus.Fields{"passed": report.Passed, "failed": report.Failed}).Info("evaluation finished")
	return report, nil
}

func (l *Linter) loadMetadata(log logrus.FieldLogger, path string) github.Metadata {
	if path == "" {
		log.Debug("no platform metadata snapshot configured")
		return nil
	}
	snapshot, err := github.Load(path)
	if err != nil {
		log.WithError(err).Warn("ignoring platform metadata")
		return nil
	}
	return snapshot
}

func (l *Linter) runScorecard(ctx context.Context, log logrus.FieldLogger, opts Options) scorecard.Outcome {
	if l.Scorecard == nil {
		return scorecard.Outcome{}
	}

	if opts.MinScorecardVersion != nil {
		v, err := l.Scorecard.ToolVersion(ctx)
		switch {
		case err != nil:
			log.WithError(err).Debug("could not determine scorecard version")
		case v.LessThan(opts.MinScorecardVersion):
			log.Warnf("scorecard %s is older than the supported minimum %s", v, opts.MinScorecardVersion)
		}
	}

	outcome := l.Scorecard.Outcome(ctx, opts.RepoURL)
	if outcome.Err != nil {
		log.WithError(outcome.Err).Warn("scorecard unavailable, scorecard checks will fail")
	}
	return outcome
}

func (l *Linter) evaluate(ctx context.Context, log logrus.FieldLogger, in *check.Input, workers int) ([]Result, error) {
	if workers < 1 {
		workers = DefaultWorkers
	}
	entries := l.Registry.Entries()
	results := make([]Result, len(entries))

	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(workers)
	for i, e := range entries {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := e.Check.Run(in)
			if err != nil {
				return fmt.Errorf("check %s: %w", e.Metadata.ID, err)
			}
			log.WithFields(logrus.Fields{"check": e.Metadata.ID, "passed": out.Passed}).Debug("check evaluated")
			results[i] = Result{ID: e.Metadata.ID, Metadata: e.Metadata, Output: out}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

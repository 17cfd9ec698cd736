package linter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/checks"
	"github.com/vertti/repocheck/pkg/registry"
	"github.com/vertti/repocheck/pkg/scorecard"
	"github.com/vertti/repocheck/pkg/testutil"
)

type mockScorecard struct {
	OutcomeFunc     func(ctx context.Context, repoURL string) scorecard.Outcome
	ToolVersionFunc func(ctx context.Context) (*semver.Version, error)
	runs            atomic.Int32
}

func (m *mockScorecard) Outcome(ctx context.Context, repoURL string) scorecard.Outcome {
	m.runs.Add(1)
	return m.OutcomeFunc(ctx, repoURL)
}

func (m *mockScorecard) ToolVersion(ctx context.Context) (*semver.Version, error) {
	if m.ToolVersionFunc == nil {
		return semver.MustParse("5.0.0"), nil
	}
	return m.ToolVersionFunc(ctx)
}

func TestRun_LocalMode(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		".gitignore":                       "bin/\n",
		"SECURITY.md":                      "Report to security@example.com\n",
		"README.md":                        "# Project\n\n## Quickstart\n",
		".github/PULL_REQUEST_TEMPLATE.md": "## Changes\n",
	})
	sc := &mockScorecard{OutcomeFunc: func(context.Context, string) scorecard.Outcome {
		t.Error("scorecard run in local mode")
		return scorecard.Outcome{}
	}}

	report, err := New(checks.Default, sc, nil).Run(context.Background(), Options{Root: root, Mode: check.ModeLocal})
	require.NoError(t, err)

	require.Len(t, report.Results, checks.Default.Len())
	assert.Equal(t, checks.Default.IDs()[0], report.Results[0].ID, "results keep registry order")

	passed := map[check.ID]string{}
	for _, r := range report.Results {
		if r.Output.Passed {
			passed[r.ID] = r.Output.URL
		}
	}
	assert.Equal(t, map[check.ID]string{
		checks.GitignoreID:      ".gitignore",
		checks.SecurityPolicyID: "SECURITY.md",
		checks.GetStartedID:     "",
		checks.PRTemplateID:     ".github/PULL_REQUEST_TEMPLATE.md",
	}, passed)
	assert.Equal(t, 4, report.Passed)
	assert.Equal(t, checks.Default.Len()-4, report.Failed)
	assert.False(t, report.AllPassed())
	assert.Equal(t, int32(0), sc.runs.Load())
}

func TestRun_RemoteMode(t *testing.T) {
	root := t.TempDir()
	testutil.InitRepo(t, root, "unsigned commit")
	metadata := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, os.WriteFile(metadata, []byte(`{
		"data": {"repository": {
			"securityPolicyUrl": "https://github.com/org/repo/security/policy",
			"defaultBranchRef": {"branchProtectionRule": {"requiredStatusCheckContexts": ["DCO"]}}
		}}
	}`), 0o600))

	var gotURL string
	sc := &mockScorecard{OutcomeFunc: func(_ context.Context, url string) scorecard.Outcome {
		gotURL = url
		return scorecard.Outcome{Report: &scorecard.Report{Checks: []scorecard.CheckResult{
			{Name: "Maintained", Score: 10, DocumentationURL: "https://scorecard.dev/maintained"},
		}}}
	}}

	report, err := New(checks.Default, sc, nil).Run(context.Background(), Options{
		Root:         root,
		Mode:         check.ModeRemote,
		RepoURL:      "https://github.com/org/repo",
		MetadataFile: metadata,
		Workers:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), sc.runs.Load(), "scorecard runs once per evaluation")
	assert.Equal(t, "https://github.com/org/repo", gotURL)

	sec, ok := report.Get(checks.SecurityPolicyID)
	require.True(t, ok)
	assert.True(t, sec.Output.Passed)
	assert.Equal(t, "https://github.com/org/repo/security/policy", sec.Output.URL)

	dco, _ := report.Get(checks.DCOID)
	assert.True(t, dco.Output.Passed, "status check fallback")

	maintained, _ := report.Get(checks.MaintainedID)
	assert.True(t, maintained.Output.Passed)
	assert.Equal(t, 3, maintained.Metadata.Weight)

	review, _ := report.Get(checks.CodeReviewID)
	assert.False(t, review.Output.Passed)
	assert.NoError(t, review.Output.Err)
}

func TestRun_ScorecardFailure(t *testing.T) {
	failure := errors.Join(scorecard.ErrToolFailed, errors.New("rate limited"))
	sc := &mockScorecard{
		OutcomeFunc:     func(context.Context, string) scorecard.Outcome { return scorecard.Failed(failure) },
		ToolVersionFunc: func(context.Context) (*semver.Version, error) { return semver.MustParse("3.2.0"), nil },
	}

	report, err := New(checks.Default, sc, nil).Run(context.Background(), Options{
		Root:                t.TempDir(),
		Mode:                check.ModeRemote,
		RepoURL:             "https://github.com/org/repo",
		MinScorecardVersion: semver.MustParse("4.0.0"),
	})
	require.NoError(t, err)

	for _, id := range []check.ID{checks.MaintainedID, checks.CodeReviewID, checks.TokenPermissionsID} {
		r, ok := report.Get(id)
		require.True(t, ok)
		assert.False(t, r.Output.Passed)
		assert.ErrorIs(t, r.Output.Err, scorecard.ErrToolFailed)
	}
}

func TestRun_Errors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{"missing root", Options{Root: filepath.Join(t.TempDir(), "missing")}, ErrRepositoryRoot},
		{"root is a file", Options{Root: file}, ErrRepositoryRoot},
		{"remote without url", Options{Root: t.TempDir(), Mode: check.ModeRemote}, ErrRepositoryURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(checks.Default, nil, nil).Run(context.Background(), tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRun_CheckError(t *testing.T) {
	boom := errors.New("boom")
	reg := registry.MustNew(
		registry.Entry{
			Metadata: check.Metadata{ID: "ok", Weight: 1, Categories: []check.Category{check.CategoryCode}},
			Check:    check.Func(func(*check.Input) (check.Output, error) { return check.Pass(), nil }),
		},
		registry.Entry{
			Metadata: check.Metadata{ID: "broken", Weight: 1, Categories: []check.Category{check.CategoryCode}},
			Check:    check.Func(func(*check.Input) (check.Output, error) { return check.Output{}, boom }),
		},
	)

	_, err := New(reg, nil, nil).Run(context.Background(), Options{Root: t.TempDir()})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "check broken")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(checks.Default, nil, nil).Run(ctx, Options{Root: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDigest(t *testing.T) {
	a := []Result{{ID: "x", Output: check.PassWithURL("README.md")}, {ID: "y", Output: check.NotPassed()}}
	b := []Result{{ID: "x", Output: check.PassWithURL("README.md")}, {ID: "y", Output: check.Pass()}}

	assert.Equal(t, digest(a), digest(a))
	assert.NotEqual(t, digest(a), digest(b))
	assert.Len(t, digest(a), 64)
}

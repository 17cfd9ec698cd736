package signoff

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/repocheck/pkg/testutil"
)

// mockHistory yields entries newest first. An entry with a non-nil err
// simulates an unreadable commit.
type mockHistory struct {
	entries []entry
	pos     int
	closed  bool
}

type entry struct {
	msg string
	err error
}

func (m *mockHistory) Next() (string, error) {
	if m.pos >= len(m.entries) {
		return "", io.EOF
	}
	e := m.entries[m.pos]
	m.pos++
	return e.msg, e.err
}

func (m *mockHistory) Close() { m.closed = true }

func msgs(messages ...string) []entry {
	out := make([]entry, len(messages))
	for i, m := range messages {
		out[i] = entry{msg: m}
	}
	return out
}

func signed(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = testutil.SignedOff(fmt.Sprintf("change %d", i))
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		msg  string
		want Class
	}{
		{"Merge pull request #42 from org/branch\n\nFeature", Merge},
		{"Merge branch 'main' into feature", Merge},
		{"Fix bug\n\nSigned-off-by: A <a@example.com>", Signed},
		{"Signed-off-by: A <a@example.com>", Signed},
		{"Fix bug", Unsigned},
		{"Fix bug\n\nsigned-off-by: A <a@example.com>", Unsigned},
		{"Fix bug\n\n  Signed-off-by: A <a@example.com>", Unsigned},
		{"Fix bug mentioning Signed-off-by: inline", Unsigned},
		{"merge pull request #1", Unsigned},
		{"Revert \"Merge pull request #3\"", Unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.msg))
		})
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	merge := "Merge pull request #1 from org/feature"
	tests := []struct {
		name        string
		entries     []entry
		max         int
		wantPassed  bool
		wantVisited int
		wantMerges  int
		wantSigned  int
	}{
		{"all signed", msgs(signed(5)...), 0, true, 5, 0, 5},
		{"signed with merges excluded", msgs(signed(2)[0], merge, "Merge branch 'main'", signed(1)[0]), 0, true, 4, 2, 2},
		{"only merges", msgs(merge, merge), 0, true, 2, 2, 0},
		{"unsigned at tip", msgs("WIP", signed(1)[0]), 0, false, 1, 0, 0},
		{"unsigned in middle", msgs(signed(1)[0], "no footer", signed(1)[0]), 0, false, 2, 0, 1},
		{"unsigned at window end", msgs(append(signed(19), "no footer")...), 0, false, 20, 0, 19},
		{"unsigned beyond window", msgs(append(signed(20), "no footer")...), 0, true, 20, 0, 20},
		{"custom bound", msgs(append(signed(3), "no footer")...), 3, true, 3, 0, 3},
		{"empty history", nil, 0, true, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &mockHistory{entries: tt.entries}
			a := &Analyzer{MaxCommits: tt.max, Open: func(string) (History, error) { return h, nil }}

			v, err := a.Analyze("/repo")

			require.NoError(t, err)
			assert.Equal(t, tt.wantPassed, v.Passed)
			assert.Equal(t, tt.wantVisited, v.Visited)
			assert.Equal(t, tt.wantMerges, v.Merges)
			assert.Equal(t, tt.wantSigned, v.Signed)
			assert.True(t, h.closed)
		})
	}
}

func TestAnalyzer_UnsignedReported(t *testing.T) {
	h := &mockHistory{entries: msgs(signed(1)[0], "Add feature\n\nlong body")}
	a := &Analyzer{Open: func(string) (History, error) { return h, nil }}

	v, err := a.Analyze("/repo")

	require.NoError(t, err)
	assert.False(t, v.Passed)
	assert.Equal(t, "Add feature", v.Unsigned)
}

func TestAnalyzer_ReadErrorsCountTowardBound(t *testing.T) {
	readErr := errors.New("object not found")
	entries := []entry{{err: readErr}, {err: readErr}}
	entries = append(entries, msgs(signed(2)...)...)
	entries = append(entries, entry{msg: "unsigned, outside the window"})
	h := &mockHistory{entries: entries}
	a := &Analyzer{MaxCommits: 4, Open: func(string) (History, error) { return h, nil }}

	v, err := a.Analyze("/repo")

	require.NoError(t, err)
	assert.True(t, v.Passed)
	assert.Equal(t, 4, v.Consumed)
	assert.Equal(t, 2, v.Skipped)
	assert.Equal(t, 2, v.Visited)
	assert.Equal(t, 2, v.Signed)
}

func TestAnalyzer_OpenFailure(t *testing.T) {
	openErr := fmt.Errorf("%w: /repo: repository does not exist", ErrRepositoryAccess)
	a := &Analyzer{Open: func(string) (History, error) { return nil, openErr }}

	_, err := a.Analyze("/repo")

	assert.ErrorIs(t, err, ErrRepositoryAccess)
}

func TestAnalyzer_RestartsEachCall(t *testing.T) {
	opened := 0
	a := &Analyzer{Open: func(string) (History, error) {
		opened++
		return &mockHistory{entries: msgs(signed(3)...)}, nil
	}}

	first, err := a.Analyze("/repo")
	require.NoError(t, err)
	second, err := a.Analyze("/repo")
	require.NoError(t, err)

	assert.Equal(t, 2, opened)
	assert.Equal(t, first, second)
}

func TestAnalyzer_GitRepository(t *testing.T) {
	t.Run("all signed with merge", func(t *testing.T) {
		dir := t.TempDir()
		testutil.InitRepo(t, dir,
			testutil.SignedOff("initial"),
			testutil.SignedOff("feature"),
			"Merge pull request #2 from org/feature",
		)

		v, err := (&Analyzer{}).Analyze(dir)

		require.NoError(t, err)
		assert.True(t, v.Passed)
		assert.Equal(t, 3, v.Visited)
		assert.Equal(t, 1, v.Merges)
	})

	t.Run("one unsigned commit", func(t *testing.T) {
		dir := t.TempDir()
		testutil.InitRepo(t, dir,
			testutil.SignedOff("initial"),
			"quick fix",
			testutil.SignedOff("later"),
		)

		v, err := (&Analyzer{}).Analyze(dir)

		require.NoError(t, err)
		assert.False(t, v.Passed)
		assert.Equal(t, "quick fix", v.Unsigned)
	})

	t.Run("only the most recent 20 of 25 are inspected", func(t *testing.T) {
		dir := t.TempDir()
		messages := append([]string{"unsigned root"}, signed(24)...)
		testutil.InitRepo(t, dir, messages...)

		v, err := (&Analyzer{}).Analyze(dir)

		require.NoError(t, err)
		assert.True(t, v.Passed)
		assert.Equal(t, DefaultMaxCommits, v.Visited)
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := (&Analyzer{}).Analyze(t.TempDir())
		assert.ErrorIs(t, err, ErrRepositoryAccess)
	})

	t.Run("repository without commits", func(t *testing.T) {
		dir := t.TempDir()
		testutil.InitRepo(t, dir)

		_, err := (&Analyzer{}).Analyze(dir)
		assert.ErrorIs(t, err, ErrRepositoryAccess)
	})
}

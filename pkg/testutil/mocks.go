package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// ContainsDetail checks if any detail string contains the given substring.
func ContainsDetail(details []string, substr string) bool {
	for _, d := range details {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}

// WriteFiles creates files under root. Keys are slash-separated relative
// paths; parent directories are created as needed.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

// InitRepo creates a git repository at dir with one empty commit per
// message, oldest first, so the last message ends up at HEAD.
func InitRepo(t *testing.T, dir string, messages ...string) {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	when := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, msg := range messages {
		sig := &object.Signature{Name: "Test Author", Email: "author@example.com", When: when.Add(time.Duration(i) * time.Minute)}
		_, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig, AllowEmptyCommits: true})
		require.NoError(t, err)
	}
}

// SignedOff returns a commit message with a sign-off footer.
func SignedOff(subject string) string {
	return subject + "\n\nSigned-off-by: Test Author <author@example.com>\n"
}

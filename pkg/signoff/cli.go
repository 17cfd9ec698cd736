package signoff

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// GitRunner abstracts git command execution for testability.
type GitRunner interface {
	// Log returns up to max commit messages reachable from HEAD of the
	// repository at root, newest first, each terminated by a NUL byte.
	Log(root string, max int) ([]byte, error)
}

// RealGitRunner executes the git binary found in PATH.
type RealGitRunner struct{}

func (r *RealGitRunner) Log(root string, max int) ([]byte, error) {
	cmd := exec.Command("git", "-C", root, "log", "-z", "--format=%B", "-n", strconv.Itoa(max), "HEAD")
	// Never pick up a repository above root.
	cmd.Env = append(os.Environ(), "GIT_CEILING_DIRECTORIES="+filepath.Dir(root))
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out.Bytes(), nil
}

// OpenCLI returns an Opener that reads at most max commits with the git
// executable instead of the built-in object reader. It handles
// repository layouts go-git cannot open, such as newer index or
// extension formats.
func OpenCLI(runner GitRunner, max int) Opener {
	if max <= 0 {
		max = DefaultMaxCommits
	}
	return func(root string) (History, error) {
		out, err := runner.Log(root, max)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRepositoryAccess, root, err)
		}
		msgs := strings.Split(string(out), "\x00")
		if n := len(msgs); n > 0 && strings.TrimSpace(msgs[n-1]) == "" {
			msgs = msgs[:n-1]
		}
		return &messages{msgs: msgs}, nil
	}
}

// messages is a History over an already-read list of messages.
type messages struct {
	msgs []string
	pos  int
}

func (m *messages) Next() (string, error) {
	if m.pos >= len(m.msgs) {
		return "", io.EOF
	}
	m.pos++
	return m.msgs[m.pos-1], nil
}

func (m *messages) Close() {}

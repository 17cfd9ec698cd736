package signoff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrRepositoryAccess is returned when the repository or its history
// cannot be opened.
var ErrRepositoryAccess = errors.New("cannot access repository history")

// History iterates commit messages from the branch tip backwards.
type History interface {
	// Next returns the next commit message, or io.EOF once the root
	// commit has been passed. Any other error affects only that commit.
	Next() (string, error)
	Close()
}

// Opener opens the history of the repository at root.
type Opener func(root string) (History, error)

// OpenGit opens the git object store at root with go-git and starts
// a walk at HEAD. Only root itself is considered; parent directories
// are not searched for a .git directory.
func OpenGit(root string) (History, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRepositoryAccess, root, err)
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: resolving HEAD: %v", ErrRepositoryAccess, root, err)
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading log: %v", ErrRepositoryAccess, root, err)
	}
	return &gitHistory{iter: iter}, nil
}

type gitHistory struct {
	iter object.CommitIter
}

func (h *gitHistory) Next() (string, error) {
	c, err := h.iter.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", err
	}
	return c.Message, nil
}

func (h *gitHistory) Close() {
	h.iter.Close()
}

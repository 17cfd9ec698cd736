// Package pathmatch locates files in a repository tree by glob pattern.
package pathmatch

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Policy states what a matched path must satisfy to count as found.
type Policy int

const (
	// Exists accepts any matching file or directory that resolves
	// inside the root.
	Exists Policy = iota
	// NonEmpty requires a matching file with non-whitespace content.
	// Directories never match.
	NonEmpty
	// HasLines requires a matching file holding at least one byte, so a
	// file of blank lines still counts.
	HasLines
	// IsFile accepts any matching file, empty or not. Directories never
	// match.
	IsFile
)

func (p Policy) String() string {
	switch p {
	case NonEmpty:
		return "non-empty"
	case HasLines:
		return "has-lines"
	case IsFile:
		return "file"
	default:
		return "exists"
	}
}

// Globs is a set of slash-separated glob patterns, relative to the
// repository root, plus the content policy a match must meet.
// Patterns are matched case-insensitively; `*` never crosses a `/`.
type Globs struct {
	Patterns []string
	Policy   Policy
}

// skipDirs are never matched or descended into.
var skipDirs = map[string]bool{".git": true}

// Validate reports the first pattern that is malformed or could
// reach outside the root.
func (g Globs) Validate() error {
	if len(g.Patterns) == 0 {
		return errors.New("no patterns")
	}
	for _, p := range g.Patterns {
		if _, err := normalize(p); err != nil {
			return err
		}
	}
	return nil
}

func normalize(pattern string) (string, error) {
	p := strings.ToLower(pattern)
	if !fs.ValidPath(p) || p == "." {
		return "", fmt.Errorf("pattern %q escapes the repository root", pattern)
	}
	if _, err := path.Match(p, ""); err != nil {
		return "", fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return p, nil
}

// Find returns the relative path of the first entry in fsys matching
// any pattern, trying patterns in order. It returns "" when nothing
// matches. Patterns that would escape the root never match.
func Find(fsys fs.FS, g Globs) (string, error) {
	for _, pattern := range g.Patterns {
		p, err := normalize(pattern)
		if err != nil {
			continue
		}
		found, err := findOne(fsys, p, g.Policy)
		if err != nil {
			return "", err
		}
		if found != "" {
			return found, nil
		}
	}
	return "", nil
}

func findOne(fsys fs.FS, pattern string, policy Policy) (string, error) {
	if _, err := fs.ReadDir(fsys, "."); err != nil {
		return "", fmt.Errorf("walking repository: %w", err)
	}
	return walk(fsys, ".", strings.Split(pattern, "/"), policy), nil
}

// walk matches parts against the tree under dir one segment at a time.
// Symlinked directories are followed when they resolve inside the root;
// the pattern depth bounds the descent, so link cycles terminate.
func walk(fsys fs.FS, dir string, parts []string, policy Policy) string {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		// Unreadable subtree: treat as absent.
		return ""
	}
	for _, e := range entries {
		if skipDirs[e.Name()] {
			continue
		}
		if ok, _ := path.Match(parts[0], strings.ToLower(e.Name())); !ok {
			continue
		}
		name := path.Join(dir, e.Name())
		if len(parts) == 1 {
			if accept(fsys, name, policy) {
				return name
			}
			continue
		}
		if info, err := fs.Stat(fsys, name); err != nil || !info.IsDir() {
			continue
		}
		if found := walk(fsys, name, parts[1:], policy); found != "" {
			return found
		}
	}
	return ""
}

func accept(fsys fs.FS, name string, policy Policy) bool {
	// Stat follows symlinks; one that leaves the root fails here.
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return false
	}
	if policy == Exists {
		return true
	}
	if info.IsDir() {
		return false
	}
	switch policy {
	case NonEmpty:
		data, err := fs.ReadFile(fsys, name)
		return err == nil && strings.TrimSpace(string(data)) != ""
	case HasLines:
		return info.Size() > 0
	default:
		return true
	}
}

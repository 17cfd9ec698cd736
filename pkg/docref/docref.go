// Package docref looks for references to a topic inside a repository's
// README: a heading, a standalone line or a markdown link.
package docref

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/vertti/repocheck/pkg/pathmatch"
)

// ReadmeGlobs locates the README-equivalent document. Only files with
// content qualify, so a README directory or an empty README is passed over.
var ReadmeGlobs = pathmatch.Globs{
	Patterns: []string{"readme*", ".github/readme*", "docs/readme*"},
	Policy:   pathmatch.NonEmpty,
}

// Set is a compiled set of case-insensitive regular expressions.
type Set []*regexp.Regexp

// Compile compiles exprs into a Set. Every expression is made
// case-insensitive; flags such as (?m) may still be given per expression.
func Compile(exprs ...string) (Set, error) {
	set := make(Set, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("invalid reference pattern %q: %w", expr, err)
		}
		set = append(set, re)
	}
	return set, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// package-level pattern tables, so a bad table fails at start-up.
func MustCompile(exprs ...string) Set {
	set, err := Compile(exprs...)
	if err != nil {
		panic(err)
	}
	return set
}

// Topic builds the standard reference set for a topic: a heading
// containing it, a line consisting of it, or a markdown link whose text
// contains it. Each variant is a regular expression fragment such as
// `code.of.conduct` or `快速开始`.
func Topic(variants ...string) Set {
	var exprs []string
	for _, v := range variants {
		exprs = append(exprs,
			`(?m)^#+.*`+v+`.*$`,
			`(?m)^`+v+`$`,
			`\[.*`+v+`.*\]\(.*\)`,
		)
	}
	return MustCompile(exprs...)
}

// Match returns true if any expression matches content.
func (s Set) Match(content string) bool {
	for _, re := range s {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// Find loads the README from fsys and matches it against s.
// A repository without a README never matches.
func Find(fsys fs.FS, s Set) (bool, error) {
	name, err := pathmatch.Find(fsys, ReadmeGlobs)
	if err != nil {
		return false, err
	}
	if name == "" {
		return false, nil
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	return s.Match(strings.ReplaceAll(string(data), "\r\n", "\n")), nil
}

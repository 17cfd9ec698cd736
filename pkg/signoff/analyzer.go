// Package signoff decides whether a repository's recent history shows a
// consistent Developer Certificate of Origin sign-off practice.
package signoff

import (
	"errors"
	"io"
	"regexp"
	"strings"
)

// DefaultMaxCommits is how many commits from the tip are inspected.
const DefaultMaxCommits = 20

var (
	mergePullRequestRe = regexp.MustCompile(`^Merge pull request `)
	mergeBranchRe      = regexp.MustCompile(`^Merge branch `)
	signedOffRe        = regexp.MustCompile(`(?m)^Signed-off-by: `)
)

// Class is the classification of a single commit message.
type Class int

const (
	Unsigned Class = iota
	Signed
	Merge // automated merge commit, excluded from the verdict
)

func (c Class) String() string {
	switch c {
	case Signed:
		return "signed"
	case Merge:
		return "merge"
	default:
		return "unsigned"
	}
}

// Classify classifies a commit message.
func Classify(msg string) Class {
	switch {
	case mergePullRequestRe.MatchString(msg), mergeBranchRe.MatchString(msg):
		return Merge
	case signedOffRe.MatchString(msg):
		return Signed
	default:
		return Unsigned
	}
}

// Verdict summarises one walk.
type Verdict struct {
	Passed   bool
	Consumed int    // commits taken from the walk, including unreadable ones
	Visited  int    // commits read successfully
	Merges   int    // visited commits excluded as merges
	Signed   int    // visited commits carrying a sign-off
	Skipped  int    // commits that could not be read
	Unsigned string // first line of the disqualifying commit, if any
}

// Analyzer walks a bounded window of history.
type Analyzer struct {
	MaxCommits int    // default: DefaultMaxCommits
	Open       Opener // default: OpenGit
}

// Analyze walks at most MaxCommits commits back from HEAD of the
// repository at root. The first non-merge commit without a sign-off
// ends the walk with a failed verdict. Every call starts a new walk.
func (a *Analyzer) Analyze(root string) (Verdict, error) {
	open := a.Open
	if open == nil {
		open = OpenGit
	}
	limit := a.MaxCommits
	if limit <= 0 {
		limit = DefaultMaxCommits
	}

	history, err := open(root)
	if err != nil {
		return Verdict{}, err
	}
	defer history.Close()

	var v Verdict
	for v.Consumed < limit {
		msg, err := history.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		v.Consumed++
		if err != nil {
			v.Skipped++
			continue
		}
		v.Visited++

		switch Classify(msg) {
		case Merge:
			v.Merges++
		case Signed:
			v.Signed++
		default:
			v.Unsigned = firstLine(msg)
			return v, nil
		}
	}

	v.Passed = v.Signed == v.Visited-v.Merges
	return v, nil
}

func firstLine(msg string) string {
	line, _, _ := strings.Cut(msg, "\n")
	return strings.TrimSpace(line)
}

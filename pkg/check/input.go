package check

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/vertti/repocheck/pkg/github"
	"github.com/vertti/repocheck/pkg/scorecard"
)

// Mode selects which evidence sources checks may consult.
type Mode string

const (
	// ModeLocal restricts checks to the filesystem clone.
	ModeLocal Mode = "local"
	// ModeRemote additionally allows platform metadata and the scorecard.
	ModeRemote Mode = "remote"
)

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLocal:
		return ModeLocal, nil
	case ModeRemote:
		return ModeRemote, nil
	default:
		return "", fmt.Errorf("invalid mode %q (supported: local, remote)", s)
	}
}

// Input is everything a check may look at. It is built once per
// repository evaluation and shared read-only by all checks.
//
// In ModeLocal, Remote and Scorecard must not be consulted.
type Input struct {
	Root string // repository root on disk
	FS   fs.FS  // repository tree, confined to Root
	Mode Mode

	Remote    github.Metadata   // nil when unavailable
	Scorecard scorecard.Outcome // decoded report or the failure that prevented it
}

// Local returns true if only local evidence may be used.
func (in *Input) Local() bool {
	return in.Mode != ModeRemote
}

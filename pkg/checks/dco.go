package checks

import (
	"regexp"

	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/evidence"
	"github.com/vertti/repocheck/pkg/registry"
	"github.com/vertti/repocheck/pkg/signoff"
)

const DCOID check.ID = "dco"

var dcoStatusCheck = regexp.MustCompile(`(?i)dco`)

// DCO passes when recent commits are consistently signed off. When the
// history says otherwise, or cannot be read, a required DCO status check
// on the default branch is accepted instead.
var DCO = registry.Entry{
	Metadata: check.Metadata{
		ID:         DCOID,
		Weight:     1,
		Categories: []check.Category{check.CategoryCode, check.CategoryCodeLite},
	},
	Check: evidence.Chain{
		Local:  []evidence.Tier{evidence.SignOff(&signoff.Analyzer{MaxCommits: signoff.DefaultMaxCommits})},
		Remote: []evidence.Tier{evidence.StatusCheck(dcoStatusCheck)},
	}.Check(),
}

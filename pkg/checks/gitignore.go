package checks

import (
	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/evidence"
	"github.com/vertti/repocheck/pkg/pathmatch"
	"github.com/vertti/repocheck/pkg/registry"
)

const GitignoreID check.ID = "gitignore"

// Gitignore passes when the repository root has a .gitignore holding at
// least one line. Blank lines count.
var Gitignore = registry.Entry{
	Metadata: check.Metadata{
		ID:         GitignoreID,
		Weight:     2,
		Categories: []check.Category{check.CategoryIncubator},
	},
	Check: evidence.Chain{
		Local: []evidence.Tier{
			evidence.File(pathmatch.Globs{Patterns: []string{".gitignore"}, Policy: pathmatch.HasLines}),
		},
	}.Check(),
}

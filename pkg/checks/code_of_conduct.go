package checks

import (
	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/docref"
	"github.com/vertti/repocheck/pkg/evidence"
	"github.com/vertti/repocheck/pkg/pathmatch"
	"github.com/vertti/repocheck/pkg/registry"
)

const CodeOfConductID check.ID = "code_of_conduct"

var (
	codeOfConductFiles = pathmatch.Globs{
		Patterns: []string{"code*of*conduct*", ".github/code*of*conduct*", "docs/code*of*conduct*"},
	}
	codeOfConductRefs = docref.Topic("code.of.conduct")
)

// CodeOfConduct looks for a code of conduct file or README section,
// then for the platform's code of conduct.
var CodeOfConduct = registry.Entry{
	Metadata: check.Metadata{
		ID:         CodeOfConductID,
		Weight:     2,
		Categories: []check.Category{check.CategoryCommunity},
	},
	Check: evidence.Chain{
		Local:  evidence.FileOrDocument(codeOfConductFiles, codeOfConductRefs),
		Remote: []evidence.Tier{evidence.CodeOfConductURL()},
	}.Check(),
}

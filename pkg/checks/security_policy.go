package checks

import (
	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/docref"
	"github.com/vertti/repocheck/pkg/evidence"
	"github.com/vertti/repocheck/pkg/pathmatch"
	"github.com/vertti/repocheck/pkg/registry"
)

const SecurityPolicyID check.ID = "security_policy"

var (
	securityPolicyFiles = pathmatch.Globs{
		Patterns: []string{"security*", ".github/security*", "docs/security*"},
	}
	securityPolicyRefs = docref.Topic("security")
)

// SecurityPolicy looks for a security policy file or README section,
// then for the platform's security policy (an organisation-wide
// community health file, for example).
var SecurityPolicy = registry.Entry{
	Metadata: check.Metadata{
		ID:         SecurityPolicyID,
		Weight:     3,
		Categories: []check.Category{check.CategoryCode, check.CategoryCommunity},
	},
	Check: evidence.Chain{
		Local:  evidence.FileOrDocument(securityPolicyFiles, securityPolicyRefs),
		Remote: []evidence.Tier{evidence.SecurityPolicyURL()},
	}.Check(),
}

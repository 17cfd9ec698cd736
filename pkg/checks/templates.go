package checks

import (
	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/evidence"
	"github.com/vertti/repocheck/pkg/pathmatch"
	"github.com/vertti/repocheck/pkg/registry"
)

const (
	IssueTemplateID check.ID = "issue_template"
	PRTemplateID    check.ID = "pr_template"
)

// IssueTemplate passes when a non-empty single issue template exists,
// or when the template directory holds any markdown file.
var IssueTemplate = registry.Entry{
	Metadata: check.Metadata{
		ID:         IssueTemplateID,
		Weight:     2,
		Categories: []check.Category{check.CategoryIncubator},
	},
	Check: evidence.Chain{
		Local: []evidence.Tier{
			evidence.File(pathmatch.Globs{
				Patterns: []string{".github/issue_template.md"},
				Policy:   pathmatch.NonEmpty,
			}),
			evidence.File(pathmatch.Globs{
				Patterns: []string{".github/issue_template/*.md"},
				Policy:   pathmatch.IsFile,
			}),
		},
	}.Check(),
}

// PRTemplate passes when a non-empty pull request template exists in
// any of the single-file locations the platform reads, or when the
// template directory holds any markdown file.
var PRTemplate = registry.Entry{
	Metadata: check.Metadata{
		ID:         PRTemplateID,
		Weight:     2,
		Categories: []check.Category{check.CategoryIncubator},
	},
	Check: evidence.Chain{
		Local: []evidence.Tier{
			evidence.File(pathmatch.Globs{
				Patterns: []string{
					".github/pull_request_template.md",
					"pull_request_template.md",
					"docs/pull_request_template.md",
				},
				Policy: pathmatch.NonEmpty,
			}),
			evidence.File(pathmatch.Globs{
				Patterns: []string{".github/pull_request_template/*.md"},
				Policy:   pathmatch.IsFile,
			}),
		},
	}.Check(),
}

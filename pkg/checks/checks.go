// Package checks holds the concrete repository checks and the default
// registry binding them to their metadata.
//
// Each check is an evidence chain: local tiers first, then, in remote
// mode only, platform metadata or scorecard tiers. Checks read the
// check.Input only; weights and categories live in their registry entry.
package checks

import "github.com/vertti/repocheck/pkg/registry"

// Default is the process-wide registry. It is built during package
// initialisation; an invalid table panics before any check runs.
var Default = registry.MustNew(
	Gitignore,
	SecurityPolicy,
	CodeOfConduct,
	GetStarted,
	IssueTemplate,
	PRTemplate,
	DCO,
	BinaryArtifacts,
	CodeReview,
	DangerousWorkflow,
	DependencyUpdateTool,
	Maintained,
	SignedReleases,
	TokenPermissions,
)

package checks

import (
	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/evidence"
	"github.com/vertti/repocheck/pkg/registry"
)

const (
	BinaryArtifactsID      check.ID = "binary_artifacts"
	CodeReviewID           check.ID = "code_review"
	DangerousWorkflowID    check.ID = "dangerous_workflow"
	DependencyUpdateToolID check.ID = "dependency_update_tool"
	MaintainedID           check.ID = "maintained"
	SignedReleasesID       check.ID = "signed_releases"
	TokenPermissionsID     check.ID = "token_permissions"
)

var (
	BinaryArtifacts      = scorecardCheck(BinaryArtifactsID, "Binary-Artifacts", 3, check.CategoryCode)
	CodeReview           = scorecardCheck(CodeReviewID, "Code-Review", 3, check.CategoryCode)
	DangerousWorkflow    = scorecardCheck(DangerousWorkflowID, "Dangerous-Workflow", 3, check.CategoryCode)
	DependencyUpdateTool = scorecardCheck(DependencyUpdateToolID, "Dependency-Update-Tool", 2, check.CategoryCode)
	Maintained           = scorecardCheck(MaintainedID, "Maintained", 3, check.CategoryCode)
	SignedReleases       = scorecardCheck(SignedReleasesID, "Signed-Releases", 1, check.CategoryCode)
	TokenPermissions     = scorecardCheck(TokenPermissionsID, "Token-Permissions", 2, check.CategoryCode)
)

// scorecardCheck builds a check that only consults the scorecard entry
// named name. In local mode it never passes.
func scorecardCheck(id check.ID, name string, weight int, categories ...check.Category) registry.Entry {
	return registry.Entry{
		Metadata: check.Metadata{
			ID:           id,
			Weight:       weight,
			Categories:   categories,
			ExternalName: name,
		},
		Check: evidence.Chain{
			Remote: []evidence.Tier{evidence.Scorecard(name)},
		}.Check(),
	}
}

package checks

import (
	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/docref"
	"github.com/vertti/repocheck/pkg/evidence"
	"github.com/vertti/repocheck/pkg/pathmatch"
	"github.com/vertti/repocheck/pkg/registry"
)

const GetStartedID check.ID = "get_started"

var (
	getStartedFiles = pathmatch.Globs{
		Patterns: []string{"docs/quickstart*", "docs/get*started*"},
	}
	getStartedRefs = append(
		docref.Topic("get.started", "quickstart", "快速开始"),
		docref.MustCompile(`(?m)^#+.*(开始使用|入门指南).*$`)...,
	)
)

// GetStarted looks for a getting-started guide. There is no platform
// equivalent, so remote mode adds nothing: in particular a code of
// conduct URL is not taken as a guide.
var GetStarted = registry.Entry{
	Metadata: check.Metadata{
		ID:         GetStartedID,
		Weight:     2,
		Categories: []check.Category{check.CategoryIncubator},
	},
	Check: evidence.Chain{
		Local: evidence.FileOrDocument(getStartedFiles, getStartedRefs),
	}.Check(),
}

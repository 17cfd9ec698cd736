package evidence

import (
	"fmt"
	"regexp"

	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/docref"
	"github.com/vertti/repocheck/pkg/pathmatch"
	"github.com/vertti/repocheck/pkg/scorecard"
	"github.com/vertti/repocheck/pkg/signoff"
)

// File finds a path matching globs. The matched relative path is the evidence.
func File(globs pathmatch.Globs) Tier {
	if err := globs.Validate(); err != nil {
		panic(fmt.Sprintf("evidence: %v", err))
	}
	return func(in *check.Input) (check.Output, bool, error) {
		name, err := pathmatch.Find(in.FS, globs)
		if err != nil || name == "" {
			return check.Output{}, false, err
		}
		return check.PassWithURL(name), true, nil
	}
}

// Document finds a README reference. There is no evidence URL: the
// reference is inline prose.
func Document(set docref.Set) Tier {
	return func(in *check.Input) (check.Output, bool, error) {
		ok, err := docref.Find(in.FS, set)
		if err != nil || !ok {
			return check.Output{}, false, err
		}
		out := check.Pass()
		out.AddDetail("referenced in README")
		return out, true, nil
	}
}

// FileOrDocument returns the standard local tiers: a file matching
// globs, then a README reference matching set.
func FileOrDocument(globs pathmatch.Globs, set docref.Set) []Tier {
	return []Tier{File(globs), Document(set)}
}

// SecurityPolicyURL uses the platform's security policy URL.
func SecurityPolicyURL() Tier {
	return func(in *check.Input) (check.Output, bool, error) {
		if in.Remote == nil || in.Remote.SecurityPolicyURL() == "" {
			return check.Output{}, false, nil
		}
		return check.PassWithURL(in.Remote.SecurityPolicyURL()), true, nil
	}
}

// CodeOfConductURL uses the platform's code of conduct URL.
func CodeOfConductURL() Tier {
	return func(in *check.Input) (check.Output, bool, error) {
		if in.Remote == nil || in.Remote.CodeOfConductURL() == "" {
			return check.Output{}, false, nil
		}
		return check.PassWithURL(in.Remote.CodeOfConductURL()), true, nil
	}
}

// StatusCheck looks for a required status check matching re on the
// default branch.
func StatusCheck(re *regexp.Regexp) Tier {
	return func(in *check.Input) (check.Output, bool, error) {
		if in.Remote == nil || !in.Remote.HasStatusCheck(re) {
			return check.Output{}, false, nil
		}
		out := check.Pass()
		out.AddDetailf("required status check matching %s", re)
		return out, true, nil
	}
}

// SignOff runs the commit history analyzer on the repository root.
// A failed verdict is absent evidence; a history that cannot be opened
// is inconclusive and reported as an error so the chain moves on.
func SignOff(a *signoff.Analyzer) Tier {
	return func(in *check.Input) (check.Output, bool, error) {
		v, err := a.Analyze(in.Root)
		if err != nil {
			return check.Output{}, false, err
		}
		if !v.Passed {
			return check.Output{}, false, nil
		}
		out := check.Pass()
		out.AddDetailf("%d of %d non-merge commits signed off", v.Signed, v.Visited-v.Merges)
		return out, true, nil
	}
}

// Scorecard looks up the scorecard entry named name. Presence of the
// entry passes; its documentation URL is the evidence and its reason,
// score and details are carried as supplementary details.
func Scorecard(name string) Tier {
	return func(in *check.Input) (check.Output, bool, error) {
		entry, ok, err := scorecard.Lookup(in.Scorecard, name)
		if err != nil {
			return check.Output{}, false, fmt.Errorf("scorecard %s: %w", name, err)
		}
		if !ok {
			return check.Output{}, false, nil
		}
		out := check.PassWithURL(entry.DocumentationURL)
		out.AddDetailf("score: %.1f", entry.Score)
		if entry.Reason != "" {
			out.AddDetailf("reason: %s", entry.Reason)
		}
		for _, d := range entry.Details {
			out.AddDetail(d)
		}
		return out, true, nil
	}
}

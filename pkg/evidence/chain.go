// Package evidence composes resolvers into ordered fallback chains.
//
// A chain has local tiers, tried first in order, and remote tiers that
// are only reached in remote mode. The first tier that finds evidence
// decides the verdict; when none does, the check fails.
package evidence

import (
	"errors"

	"github.com/vertti/repocheck/pkg/check"
)

// Tier looks for one kind of evidence. It returns found=false when the
// evidence is absent. An error means the source could not be consulted;
// the chain records it and moves on to the next tier.
type Tier func(in *check.Input) (out check.Output, found bool, err error)

// Chain is an ordered list of tiers.
type Chain struct {
	Local  []Tier
	Remote []Tier
}

// Resolve runs the chain. It never returns an error: source failures
// that leave the chain without evidence are attached to the failed
// output as Err.
func (c Chain) Resolve(in *check.Input) check.Output {
	var errs []error

	try := func(tiers []Tier) (check.Output, bool) {
		for _, tier := range tiers {
			out, found, err := tier(in)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if found {
				return out, true
			}
		}
		return check.Output{}, false
	}

	if out, ok := try(c.Local); ok {
		return out
	}
	if !in.Local() {
		if out, ok := try(c.Remote); ok {
			return out
		}
	}
	return check.Fail(errors.Join(errs...))
}

// Check adapts the chain to a check.Checker.
func (c Chain) Check() check.Checker {
	return check.Func(func(in *check.Input) (check.Output, error) {
		return c.Resolve(in), nil
	})
}

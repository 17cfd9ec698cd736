package linter

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/vertti/repocheck/pkg/check"
)

// Result pairs a check's verdict with its registry metadata.
type Result struct {
	ID       check.ID
	Metadata check.Metadata
	Output   check.Output
}

// Report is the outcome of one evaluation, in registry order.
type Report struct {
	Root    string
	Mode    check.Mode
	Results []Result
	Passed  int
	Failed  int
	Digest  string // blake3 over the ordered verdicts
}

func newReport(root string, mode check.Mode, results []Result) *Report {
	r := &Report{Root: root, Mode: mode, Results: results}
	for _, res := range results {
		if res.Output.Passed {
			r.Passed++
		} else {
			r.Failed++
		}
	}
	r.Digest = digest(results)
	return r
}

// Get returns the result for id.
func (r *Report) Get(id check.ID) (Result, bool) {
	for _, res := range r.Results {
		if res.ID == id {
			return res, true
		}
	}
	return Result{}, false
}

// AllPassed returns true if no check failed.
func (r *Report) AllPassed() bool {
	return r.Failed == 0
}

// digest fingerprints identifiers, verdicts and evidence so two runs can
// be compared without diffing the whole report.
func digest(results []Result) string {
	h := blake3.New()
	for _, res := range results {
		fmt.Fprintf(h, "%s\x00%t\x00%s\n", res.ID, res.Output.Passed, res.Output.URL)
	}
	return hex.EncodeToString(h.Sum(nil))
}

package scorecard

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrMalformedReport is returned when the tool output is not a scorecard report.
	ErrMalformedReport = errors.New("malformed scorecard report")

	// ErrNoReport is returned by Lookup when no scorecard run was attempted.
	ErrNoReport = errors.New("scorecard report not available")
)

// CheckResult is a single named entry of a scorecard report.
type CheckResult struct {
	Name             string   `json:"name" yaml:"name"`
	Reason           string   `json:"reason" yaml:"reason"`
	Details          []string `json:"details,omitempty" yaml:"details,omitempty"`
	Score            float64  `json:"score" yaml:"score"`
	DocumentationURL string   `json:"documentation_url" yaml:"documentation_url"`
}

// Report is a decoded scorecard report. Entry names are unique.
type Report struct {
	Checks []CheckResult
}

// Get returns the entry named exactly name.
func (r *Report) Get(name string) (*CheckResult, bool) {
	for i := range r.Checks {
		if r.Checks[i].Name == name {
			return &r.Checks[i], true
		}
	}
	return nil, false
}

// Outcome is the result of one scorecard run: either a report or the
// error that prevented it. The zero Outcome means no run was attempted.
type Outcome struct {
	Report *Report
	Err    error
}

// Failed returns an Outcome carrying err.
func Failed(err error) Outcome {
	return Outcome{Err: err}
}

// Lookup finds the entry named name in the outcome's report.
// A missing entry is not an error; a report that failed to be produced
// returns the original failure.
func Lookup(o Outcome, name string) (*CheckResult, bool, error) {
	if o.Err != nil {
		return nil, false, o.Err
	}
	if o.Report == nil {
		return nil, false, ErrNoReport
	}
	c, ok := o.Report.Get(name)
	return c, ok, nil
}

// Decode parses the JSON document printed by `scorecard --format=json`.
func Decode(data []byte) (*Report, error) {
	raw := string(data)
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedReport)
	}

	checks := gjson.Get(raw, "checks")
	if !checks.IsArray() {
		return nil, fmt.Errorf("%w: missing checks list", ErrMalformedReport)
	}

	report := &Report{}
	seen := make(map[string]bool)
	for i, entry := range checks.Array() {
		name := entry.Get("name")
		if name.Type != gjson.String || name.String() == "" {
			return nil, fmt.Errorf("%w: check %d has no name", ErrMalformedReport, i)
		}
		if seen[name.String()] {
			return nil, fmt.Errorf("%w: duplicate check %q", ErrMalformedReport, name.String())
		}
		seen[name.String()] = true

		score := entry.Get("score")
		if score.Type != gjson.Number {
			return nil, fmt.Errorf("%w: check %q has no numeric score", ErrMalformedReport, name.String())
		}

		result := CheckResult{
			Name:             name.String(),
			Reason:           entry.Get("reason").String(),
			Score:            score.Float(),
			DocumentationURL: entry.Get("documentation.url").String(),
		}
		for _, d := range entry.Get("details").Array() {
			result.Details = append(result.Details, d.String())
		}
		report.Checks = append(report.Checks, result)
	}

	return report, nil
}

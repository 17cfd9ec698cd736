package check

import "fmt"

// Output holds the verdict of a single check.
type Output struct {
	Passed  bool     // terminal verdict, no partial state
	URL     string   // evidence: matched path, platform URL or documentation URL
	Details []string // supplementary human-readable details
	Err     error    // cause when an evidence source failed, if any
}

// Pass returns a passed Output without evidence.
func Pass() Output {
	return Output{Passed: true}
}

// PassWithURL returns a passed Output carrying url as evidence.
func PassWithURL(url string) Output {
	return Output{Passed: true, URL: url}
}

// NotPassed returns a failed Output.
func NotPassed() Output {
	return Output{}
}

// Fail returns a failed Output that records the evidence-source error
// which prevented a verdict from being reached.
func Fail(err error) Output {
	return Output{Err: err}
}

// AddDetail appends a detail line to the output.
func (o *Output) AddDetail(detail string) *Output {
	o.Details = append(o.Details, detail)
	return o
}

// AddDetailf appends a formatted detail line to the output.
func (o *Output) AddDetailf(format string, args ...any) *Output {
	return o.AddDetail(fmt.Sprintf(format, args...))
}

package check

// Checker is implemented by all checks.
// Each check evaluates one best-practice signal against an Input
// and returns an Output holding a pass/fail verdict.
//
// The returned error is reserved for infrastructure failures that make
// the verdict meaningless (an unreadable repository root, for example).
// Missing evidence is never an error: it is a failed Output.
//
// Implementations live in the checks package; most are plain functions
// wrapped with Func.
type Checker interface {
	Run(in *Input) (Output, error)
}

// Func adapts an ordinary function to the Checker interface.
type Func func(in *Input) (Output, error)

// Run calls f(in).
func (f Func) Run(in *Input) (Output, error) {
	return f(in)
}

package scorecard

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner abstracts subprocess execution for testability.
type Runner interface {
	// RunCommandContext runs name with args and exactly the environment env.
	RunCommandContext(ctx context.Context, env []string, name string, args ...string) (stdout, stderr []byte, err error)
}

// RealRunner implements Runner using actual OS processes.
type RealRunner struct{}

// RunCommandContext executes a command and returns its output.
func (r *RealRunner) RunCommandContext(ctx context.Context, env []string, name string, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // binary name comes from config
	cmd.Env = env
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// Package process runs an external program to completion and collects its
// output. It knows nothing about reg.exe semantics.
package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/joshuapare/regkit/internal/codepage"
	"github.com/joshuapare/regkit/pkg/types"
)

// Output is what a finished process printed. A non-zero ExitCode is not an
// error at this layer; callers classify the output themselves.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner starts program with args and waits for it to exit.
// Implementations must be safe for concurrent, independent calls.
type Runner interface {
	Run(ctx context.Context, program string, args []string) (Output, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, program string, args []string) (Output, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, program string, args []string) (Output, error) {
	return f(ctx, program, args)
}

// ExecRunner runs programs with os/exec. Stdin is the null device; both
// output streams are buffered and decoded from CodePage to UTF-8.
type ExecRunner struct {
	// CodePage of the child's output. Zero selects the host OEM code page.
	CodePage uint32
}

// NewExecRunner returns an ExecRunner decoding the host OEM code page.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{CodePage: codepage.OEM()}
}

// Run starts the program and waits for it to exit. It fails only if the
// program could not be started or waited on; the error is a
// *types.Error of kind ErrKindSpawn wrapping the OS error.
func (r *ExecRunner) Run(ctx context.Context, program string, args []string) (Output, error) {
	cmd := exec.CommandContext(ctx, program, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return Output{}, &types.Error{Kind: types.ErrKindSpawn, Msg: "cannot start " + program, Err: err}
	}

	cp := r.CodePage
	if cp == 0 {
		cp = codepage.OEM()
	}
	return Output{
		Stdout:   codepage.Decode(cp, stdout.Bytes()),
		Stderr:   codepage.Decode(cp, stderr.Bytes()),
		ExitCode: cmd.ProcessState.ExitCode(),
	}, nil
}

package compare

import (
	"context"
	"fmt"
	"io"

	"github.com/simonhull/firebird-suite/wrap/exec"
	"github.com/simonhull/firebird-suite/wrap/fileio"
	"github.com/simonhull/firebird-suite/wrap/linediff"
)

// DefaultDiffCommand is the external tool ExternalDiff runs unless told otherwise
const DefaultDiffCommand = "diff"

// Reporter shows a human why two files differ. It only produces diagnostics;
// the comparison result is already decided when it runs.
type Reporter interface {
	Report(ctx context.Context, actual, expected string) error
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(ctx context.Context, actual, expected string) error

func (f ReporterFunc) Report(ctx context.Context, actual, expected string) error {
	return f(ctx, actual, expected)
}

// NopReporter reports nothing
type NopReporter struct{}

func (NopReporter) Report(context.Context, string, string) error { return nil }

// ExternalDiff runs a line-based diff tool as "<command> <actual> <expected>"
type ExternalDiff struct {
	command  string
	executor *exec.Executor
}

// NewExternalDiff creates a reporter running command (DefaultDiffCommand when
// empty) with its output sent to out.
func NewExternalDiff(command string, out io.Writer) *ExternalDiff {
	if command == "" {
		command = DefaultDiffCommand
	}
	return &ExternalDiff{
		command:  command,
		executor: exec.NewExecutor(&exec.Options{Stdout: out, Stderr: out}),
	}
}

// WithExecutor makes the reporter run its command through e
func (r *ExternalDiff) WithExecutor(e *exec.Executor) *ExternalDiff {
	r.executor = e
	return r
}

// Report runs the diff tool. Exit status 1 is how diff says the inputs
// differ, so it is not an error.
func (r *ExternalDiff) Report(ctx context.Context, actual, expected string) error {
	err := r.executor.Run(ctx, r.command, actual, expected)
	if err == nil || exec.ExitCode(err) == 1 {
		return nil
	}
	return fmt.Errorf("running %s: %w", exec.String(r.command, actual, expected), err)
}

// InlineDiff renders a unified diff in-process, so no diff binary is needed
type InlineDiff struct {
	out    io.Writer
	reader *fileio.Reader
	differ *linediff.Differ
}

// NewInlineDiff creates a reporter writing to out. A nil reader reads from
// the OS filesystem. Output is colored when out is a terminal.
func NewInlineDiff(out io.Writer, reader *fileio.Reader) *InlineDiff {
	if reader == nil {
		reader = fileio.NewReader(nil)
	}
	return &InlineDiff{
		out:    out,
		reader: reader,
		differ: linediff.New(&linediff.Options{Color: linediff.IsTerminal(out)}),
	}
}

// Report writes the diff from actual to expected, whole files included
func (r *InlineDiff) Report(_ context.Context, actual, expected string) error {
	got, err := r.reader.Contents(actual, false)
	if err != nil {
		return err
	}
	want, err := r.reader.Contents(expected, false)
	if err != nil {
		return err
	}

	_, err = io.WriteString(r.out, r.differ.Unified(actual, expected, got, want))
	return err
}

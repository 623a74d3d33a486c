// Package exec runs external tools, such as a line-based diff, on behalf of
// the comparison helpers.
//
// # Usage
//
//	e := exec.NewExecutor(&exec.Options{Stdout: os.Stderr})
//	err := e.Run(ctx, "diff", "actual/Point2.h", "expected/Point2.h")
//	if exec.ExitCode(err) == 1 {
//	    // diff found differences, which is its normal non-zero outcome
//	}
//
// Commands are built through an injectable constructor so tests can re-exec
// the test binary instead of depending on tools installed on the machine.
package exec

// Package linediff renders unified line diffs in-process, for environments
// where no external diff tool is installed.
//
//	fmt.Print(linediff.Unified("actual/Point2.h", "expected/Point2.h", got, want))
//
// Diffs are computed with Myers' algorithm ("An O(ND) Difference Algorithm and
// Its Variations", 1986) and grouped into hunks with three lines of context by
// default. Set Options.Color to style the output for a terminal.
package linediff

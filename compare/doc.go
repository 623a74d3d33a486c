// Package compare checks code generator output against golden fixtures.
//
// # Overview
//
// A mismatch is a normal outcome, not an error: every check returns a bool
// and prints what differed to the diagnostic writer.
//
//   - Strings and Slices compare values exactly (Slices is index-aligned).
//   - Files compares two files, optionally ignoring each one's first line,
//     and runs a Reporter (by default the system diff) when they differ.
//   - Dirs compares a whole fixture directory.
//
// # Usage
//
//	c := compare.New(&compare.Options{
//	    Reporter: compare.NewInlineDiff(os.Stderr, nil),
//	})
//	if !c.Files("expected/Point2.cpp", "actual/Point2.cpp", true) {
//	    t.Fail()
//	}
//
// Unreadable files also make Files return false; the cause goes to the
// Logger. Use fileio.Contents when the two cases must be told apart.
package compare

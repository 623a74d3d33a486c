// Package emit writes the boilerplate lines that open a generated wrapper
// file: a provenance comment, include directives and using-namespace
// statements. The literal formats are relied on by golden-file tests.
//
// # Usage
//
//	e := emit.New(nil)
//	e.HeaderComment(w, "//")
//	emit.Includes(w, "Point2", nil)
//	emit.UsingNamespaces(w, []string{"std", "boost"})
//
// produces
//
//	// automatically generated by wrap on 2010-Jan-15
//	#include <wrap/matlab.h>
//	#include <Point2.h>
//	using namespace std;
//	using namespace boost;
//
// The header date changes from day to day, so compare generated files with
// the header skipped, or give the Emitter a FixedClock.
package emit

package emit

import (
	"fmt"
	"io"
	"time"
)

// BootstrapInclude is written ahead of every other include
const BootstrapInclude = "wrap/matlab.h"

// DateLayout formats the header date as YYYY-Mon-DD, e.g. 2010-Jan-15
const DateLayout = "2006-Jan-02"

// Clock supplies the date stamped into header comments
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// FixedClock always returns t. The header shows t's date in t's own
// location, so the output does not depend on the machine's time zone.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// SystemClock reads the wall clock in local time
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().Local() })

// Emitter writes boilerplate lines into generated files.
//
// Emitters append whole lines to w and do not check write errors; wrap the
// destination in a bufio.Writer and check Flush to observe them.
type Emitter struct {
	clock Clock
}

// New creates an Emitter stamping headers with clock's date.
// A nil clock uses SystemClock.
func New(clock Clock) *Emitter {
	if clock == nil {
		clock = SystemClock
	}
	return &Emitter{clock: clock}
}

// HeaderComment writes "<delimiter> automatically generated by wrap on <date>".
// The delimiter makes the line a comment in the target language, e.g. "//"
// for C++ or "%" for MATLAB.
func (e *Emitter) HeaderComment(w io.Writer, delimiter string) {
	date := e.clock.Now().Format(DateLayout)
	fmt.Fprintf(w, "%s automatically generated by wrap on %s\n", delimiter, date)
}

// PointerTypeName returns typeName, or shared_ptr<typeName> when wrap is set
func PointerTypeName(wrap bool, typeName string) string {
	if wrap {
		return "shared_ptr<" + typeName + ">"
	}
	return typeName
}

// UsingNamespaces writes "using namespace <name>;" for each name, in order
func UsingNamespaces(w io.Writer, names []string) {
	for _, name := range names {
		fmt.Fprintf(w, "using namespace %s;\n", name)
	}
}

// Includes writes the bootstrap include and then either one include per
// entry of includes or, when includes is empty, the default <className>.h.
func Includes(w io.Writer, className string, includes []string) {
	fmt.Fprintf(w, "#include <%s>\n", BootstrapInclude)

	if len(includes) == 0 {
		fmt.Fprintf(w, "#include <%s.h>\n", className)
		return
	}
	for _, inc := range includes {
		fmt.Fprintf(w, "#include <%s>\n", inc)
	}
}

var defaultEmitter = New(nil)

// HeaderComment writes a header comment dated with the system clock
func HeaderComment(w io.Writer, delimiter string) {
	defaultEmitter.HeaderComment(w, delimiter)
}

package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/simonhull/firebird-suite/wrap/fileio"
	"github.com/simonhull/firebird-suite/wrap/logger"
)

// Comparer checks generated output against expectations. Mismatches are
// reported as false plus a rendering on the diagnostic writer, never as errors.
type Comparer struct {
	out      io.Writer
	log      logger.Logger
	reader   *fileio.Reader
	reporter Reporter

	skipHeader bool
}

// Options configures a Comparer. All fields are optional.
type Options struct {
	// Out receives mismatch renderings. Default: os.Stdout
	Out io.Writer

	// Logger receives read failures and reporter errors.
	// Default: logger.Default(), looked up on every use
	Logger logger.Logger

	// Reader loads files. Default: a reader over the OS filesystem
	Reader *fileio.Reader

	// Reporter is invoked when two files differ.
	// Default: ExternalDiff running "diff" with output on Out
	Reporter Reporter

	// SkipHeader ignores the first line of each file in Golden
	SkipHeader bool
}

// New creates a Comparer, filling unset options with defaults
func New(opts *Options) *Comparer {
	if opts == nil {
		opts = &Options{}
	}

	c := &Comparer{
		out:      opts.Out,
		log:      opts.Logger,
		reader:   opts.Reader,
		reporter: opts.Reporter,

		skipHeader: opts.SkipHeader,
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.reader == nil {
		c.reader = fileio.NewReader(nil)
	}
	if c.reporter == nil {
		c.reporter = NewExternalDiff("", c.out)
	}

	return c
}

// Strings reports whether actual is identical to expected
func (c *Comparer) Strings(expected, actual string) bool {
	if expected == actual {
		return true
	}

	fmt.Fprintf(c.out, "Not equal:\nexpected: [%s]\nactual: [%s]\n", expected, actual)
	return false
}

// Slices reports whether expected and actual have the same length and the
// same element at every index.
func (c *Comparer) Slices(expected, actual []string) bool {
	if slices.Equal(expected, actual) {
		return true
	}

	var b strings.Builder
	b.WriteString("expected: \n")
	for _, s := range expected {
		fmt.Fprintf(&b, "[%s] ", s)
	}
	b.WriteString("\nactual: \n")
	for _, s := range actual {
		fmt.Fprintf(&b, "[%s] ", s)
	}
	b.WriteString("\n")
	_, _ = io.WriteString(c.out, b.String())

	c.logger().Debug("sequence mismatch",
		logger.F("index", firstDifference(expected, actual)),
		logger.F("diff", cmp.Diff(expected, actual)),
	)
	return false
}

// firstDifference returns the first index at which a and b disagree, which is
// the shorter length when one is a prefix of the other.
func firstDifference(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// logger returns the configured Logger, or the current package default so
// that logger.SetDefault also reaches the package-level functions.
func (c *Comparer) logger() logger.Logger {
	if c.log != nil {
		return c.log
	}
	return logger.Default()
}

// Files is FilesContext with a background context
func (c *Comparer) Files(expected, actual string, skipHeader bool) bool {
	return c.FilesContext(context.Background(), expected, actual, skipHeader)
}

// FilesContext reports whether the files at expected and actual hold the
// same contents, ignoring each file's first line when skipHeader is set.
//
// A file that cannot be read is logged and yields false, so callers that need
// to tell "different" from "unreadable" should use fileio directly. On a
// mismatch the Reporter is run against (actual, expected); its outcome does
// not affect the result.
func (c *Comparer) FilesContext(ctx context.Context, expected, actual string, skipHeader bool) bool {
	want, err := c.reader.Contents(expected, skipHeader)
	if err != nil {
		c.readFailed(err)
		return false
	}

	got, err := c.reader.Contents(actual, skipHeader)
	if err != nil {
		c.readFailed(err)
		return false
	}

	if got == want {
		return true
	}

	if err := c.reporter.Report(ctx, actual, expected); err != nil {
		c.logger().Debug("mismatch reporter failed",
			logger.F("actual", actual),
			logger.F("expected", expected),
			logger.F("error", err),
		)
	}
	return false
}

func (c *Comparer) readFailed(err error) {
	var openErr *fileio.CannotOpenFileError
	if errors.As(err, &openErr) {
		c.logger().Error("file opening error", logger.F("path", openErr.Path), logger.F("error", openErr.Err))
		return
	}
	c.logger().Error("comparison error", logger.F("error", err))
}

// Dirs compares every file below expectedDir with the file at the same
// relative path below actualDir. Every pair is checked so all mismatches get
// reported. Files present only under actualDir also count as a mismatch.
func (c *Comparer) Dirs(ctx context.Context, expectedDir, actualDir string, skipHeader bool) bool {
	wantFiles, err := c.reader.Files(expectedDir)
	if err != nil {
		c.logger().Error("comparison error", logger.F("error", err))
		return false
	}
	gotFiles, err := c.reader.Files(actualDir)
	if err != nil {
		c.logger().Error("comparison error", logger.F("error", err))
		return false
	}

	equal := true
	expected := make(map[string]bool, len(wantFiles))
	for _, rel := range wantFiles {
		expected[rel] = true
		if !c.FilesContext(ctx, joinRel(expectedDir, rel), joinRel(actualDir, rel), skipHeader) {
			equal = false
		}
	}

	for _, rel := range gotFiles {
		if !expected[rel] {
			c.logger().Warn("unexpected generated file", logger.F("path", joinRel(actualDir, rel)))
			equal = false
		}
	}

	return equal
}

// Golden compares actual against the golden fixture at expected, which may be
// a single file or a directory, using the Comparer's SkipHeader setting.
func (c *Comparer) Golden(ctx context.Context, expected, actual string) bool {
	dir, err := c.reader.IsDir(expected)
	if err != nil {
		c.readFailed(&fileio.CannotOpenFileError{Path: expected, Err: err})
		return false
	}
	if dir {
		return c.Dirs(ctx, expected, actual, c.skipHeader)
	}
	return c.FilesContext(ctx, expected, actual, c.skipHeader)
}

func joinRel(dir, rel string) string {
	return filepath.Join(dir, filepath.FromSlash(rel))
}

var defaultComparer = New(nil)

// Strings compares two strings with the default Comparer
func Strings(expected, actual string) bool {
	return defaultComparer.Strings(expected, actual)
}

// Slices compares two string slices with the default Comparer
func Slices(expected, actual []string) bool {
	return defaultComparer.Slices(expected, actual)
}

// Files compares two files with the default Comparer, which runs the system
// diff on a mismatch.
func Files(expected, actual string, skipHeader bool) bool {
	return defaultComparer.Files(expected, actual, skipHeader)
}

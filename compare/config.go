package compare

import (
	"fmt"
	"io"
	"os"

	"github.com/simonhull/firebird-suite/wrap/config"
	"github.com/simonhull/firebird-suite/wrap/fileio"
	"github.com/simonhull/firebird-suite/wrap/logger"
)

// FromConfig builds a Comparer writing diagnostics to out (stdout when nil)
// with the reporter and log level named in cfg.
func FromConfig(cfg *config.Config, out io.Writer) (*Comparer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		out = os.Stdout
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log.level: %w", err)
	}

	reader := fileio.NewReader(nil)

	var reporter Reporter
	switch cfg.Compare.Reporter {
	case config.ReporterInline:
		reporter = NewInlineDiff(out, reader)
	case config.ReporterNone:
		reporter = NopReporter{}
	default:
		reporter = NewExternalDiff(cfg.Compare.DiffCommand, out)
	}

	return New(&Options{
		Out:      out,
		Logger:   logger.NewLogger(level, os.Stderr),
		Reader:   reader,
		Reporter: reporter,

		SkipHeader: cfg.Compare.SkipHeader,
	}), nil
}

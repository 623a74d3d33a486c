package compare

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/wrap/fileio"
	"github.com/simonhull/firebird-suite/wrap/logger"
)

type reportCall struct {
	actual, expected string
}

type harness struct {
	fs      afero.Fs
	out     *bytes.Buffer
	log     *bytes.Buffer
	calls   []reportCall
	reports error
	c       *Comparer
}

func newHarness(t *testing.T, files map[string]string) *harness {
	t.Helper()
	h := &harness{
		fs:  afero.NewMemMapFs(),
		out: &bytes.Buffer{},
		log: &bytes.Buffer{},
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(h.fs, path, []byte(content), 0644))
	}
	h.c = New(&Options{
		Out:    h.out,
		Logger: logger.NewLogger(logger.LevelDebug, h.log),
		Reader: fileio.NewReader(h.fs),
		Reporter: ReporterFunc(func(_ context.Context, actual, expected string) error {
			h.calls = append(h.calls, reportCall{actual, expected})
			return h.reports
		}),
	})
	return h
}

func TestComparer_Strings(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     bool
		output   string
	}{
		{"identical", "class Point2", "class Point2", true, ""},
		{"both empty", "", "", true, ""},
		{"different", "abc", "abd", false, "Not equal:\nexpected: [abc]\nactual: [abd]\n"},
		{"empty versus text", "", "x", false, "Not equal:\nexpected: []\nactual: [x]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)

			assert.Equal(t, tt.want, h.c.Strings(tt.expected, tt.actual))
			assert.Equal(t, tt.output, h.out.String())
		})
	}
}

func TestComparer_StringsReflexive(t *testing.T) {
	h := newHarness(t, nil)
	for _, s := range []string{"", " ", "\n", "using namespace std;\n", "ünïcode"} {
		assert.True(t, h.c.Strings(s, s), "%q", s)
	}
	assert.Empty(t, h.out.String())
}

func TestComparer_Slices(t *testing.T) {
	tests := []struct {
		name     string
		expected []string
		actual   []string
		want     bool
	}{
		{"equal", []string{"a", "b"}, []string{"a", "b"}, true},
		{"both empty", []string{}, []string{}, true},
		{"nil and empty", nil, []string{}, true},
		{"order matters", []string{"a", "b"}, []string{"b", "a"}, false},
		{"shorter actual", []string{"a", "b"}, []string{"a"}, false},
		{"longer actual", []string{"a"}, []string{"a", "b"}, false},
		{"last element differs", []string{"a", "b", "c"}, []string{"a", "b", "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)

			assert.Equal(t, tt.want, h.c.Slices(tt.expected, tt.actual))
			if tt.want {
				assert.Empty(t, h.out.String())
			} else {
				assert.NotEmpty(t, h.out.String())
			}
		})
	}
}

func TestComparer_SlicesOutput(t *testing.T) {
	h := newHarness(t, nil)

	require.False(t, h.c.Slices([]string{"std", "boost"}, []string{"std"}))

	assert.Equal(t, "expected: \n[std] [boost] \nactual: \n[std] \n", h.out.String())
	assert.Contains(t, h.log.String(), "sequence mismatch")
	assert.Contains(t, h.log.String(), "index=1")
}

func TestFirstDifference(t *testing.T) {
	tests := []struct {
		name     string
		expected []string
		actual   []string
		want     int
	}{
		{"first element", []string{"a", "b"}, []string{"x", "b"}, 0},
		{"middle element", []string{"a", "b", "c"}, []string{"a", "x", "c"}, 1},
		{"actual is a prefix", []string{"a", "b"}, []string{"a"}, 1},
		{"expected is a prefix", nil, []string{"a"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstDifference(tt.expected, tt.actual))
		})
	}
}

func TestComparer_Files(t *testing.T) {
	h := newHarness(t, map[string]string{
		"/expected/a.h": "// generated today\nBODY",
		"/actual/a.h":   "// generated today\nBODY",
		"/actual/b.h":   "// generated today\nBODZ",
		"/actual/c.h":   "// generated yesterday\nBODY",
	})

	assert.True(t, h.c.Files("/expected/a.h", "/actual/a.h", false))
	assert.True(t, h.c.Files("/expected/a.h", "/actual/a.h", true))
	assert.Empty(t, h.calls)

	assert.False(t, h.c.Files("/expected/a.h", "/actual/b.h", false))
	require.Len(t, h.calls, 1)
	assert.Equal(t, reportCall{actual: "/actual/b.h", expected: "/expected/a.h"}, h.calls[0])

	assert.True(t, h.c.Files("/expected/a.h", "/actual/c.h", true), "headers are ignored")
	assert.False(t, h.c.Files("/expected/a.h", "/actual/c.h", false), "headers count")

	assert.Empty(t, h.out.String(), "file mismatches are shown by the reporter only")
}

func TestComparer_FilesReporterErrorIgnored(t *testing.T) {
	h := newHarness(t, map[string]string{
		"/e.h": "x",
		"/a.h": "y",
	})
	h.reports = errors.New("diff exploded")

	assert.False(t, h.c.Files("/e.h", "/a.h", false))
	assert.Contains(t, h.log.String(), "mismatch reporter failed")
	assert.Contains(t, h.log.String(), "diff exploded")
}

func TestComparer_FilesMissing(t *testing.T) {
	h := newHarness(t, map[string]string{"/present.h": "x"})

	assert.False(t, h.c.Files("/missing.h", "/present.h", false))
	assert.False(t, h.c.Files("/present.h", "/missing.h", true))
	assert.False(t, h.c.Files("/missing.h", "/missing.h", false), "two unreadable files are not equal")

	assert.Empty(t, h.calls)
	assert.Contains(t, h.log.String(), "[ERROR] file opening error")
	assert.Contains(t, h.log.String(), "path=/missing.h")
}

func TestComparer_FilesReadError(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.h")
	require.NoError(t, os.WriteFile(file, []byte("// header\nclass A;\n"), 0644))

	tests := []struct {
		name       string
		expected   string
		actual     string
		skipHeader bool
	}{
		{"directory as expected", dir, file, false},
		{"directory as actual with header skip", file, dir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log bytes.Buffer
			called := false
			c := New(&Options{
				Out:    &bytes.Buffer{},
				Logger: logger.NewLogger(logger.LevelDebug, &log),
				Reporter: ReporterFunc(func(context.Context, string, string) error {
					called = true
					return nil
				}),
			})

			assert.False(t, c.Files(tt.expected, tt.actual, tt.skipHeader))
			assert.Contains(t, log.String(), "[ERROR] comparison error")
			assert.NotContains(t, log.String(), "file opening error")
			assert.False(t, called)
		})
	}
}

func TestComparer_DefaultLoggerFollowsSetDefault(t *testing.T) {
	prev := logger.Default()
	t.Cleanup(func() { logger.SetDefault(prev) })

	var log bytes.Buffer
	logger.SetDefault(logger.NewLogger(logger.LevelDebug, &log))

	c := New(&Options{Out: &bytes.Buffer{}})
	assert.False(t, c.Files("/wrap/no/such/expected.h", "/wrap/no/such/actual.h", false))
	assert.Contains(t, log.String(), "file opening error")
}

func TestComparer_FilesRoundTripOnDisk(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.cpp")
	second := filepath.Join(dir, "second.cpp")
	content := []byte("#include <wrap/matlab.h>\n#include <Point2.h>\n")
	require.NoError(t, os.WriteFile(first, content, 0644))
	require.NoError(t, os.WriteFile(second, content, 0644))

	c := New(&Options{
		Out:      &bytes.Buffer{},
		Logger:   logger.NewSilentLogger(),
		Reporter: NopReporter{},
	})

	for _, skip := range []bool{false, true} {
		assert.True(t, c.Files(first, second, skip))
	}

	mutated := append([]byte{}, content...)
	mutated[len(mutated)-2] = 'x'
	require.NoError(t, os.WriteFile(second, mutated, 0644))

	for _, skip := range []bool{false, true} {
		assert.False(t, c.Files(first, second, skip))
	}
}

func TestComparer_Dirs(t *testing.T) {
	h := newHarness(t, map[string]string{
		"/expected/Point2.h":       "h\nP2",
		"/expected/geom/Point3.h":  "h\nP3",
		"/actual/Point2.h":         "other\nP2",
		"/actual/geom/Point3.h":    "other\nP3",
		"/mismatch/Point2.h":       "h\nP2",
		"/mismatch/geom/Point3.h":  "h\nXX",
		"/extra/Point2.h":          "h\nP2",
		"/extra/geom/Point3.h":     "h\nP3",
		"/extra/geom/Unexpected.h": "h\n?",
	})
	ctx := context.Background()

	assert.True(t, h.c.Dirs(ctx, "/expected", "/actual", true))
	assert.False(t, h.c.Dirs(ctx, "/expected", "/actual", false))
	assert.Len(t, h.calls, 2, "every differing pair is reported")

	h.calls = nil
	assert.False(t, h.c.Dirs(ctx, "/expected", "/mismatch", true))
	require.Len(t, h.calls, 1)
	assert.Equal(t, filepath.Join("/mismatch", "geom", "Point3.h"), h.calls[0].actual)

	assert.False(t, h.c.Dirs(ctx, "/expected", "/extra", true))
	assert.Contains(t, h.log.String(), "unexpected generated file")

	assert.False(t, h.c.Dirs(ctx, "/expected", "/nowhere", true))
}

func TestNew_Defaults(t *testing.T) {
	c := New(nil)

	assert.Equal(t, os.Stdout, c.out)
	assert.Nil(t, c.log)
	assert.NotNil(t, c.reader)
	assert.IsType(t, &ExternalDiff{}, c.reporter)
}

func TestComparer_Golden(t *testing.T) {
	h := newHarness(t, map[string]string{
		"/golden/Point2.h": "// day one\nclass Point2;\n",
		"/out/Point2.h":    "// day two\nclass Point2;\n",
		"/golden/single.h": "// day one\nx\n",
		"/out/single.h":    "// day two\nx\n",
	})
	h.c.skipHeader = true

	assert.True(t, h.c.Golden(context.Background(), "/golden", "/out"))
	assert.True(t, h.c.Golden(context.Background(), "/golden/single.h", "/out/single.h"))

	h.c.skipHeader = false
	assert.False(t, h.c.Golden(context.Background(), "/golden/single.h", "/out/single.h"))
	assert.Len(t, h.calls, 1)

	assert.False(t, h.c.Golden(context.Background(), "/missing", "/out"))
	assert.Contains(t, h.log.String(), "file opening error")
}

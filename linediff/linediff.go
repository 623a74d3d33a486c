package linediff

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Options configures unified diff output
type Options struct {
	// Context is the number of unchanged lines shown around each change.
	// Default: 3
	Context int

	// Color renders headers, additions and removals with terminal styles.
	Color bool
}

type op int

const (
	opEqual op = iota
	opInsert
	opDelete
)

type edit struct {
	op   op
	text string
}

var (
	fileStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	insertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// maxDiffLines bounds the input size; Myers keeps one V array per edit step.
const maxDiffLines = 10000

// Differ computes line diffs, reusing its working buffer between calls
type Differ struct {
	opts Options
	v    []int
}

// New creates a Differ. A nil opts uses the defaults.
func New(opts *Options) *Differ {
	d := &Differ{opts: Options{Context: 3}}
	if opts != nil {
		d.opts = *opts
		if d.opts.Context <= 0 {
			d.opts.Context = 3
		}
	}
	return d
}

// Unified diffs old against newer with default options
func Unified(oldName, newName, old, newer string) string {
	return New(nil).Unified(oldName, newName, old, newer)
}

// Unified returns a unified diff from old to newer, or "" when they are identical.
func (d *Differ) Unified(oldName, newName, old, newer string) string {
	if old == newer {
		return ""
	}
	if strings.IndexByte(old, 0) >= 0 || strings.IndexByte(newer, 0) >= 0 {
		return fmt.Sprintf("Binary files %s and %s differ\n", oldName, newName)
	}

	a, b := Lines(old), Lines(newer)
	if slices.Equal(a, b) {
		return d.header(oldName, newName) + "\\ Files differ only in the trailing newline\n"
	}
	if len(a) > maxDiffLines || len(b) > maxDiffLines {
		return fmt.Sprintf("Files too large for diff (%d and %d lines)\n", len(a), len(b))
	}

	var out strings.Builder
	out.WriteString(d.header(oldName, newName))
	d.writeHunks(&out, d.script(a, b))
	return out.String()
}

func (d *Differ) header(oldName, newName string) string {
	return d.style(fileStyle, "--- "+oldName) + "\n" + d.style(fileStyle, "+++ "+newName) + "\n"
}

// script computes a shortest edit script with Myers' O(ND) algorithm.
func (d *Differ) script(a, b []string) []edit {
	n, m := len(a), len(b)
	limit := n + m
	offset := limit + 1

	size := 2*limit + 3
	if cap(d.v) < size {
		d.v = make([]int, size)
	}
	v := d.v[:size]
	clear(v)

	var trace [][]int
search:
	for depth := 0; depth <= limit; depth++ {
		trace = append(trace, slices.Clone(v))
		for k := -depth; k <= depth; k += 2 {
			var x int
			if k == -depth || (k != depth && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				break search
			}
		}
	}

	var edits []edit
	x, y := n, m
	for depth := len(trace) - 1; depth >= 0; depth-- {
		vd := trace[depth]
		k := x - y

		prevK := k - 1
		if k == -depth || (k != depth && vd[offset+k-1] < vd[offset+k+1]) {
			prevK = k + 1
		}
		prevX := vd[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			edits = append(edits, edit{opEqual, a[x]})
		}
		if depth == 0 {
			break
		}
		if x == prevX {
			y--
			edits = append(edits, edit{opInsert, b[y]})
		} else {
			x--
			edits = append(edits, edit{opDelete, a[x]})
		}
	}

	slices.Reverse(edits)
	return edits
}

// writeHunks groups changes that are at most 2*Context unchanged lines apart
func (d *Differ) writeHunks(out *strings.Builder, edits []edit) {
	ctx := d.opts.Context

	// oldPos[i]/newPos[i] count the old/new lines before edits[i]
	oldPos := make([]int, len(edits)+1)
	newPos := make([]int, len(edits)+1)
	for i, e := range edits {
		oldPos[i+1], newPos[i+1] = oldPos[i], newPos[i]
		if e.op != opInsert {
			oldPos[i+1]++
		}
		if e.op != opDelete {
			newPos[i+1]++
		}
	}

	i := 0
	for i < len(edits) {
		if edits[i].op == opEqual {
			i++
			continue
		}

		start := max(i-ctx, 0)
		end := i
		for j := i; j < len(edits); j++ {
			if edits[j].op != opEqual {
				end = j
				continue
			}
			if j-end > 2*ctx {
				break
			}
		}
		stop := min(end+ctx+1, len(edits))

		oldCount := oldPos[stop] - oldPos[start]
		newCount := newPos[stop] - newPos[start]
		header := fmt.Sprintf("@@ -%s +%s @@", hunkRange(oldPos[start], oldCount), hunkRange(newPos[start], newCount))
		out.WriteString(d.style(hunkStyle, header) + "\n")

		for _, e := range edits[start:stop] {
			switch e.op {
			case opInsert:
				out.WriteString(d.style(insertStyle, "+"+e.text) + "\n")
			case opDelete:
				out.WriteString(d.style(deleteStyle, "-"+e.text) + "\n")
			default:
				out.WriteString(" " + e.text + "\n")
			}
		}

		i = stop
	}
}

// hunkRange formats a hunk side the way diff -u does: an empty side points at
// the line before it.
func hunkRange(before, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", before)
	}
	return fmt.Sprintf("%d,%d", before+1, count)
}

func (d *Differ) style(s lipgloss.Style, text string) string {
	if !d.opts.Color {
		return text
	}
	return s.Render(text)
}

// Lines splits s on '\n'. A trailing newline does not produce an empty last line.
func Lines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// IsTerminal reports whether w is a terminal, and so worth coloring
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Package diff compares a file's original and formatted text line by line
// and renders the result as a unified diff or as modified-line chunks.
package diff

import (
	"fmt"
	"strings"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

// LineKind tags a line of a hunk.
type LineKind int

const (
	// Context is a line present in both versions.
	Context LineKind = iota
	// Added is a line only in the formatted version.
	Added
	// Removed is a line only in the original version.
	Removed
)

// Line is one line of a hunk, without its prefix or newline.
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is a run of changes with surrounding context.
// Start fields are 1-based line numbers.
type Hunk struct {
	OriginalStart  int
	OriginalCount  int
	FormattedStart int
	FormattedCount int
	Lines          []Line
}

// Diff is the line difference between a file and its formatted version.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Compute returns the diff of original against formatted with context lines
// around each change, or nil when the two have the same lines.
func Compute(path string, original, formatted []byte, context int) *Diff {
	ops := editScript(splitLines(original), splitLines(formatted))

	d := &Diff{Path: path}
	for _, op := range ops {
		switch op.kind {
		case Added:
			d.Additions++
		case Removed:
			d.Deletions++
		case Context:
		}
	}

	if d.Additions == 0 && d.Deletions == 0 {
		return nil
	}

	d.Hunks = group(ops, max(context, 0))

	return d
}

// HasChanges reports whether d holds any change.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" line for the file.
func (d *Diff) GitHeader() string {
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders d in unified format, without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount, hunk.FormattedStart, hunk.FormattedCount)

		for _, line := range hunk.Lines {
			b.WriteByte(prefix(line.Kind))
			b.WriteString(line.Content)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func prefix(kind LineKind) byte {
	switch kind {
	case Added:
		return '+'
	case Removed:
		return '-'
	default:
		return ' '
	}
}

type op struct {
	kind    LineKind
	content string
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// editScript returns the shortest sequence of context, removed and added
// lines that turns a into b, from a longest-common-subsequence table.
func editScript(a, b []string) []op {
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}

	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]op, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			ops = append(ops, op{Context, a[i]})
			i++
			j++
		case j == len(b) || (i < len(a) && lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, op{Removed, a[i]})
			i++
		default:
			ops = append(ops, op{Added, b[j]})
			j++
		}
	}

	return ops
}

// group cuts ops into hunks, merging changes separated by at most twice
// the context.
func group(ops []op, context int) []Hunk {
	var hunks []Hunk

	origLine, fmtLine := 1, 1
	var current *Hunk
	trailing := 0

	flush := func() {
		if current == nil {
			return
		}

		// Drop context beyond what follows the last change.
		drop := max(trailing-context, 0)
		current.Lines = current.Lines[:len(current.Lines)-drop]
		current.OriginalCount -= drop
		current.FormattedCount -= drop
		hunks = append(hunks, *current)
		current = nil
	}

	for idx, o := range ops {
		if o.kind != Context && current == nil {
			start := max(idx-context, 0)
			trailing = 0
			current = &Hunk{
				OriginalStart:  origLine - (idx - start),
				FormattedStart: fmtLine - (idx - start),
			}

			for _, c := range ops[start:idx] {
				current.Lines = append(current.Lines, Line{Kind: Context, Content: c.content})
				current.OriginalCount++
				current.FormattedCount++
			}
		}

		if current != nil {
			if o.kind == Context && trailing >= 2*context {
				flush()
			} else {
				current.Lines = append(current.Lines, Line{Kind: o.kind, Content: o.content})

				switch o.kind {
				case Context:
					trailing++
					current.OriginalCount++
					current.FormattedCount++
				case Removed:
					trailing = 0
					current.OriginalCount++
				case Added:
					trailing = 0
					current.FormattedCount++
				}
			}
		}

		if o.kind != Added {
			origLine++
		}
		if o.kind != Removed {
			fmtLine++
		}
	}

	flush()

	return hunks
}

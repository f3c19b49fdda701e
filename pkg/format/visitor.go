// Package format reconstructs brace-delimited sources: it walks the parsed
// items of each block, re-emits them at the current indentation, and splices
// the original comments back in between them.
package format

import (
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/bracefmt/pkg/comment"
	"github.com/yaklabco/bracefmt/pkg/config"
	"github.com/yaklabco/bracefmt/pkg/shape"
	"github.com/yaklabco/bracefmt/pkg/source"
)

// Visitor holds the state of one file's formatting pass. It is not safe for
// concurrent use; the runner gives every file its own Visitor.
type Visitor struct {
	file   *source.File
	cfg    *config.Config
	lines  config.FileLines
	logger *log.Logger

	buf         strings.Builder
	lastPos     int
	blockIndent shape.Indent
	indents     shape.Stack

	// isIfElseBlock is set by the if-chain emitter for the next block it
	// visits when another arm follows.
	isIfElseBlock bool
}

// NewVisitor creates a visitor for file. A nil logger discards debug output.
func NewVisitor(file *source.File, cfg *config.Config, logger *log.Logger) *Visitor {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Visitor{
		file:   file,
		cfg:    cfg,
		lines:  cfg.FileLines.ForFile(file.Path),
		logger: logger,
	}
}

// String returns everything emitted so far.
func (v *Visitor) String() string {
	return v.buf.String()
}

func (v *Visitor) push(s string) {
	v.buf.WriteString(s)
}

func (v *Visitor) snippet(span source.Span) string {
	return v.file.Snippet(span)
}

// nextSpan returns the span from the last processed position to hi.
func (v *Visitor) nextSpan(hi int) source.Span {
	return source.Sp(v.lastPos, hi)
}

func (v *Visitor) indent() {
	v.blockIndent = v.blockIndent.BlockIndent(v.cfg)
	v.indents.Push()
}

func (v *Visitor) unindent() {
	v.indents.Pop()
	v.blockIndent = v.blockIndent.BlockUnindent(v.cfg)
}

func (v *Visitor) newlineIndent() string {
	return v.blockIndent.StringWithNewline(v.cfg)
}

// lastLineWidth returns the display width of the last line in the buffer.
func (v *Visitor) lastLineWidth() int {
	out := v.buf.String()
	if idx := strings.LastIndexByte(out, '\n'); idx >= 0 {
		out = out[idx+1:]
	}

	if v.cfg.HardTabs {
		out = strings.ReplaceAll(out, "\t", strings.Repeat(" ", v.cfg.TabSpaces))
	}

	return comment.Width(out)
}

func (v *Visitor) lastChar() byte {
	out := v.buf.String()
	if out == "" {
		return 0
	}

	return out[len(out)-1]
}

func (v *Visitor) isEmpty() bool {
	return v.buf.Len() == 0
}

// outOfRange reports whether span lies entirely outside the file_lines filter.
func (v *Visitor) outOfRange(span source.Span) bool {
	if v.lines == nil {
		return false
	}

	lo, hi := v.file.LineRange(span)

	return !v.lines.Intersects(lo, hi)
}

// transformMissing replaces every visible rune with X in coverage mode, so
// the output shows which text the formatter copied instead of producing.
func (v *Visitor) transformMissing(s string) string {
	if v.cfg.EmitMode != config.EmitCoverage {
		return s
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return r
		}
		return 'X'
	}, s)
}

package format

import (
	"strings"

	"github.com/yaklabco/bracefmt/pkg/comment"
	"github.com/yaklabco/bracefmt/pkg/shape"
	"github.com/yaklabco/bracefmt/pkg/source"
)

// formatMissing emits the comments and blank lines in the gap between the
// last processed position and end, then moves the position to end.
func (v *Visitor) formatMissing(end int) {
	if end <= v.lastPos {
		return
	}

	span := v.nextSpan(end)
	if v.outOfRange(span) {
		v.push(v.snippet(span))
		v.lastPos = end

		return
	}

	v.emitGap(span)
	v.lastPos = end
}

// formatMissingTail emits whatever follows the last item of the file and
// terminates non-empty output with exactly one newline.
func (v *Visitor) formatMissingTail() {
	end := v.file.Len()
	if end > v.lastPos {
		span := v.nextSpan(end)
		if v.outOfRange(span) {
			v.push(v.snippet(span))
			v.lastPos = end

			return
		}

		v.emitGapComments(span)
		v.lastPos = end
	}

	if !v.isEmpty() && v.lastChar() != '\n' {
		v.push("\n")
	}
}

// emitGap writes the comments of span followed by the line breaks that
// separate them from the next item.
func (v *Visitor) emitGap(span source.Span) {
	trailing, prevNL := v.emitGapComments(span)

	if v.isEmpty() {
		return
	}

	breaks := strings.Count(trailing, "\n")
	if prevNL {
		breaks++
	}

	breaks = clamp(breaks, v.cfg.BlankLinesLowerBound+1, v.cfg.BlankLinesUpperBound+1)
	if v.lastChar() == '{' {
		breaks = 1
	}

	v.push(strings.Repeat("\n", breaks))
	v.push(v.blockIndent.String(v.cfg))
}

// emitGapComments writes every comment in span on its own line, or on the
// line of the preceding text when nothing separates them. It returns the
// text after the last comment and whether that comment ended with a newline.
func (v *Visitor) emitGapComments(span source.Span) (string, bool) {
	text := v.snippet(span)
	lastHi := 0
	prevNL := false

	for _, slice := range comment.Slices(text) {
		if slice.Kind != comment.Comment {
			continue
		}

		between := text[lastHi:slice.Offset]
		sub := v.transformMissing(slice.Text)
		commentShape := shape.Indented(v.blockIndent, v.cfg).Comment(v.cfg)

		sameLine := !v.isEmpty() && !strings.Contains(between, "\n") && !prevNL
		if sameLine {
			commentShape, sameLine = v.trailingCommentShape(commentShape, sub)
		}

		switch {
		case sameLine:
			v.push(" ")
		case v.isEmpty():
			v.push(v.blockIndent.String(v.cfg))
		default:
			breaks := strings.Count(between, "\n")
			if prevNL {
				breaks++
			}
			if v.lastChar() == '{' {
				breaks = 1
			}

			v.push(strings.Repeat("\n", clamp(breaks, 1, v.cfg.BlankLinesUpperBound+1)))
			v.push(v.blockIndent.String(v.cfg))
		}

		if rewritten, ok := comment.Rewrite(sub, commentShape, v.cfg, !sameLine); ok {
			v.push(rewritten)
		} else {
			v.push(strings.TrimRight(sub, "\n"))
		}

		prevNL = strings.HasSuffix(slice.Text, "\n")
		lastHi = slice.End()
	}

	return text[lastHi:], prevNL
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		hi = lo
	}

	return min(max(n, lo), hi)
}

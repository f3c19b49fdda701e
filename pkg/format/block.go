package format

import (
	"strings"

	"github.com/yaklabco/bracefmt/pkg/comment"
	"github.com/yaklabco/bracefmt/pkg/shape"
	"github.com/yaklabco/bracefmt/pkg/source"
	"github.com/yaklabco/bracefmt/pkg/syntax"
)

// braceCompensation is the width of an opening or closing brace.
const braceCompensation = 1

// EmptyBlockStyle says whether an empty block may stay on one line.
type EmptyBlockStyle int

const (
	// SingleLine allows an empty block to render as `{}`.
	SingleLine EmptyBlockStyle = iota
	// MultiLine always puts the closing brace on its own line.
	MultiLine
)

// BlockKind tags which item walker a block's items go through.
type BlockKind int

const (
	// BlockStatements is a function or control-flow body.
	BlockStatements BlockKind = iota
	// BlockModule is a module, impl or trait body.
	BlockModule
)

// Block is a brace-delimited run of items being reformatted as one unit.
type Block struct {
	Items      []Item
	InnerAttrs []*syntax.Node
	EmptyStyle EmptyBlockStyle
	Span       source.Span
	Kind       BlockKind
}

// StatementBlock builds the Block of a function or control-flow body.
func StatementBlock(file *source.File, b *syntax.Block, style EmptyBlockStyle) Block {
	return Block{
		Items:      statements(file, b.Items),
		InnerAttrs: b.InnerAttrs,
		EmptyStyle: style,
		Span:       b.Span,
		Kind:       BlockStatements,
	}
}

// ModuleBlock builds the Block of a module, impl or trait body.
func ModuleBlock(b *syntax.Block, style EmptyBlockStyle) Block {
	return Block{
		Items:      moduleEntries(b.Items),
		InnerAttrs: b.InnerAttrs,
		EmptyStyle: style,
		Span:       b.Span,
		Kind:       BlockModule,
	}
}

func (v *Visitor) isEmptyBlock(b Block) bool {
	return len(b.Items) == 0 &&
		len(b.InnerAttrs) == 0 &&
		!comment.ContainsComment(v.snippet(b.Span))
}

// VisitBlock emits b, which must start at the last processed position.
func (v *Visitor) VisitBlock(b Block) {
	loLine, _ := v.file.LineAt(b.Span.Lo)
	hiLine, _ := v.file.LineAt(b.Span.Hi)
	v.logger.Debug("visit block", "lo", loLine, "hi", hiLine, "items", len(b.Items))

	unindentComment := v.isIfElseBlock && len(b.Items) > 0
	v.isIfElseBlock = false

	v.lastPos += braceCompensation
	v.indent()
	v.push("{")

	if v.isEmptyBlock(b) {
		v.unindent()
		if b.EmptyStyle == SingleLine && v.lastLineWidth() < v.cfg.MaxWidth {
			v.push("}")
		} else {
			v.push(v.newlineIndent())
			v.push("}")
		}
		v.lastPos = b.Span.Hi

		return
	}

	v.trimSpacesAfterOpeningBrace(b)

	for _, attr := range b.InnerAttrs {
		v.visitItem(attr)
	}

	switch b.Kind {
	case BlockStatements:
		v.walkStmts(b.Items)
	case BlockModule:
		v.visitItemsWithReordering(b.Items)
	}

	if n := len(b.Items); n > 0 && b.Items[n-1].RequiresSemicolon(v.cfg) {
		v.push(";")
	}

	rest := v.nextSpan(b.Span.Hi)
	if v.outOfRange(rest) {
		v.push(v.snippet(rest))
		v.unindent()
	} else {
		v.closeBlock(v.nextSpan(b.Span.Hi-braceCompensation), unindentComment)
	}

	v.lastPos = b.Span.Hi
}

// trimSpacesAfterOpeningBrace drops blank lines between the opening brace and
// the first inner attribute or item.
func (v *Visitor) trimSpacesAfterOpeningBrace(b Block) {
	if len(b.Items) == 0 {
		return
	}

	hi := b.Items[0].Span().Lo
	if len(b.InnerAttrs) > 0 {
		hi = b.InnerAttrs[0].Span.Lo
	}

	slices := comment.Slices(v.snippet(v.nextSpan(hi)))
	if len(slices) == 0 || slices[0].Kind != comment.Normal {
		return
	}

	if idx := strings.LastIndexByte(slices[0].Text, '\n'); idx >= 0 {
		v.lastPos += idx
	}
}

// closeBlock emits the comments between the last item and the closing brace,
// then the brace itself, and pops the block's indent level.
// With unindentComment set, comments are emitted one level shallower so they
// line up with a following `} else {`.
func (v *Visitor) closeBlock(span source.Span, unindentComment bool) {
	lastHi := span.Lo
	unindented := false
	prevEndsWithNewline := false
	extraNewline := false

	for _, slice := range comment.Slices(v.snippet(span)) {
		sub := v.transformMissing(slice.Text)
		v.logger.Debug("close block", "kind", slice.Kind, "offset", slice.Offset, "text", sub)

		switch {
		case slice.Kind == comment.Comment:
			if !unindented && unindentComment {
				unindented = true
				v.unindent()
			}

			between := v.snippet(source.Sp(lastHi, span.Lo+slice.Offset))
			sameLine := !strings.Contains(between, "\n") && !prevEndsWithNewline

			commentShape := shape.Indented(v.blockIndent, v.cfg).Comment(v.cfg)
			if sameLine {
				commentShape, sameLine = v.trailingCommentShape(commentShape, sub)
			}

			if sameLine {
				v.push(" ")
			} else {
				if strings.Count(between, "\n") >= 2 || extraNewline {
					v.push("\n")
				}
				v.push(v.newlineIndent())
			}

			if rewritten, ok := comment.Rewrite(sub, commentShape, v.cfg, !sameLine); ok {
				v.push(rewritten)
			} else {
				v.push(sub)
			}
		case isFiller(slice.Text):
			extraNewline = prevEndsWithNewline && strings.Contains(slice.Text, "\n")
			continue
		default:
			v.push(v.newlineIndent())
			v.push(strings.TrimSpace(sub))
		}

		prevEndsWithNewline = strings.HasSuffix(slice.Text, "\n")
		extraNewline = false
		lastHi = span.Lo + slice.End()
	}

	if unindented {
		v.indent()
	}
	v.unindent()
	v.push(v.newlineIndent())
	v.push("}")
}

// trailingCommentShape narrows sh for comment sub placed after the content of
// the current line. It reports false when no width would be left, or when
// wrapping would split a one-line comment: continuation lines at the visual
// indent would read back as separate own-line comments.
func (v *Visitor) trailingCommentShape(sh shape.Shape, sub string) (shape.Shape, bool) {
	// 1 = the space before the comment marker
	offset := 1 + max(0, v.lastLineWidth()-v.blockIndent.Width())

	narrowed, ok := sh.VisualIndent(offset).SubWidth(offset)
	if !ok || narrowed.Width == 0 {
		return sh, false
	}

	if v.wrapsOntoLines(sub, narrowed) {
		return sh, false
	}

	return narrowed, true
}

// wrapsOntoLines reports whether rewriting the one-line comment sub into sh
// yields more than one line.
func (v *Visitor) wrapsOntoLines(sub string, sh shape.Shape) bool {
	if !v.cfg.WrapComments || strings.Contains(strings.TrimRight(sub, " \t\r\n"), "\n") {
		return false
	}

	rewritten, ok := comment.Rewrite(sub, sh, v.cfg, false)

	return ok && strings.Contains(rewritten, "\n")
}

// isFiller reports whether s holds nothing but whitespace and semicolons.
func isFiller(s string) bool {
	return strings.TrimSpace(strings.ReplaceAll(s, ";", "")) == ""
}

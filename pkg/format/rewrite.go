package format

import (
	"strings"

	"github.com/yaklabco/bracefmt/pkg/source"
	"github.com/yaklabco/bracefmt/pkg/syntax"
)

// rewriteText renders an opaque node or head. Single-line text has its
// whitespace normalized token by token; multi-line text is re-indented to
// the current block indent.
func (v *Visitor) rewriteText(span source.Span) string {
	text := v.snippet(span)
	if text == "" {
		return ""
	}

	toks, err := syntax.Lex(text)

	if !strings.Contains(text, "\n") {
		if err != nil {
			return strings.TrimSpace(text)
		}

		return collapse(toks)
	}

	if err != nil || newlineInLiteral(toks) {
		return text
	}

	return v.reindent(text, v.file.LineIndent(span.Lo))
}

// collapse joins tokens with single spaces where the source had whitespace.
func collapse(toks []syntax.Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 && tok.SpaceBefore && !tok.Is(";") && !tok.Is(",") {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}

	return b.String()
}

// newlineInLiteral reports whether a string or char literal spans lines,
// in which case re-indenting would change its value.
func newlineInLiteral(toks []syntax.Token) bool {
	for _, tok := range toks {
		if (tok.Kind == syntax.TokString || tok.Kind == syntax.TokChar) && strings.Contains(tok.Text, "\n") {
			return true
		}
	}

	return false
}

// reindent moves the continuation lines of text from the original indent to
// the current block indent, keeping any deeper relative indentation.
func (v *Visitor) reindent(text, origIndent string) string {
	indent := v.blockIndent.String(v.cfg)
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = strings.TrimRight(line, " \t")
		case strings.TrimSpace(line) == "":
			lines[i] = ""
		case strings.HasPrefix(line, origIndent):
			lines[i] = indent + strings.TrimRight(line[len(origIndent):], " \t")
		default:
			lines[i] = indent + strings.TrimSpace(line)
		}
	}

	return strings.Join(lines, "\n")
}

// endsWithLineComment reports whether text ends inside a line comment, so
// nothing may follow it on the same line.
func endsWithLineComment(text string) bool {
	toks, err := syntax.Lex(text)
	if err != nil || len(toks) == 0 {
		return false
	}

	last := toks[len(toks)-1]

	return last.Kind == syntax.TokComment && strings.HasPrefix(last.Text, "//")
}

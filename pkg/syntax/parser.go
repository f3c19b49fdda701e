package syntax

import (
	"fmt"

	"github.com/yaklabco/bracefmt/pkg/source"
)

type parser struct {
	file  *source.File
	toks  []Token
	match []int // index of the matching delimiter, -1 for other tokens
}

// Parse parses a whole source file.
func Parse(file *source.File) (*File, error) {
	all, err := Lex(string(file.Content))
	if err != nil {
		return nil, err
	}

	toks := make([]Token, 0, len(all))
	for _, tok := range all {
		if tok.Kind != TokComment {
			toks = append(toks, tok)
		}
	}

	p := &parser{file: file, toks: toks}
	if err := p.matchDelims(); err != nil {
		return nil, err
	}

	attrs, start := p.innerAttrs(0, len(toks))

	return &File{
		Source:     file,
		InnerAttrs: attrs,
		Items:      p.items(start, len(toks), false),
	}, nil
}

func (p *parser) matchDelims() error {
	p.match = make([]int, len(p.toks))
	var stack []int

	for i, tok := range p.toks {
		p.match[i] = -1

		switch tok.Kind {
		case TokOpen:
			stack = append(stack, i)
		case TokClose:
			if len(stack) == 0 {
				return p.errorAt(tok.Span.Lo, "an item", fmt.Sprintf("`%s`", tok.Text))
			}

			open := stack[len(stack)-1]
			if want := closerFor(p.toks[open].Text); want != tok.Text {
				return p.errorAt(tok.Span.Lo, fmt.Sprintf("`%s`", want), fmt.Sprintf("`%s`", tok.Text))
			}

			stack = stack[:len(stack)-1]
			p.match[open] = i
			p.match[i] = open
		default:
		}
	}

	if len(stack) > 0 {
		open := p.toks[stack[len(stack)-1]]
		return p.errorAt(len(p.file.Content), fmt.Sprintf("`%s`", closerFor(open.Text)), "end of file")
	}

	return nil
}

func (p *parser) errorAt(offset int, expected, found string) error {
	line, col := p.file.LineAt(offset)
	return &Error{Offset: offset, Line: line, Column: col, Expected: expected, Found: found}
}

func (p *parser) items(lo, hi int, stmt bool) []*Node {
	var out []*Node
	for i := lo; i < hi; {
		node, next := p.item(i, hi, stmt)
		if node != nil {
			out = append(out, node)
		}
		i = next
	}

	return out
}

func (p *parser) block(open int, stmt bool) *Block {
	closeIdx := p.match[open]
	attrs, start := p.innerAttrs(open+1, closeIdx)

	return &Block{
		Span:       source.Sp(p.toks[open].Span.Lo, p.toks[closeIdx].Span.Hi),
		InnerAttrs: attrs,
		Items:      p.items(start, closeIdx, stmt),
	}
}

func (p *parser) innerAttrs(i, hi int) ([]*Node, int) {
	var attrs []*Node
	for i+2 < hi && p.toks[i].Is("#") && p.toks[i+1].Is("!") && p.toks[i+2].Is("[") {
		end := p.match[i+2] + 1
		attrs = append(attrs, &Node{
			Kind:  KindAttr,
			Span:  p.spanOf(i, end),
			Head:  p.spanOf(i, end),
			Inner: true,
		})
		i = end
	}

	return attrs, i
}

//nolint:gocyclo,cyclop // One dispatch over item and statement starters.
func (p *parser) item(i, hi int, stmt bool) (*Node, int) {
	tok := p.toks[i]
	if tok.Is(";") {
		return nil, i + 1
	}

	if tok.Is("#") {
		open := i + 1
		inner := p.is(open, hi, "!")
		if inner {
			open++
		}

		if p.is(open, hi, "[") {
			end := p.match[open] + 1
			return &Node{Kind: KindAttr, Span: p.spanOf(i, end), Head: p.spanOf(i, end), Inner: inner}, end
		}
	}

	j := p.skipVisibility(i, hi)
	k := p.skipQualifiers(j, hi)

	switch {
	case p.is(k, hi, "fn"):
		return p.bodyItem(i, k, hi, KindFn, true)
	case p.is(k, hi, "impl"), p.is(k, hi, "trait"):
		return p.bodyItem(i, k, hi, KindContainer, false)
	case p.is(j, hi, "use"):
		return p.semiItem(i, hi, KindUse)
	case p.is(j, hi, "mod"):
		if p.is(j+2, hi, "{") {
			return p.bodyItem(i, j, hi, KindMod, false)
		}
		return p.semiItem(i, hi, KindMod)
	}

	if stmt && j == i {
		switch {
		case p.is(i, hi, "let"):
			return p.semiItem(i, hi, KindLet)
		case p.is(i, hi, "if"):
			return p.ifChain(i, hi)
		case tok.Kind == TokLifetime && p.is(i+1, hi, ":"),
			p.is(i, hi, "loop"), p.is(i, hi, "while"), p.is(i, hi, "for"),
			p.is(i, hi, "unsafe"), tok.Is("{"):
			return p.blockExpr(i, hi)
		case p.is(i, hi, "match"), p.isBraceMacro(i, hi):
			return p.groupExpr(i, hi)
		}
	}

	if !stmt || isItemKeyword(p.toks[j].Text) {
		return p.verbatim(i, hi)
	}

	return p.semiItem(i, hi, KindExpr)
}

func (p *parser) is(i, hi int, text string) bool {
	return i < hi && p.toks[i].Is(text)
}

func (p *parser) isBraceMacro(i, hi int) bool {
	if p.toks[i].Kind != TokIdent || !p.is(i+1, hi, "!") {
		return false
	}

	if p.is(i+2, hi, "{") {
		return true
	}

	return i+3 < hi && p.toks[i+2].Kind == TokIdent && p.toks[i+3].Is("{")
}

func (p *parser) skipVisibility(i, hi int) int {
	if !p.is(i, hi, "pub") {
		return i
	}

	if p.is(i+1, hi, "(") {
		return p.match[i+1] + 1
	}

	return i + 1
}

func (p *parser) skipQualifiers(i, hi int) int {
	for i < hi {
		switch p.toks[i].Text {
		case "const", "async", "unsafe", "default", "safe":
			i++
		case "extern":
			i++
			if i < hi && p.toks[i].Kind == TokString {
				i++
			}
		default:
			return i
		}
	}

	return i
}

// bodyItem parses an item whose head runs from i to the first brace at depth
// zero after from.
func (p *parser) bodyItem(i, from, hi int, kind Kind, stmtBody bool) (*Node, int) {
	brace := p.findBrace(from, hi)
	if brace < 0 {
		return p.verbatim(i, hi)
	}

	body := p.block(brace, stmtBody)

	return &Node{
		Kind: kind,
		Span: source.Sp(p.toks[i].Span.Lo, body.Span.Hi),
		Head: p.headSpan(i, brace),
		Body: body,
	}, p.match[brace] + 1
}

func (p *parser) semiItem(i, hi int, kind Kind) (*Node, int) {
	end, semi := p.scanStmtEnd(i, hi)
	span := p.spanOf(i, end)

	return &Node{Kind: kind, Span: span, Head: span, HasSemi: semi}, end
}

func (p *parser) ifChain(i, hi int) (*Node, int) {
	node := &Node{Kind: KindIf}

	for k := i; ; {
		brace := p.findBrace(k, hi)
		if brace < 0 {
			return p.semiItem(i, hi, KindExpr)
		}

		body := p.block(brace, true)
		node.Arms = append(node.Arms, Arm{Head: p.headSpan(k, brace), Body: body})

		next := p.match[brace] + 1
		if p.is(next, hi, "else") && (p.is(next+1, hi, "if") || p.is(next+1, hi, "{")) {
			k = next
			continue
		}

		node.Span = source.Sp(p.toks[i].Span.Lo, body.Span.Hi)
		node.Head = node.Arms[0].Head

		return node, next
	}
}

func (p *parser) blockExpr(i, hi int) (*Node, int) {
	brace := p.findBrace(i, hi)
	if brace < 0 {
		return p.semiItem(i, hi, KindExpr)
	}

	body := p.block(brace, true)
	head := source.Sp(p.toks[i].Span.Lo, p.toks[i].Span.Lo)
	if brace > i {
		head = p.headSpan(i, brace)
	}

	next := p.match[brace] + 1
	semi := p.is(next, hi, ";")
	end := body.Span.Hi
	if semi {
		end = p.toks[next].Span.Hi
		next++
	}

	return &Node{
		Kind:    KindBlockExpr,
		Span:    source.Sp(p.toks[i].Span.Lo, end),
		Head:    head,
		Body:    body,
		HasSemi: semi,
	}, next
}

// groupExpr parses an expression that ends with its first brace group, such
// as a match or a brace-delimited macro call.
func (p *parser) groupExpr(i, hi int) (*Node, int) {
	brace := p.findBrace(i, hi)
	if brace < 0 {
		return p.semiItem(i, hi, KindExpr)
	}

	next := p.match[brace] + 1
	semi := p.is(next, hi, ";")
	if semi {
		next++
	}

	span := p.spanOf(i, next)

	return &Node{Kind: KindExpr, Span: span, Head: span, HasSemi: semi}, next
}

// verbatim parses an item kept as text: up to a semicolon at depth zero, or
// through the first brace group and an optional semicolon after it.
func (p *parser) verbatim(i, hi int) (*Node, int) {
	end := hi
	semi := false

	for k := i; k < hi; k++ {
		tok := p.toks[k]
		if tok.Kind == TokOpen {
			if tok.Text != "{" {
				k = p.match[k]
				continue
			}

			end = p.match[k] + 1
			if p.is(end, hi, ";") {
				end++
				semi = true
			}

			break
		}

		if tok.Is(";") {
			end = k + 1
			semi = true

			break
		}
	}

	span := p.spanOf(i, end)

	return &Node{Kind: KindVerbatim, Span: span, Head: span, HasSemi: semi}, end
}

// scanStmtEnd returns the token index just past the statement starting at i
// and whether it ended with a semicolon.
func (p *parser) scanStmtEnd(i, hi int) (int, bool) {
	for k := i; k < hi; k++ {
		if p.toks[k].Kind == TokOpen {
			k = p.match[k]
			continue
		}

		if p.toks[k].Is(";") {
			return k + 1, true
		}
	}

	return hi, false
}

// findBrace returns the index of the first `{` at depth zero, or -1 when a
// semicolon or the end of the range comes first.
func (p *parser) findBrace(i, hi int) int {
	for k := i; k < hi; k++ {
		tok := p.toks[k]
		switch {
		case tok.Is("{"):
			return k
		case tok.Kind == TokOpen:
			k = p.match[k]
		case tok.Is(";"):
			return -1
		}
	}

	return -1
}

// spanOf covers tokens [from, to).
func (p *parser) spanOf(from, to int) source.Span {
	return source.Sp(p.toks[from].Span.Lo, p.toks[to-1].Span.Hi)
}

// headSpan covers the text from token from up to the brace, including any
// comments, without trailing whitespace.
func (p *parser) headSpan(from, brace int) source.Span {
	end := p.toks[brace].Span.Lo
	for end > p.toks[from].Span.Lo && isSpace(p.file.Content[end-1]) {
		end--
	}

	return source.Sp(p.toks[from].Span.Lo, end)
}

func isItemKeyword(word string) bool {
	switch word {
	case "struct", "enum", "const", "static", "type", "trait", "impl", "extern",
		"macro_rules", "mod", "use", "fn", "crate":
		return true
	default:
		return false
	}
}

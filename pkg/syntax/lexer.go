package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/bracefmt/pkg/comment"
	"github.com/yaklabco/bracefmt/pkg/source"
)

type lexer struct {
	src    string
	pos    int
	tokens []Token
	space  bool
}

// Lex splits src into tokens. Whitespace is dropped; comments are kept as
// TokComment tokens.
func Lex(src string) ([]Token, error) {
	lex := &lexer{src: src}
	for lex.pos < len(src) {
		if err := lex.next(); err != nil {
			return nil, err
		}
	}

	return lex.tokens, nil
}

func (l *lexer) next() error {
	c := l.src[l.pos]
	start := l.pos

	switch {
	case isSpace(c):
		l.pos++
		l.space = true
		return nil
	case l.has("//"):
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
		l.emit(TokComment, start)
	case l.has("/*"):
		end, closed := comment.ScanBlockComment(l.src, l.pos)
		if !closed {
			return l.errorAt(end, "`*/`", "end of file")
		}
		l.pos = end
		l.emit(TokComment, start)
	case c == '"' || (c == 'b' && l.peek(1) == '"') || (c == 'c' && l.peek(1) == '"'):
		if c != '"' {
			l.pos++
		}
		if err := l.string(); err != nil {
			return err
		}
		l.emit(TokString, start)
	case isRawStart(l.src, l.pos):
		if err := l.rawString(); err != nil {
			return err
		}
		l.emit(TokString, start)
	case c == 'b' && l.peek(1) == '\'':
		l.pos++
		l.pos = charEnd(l.src, l.pos)
		l.emit(TokChar, start)
	case c == '\'':
		end := charEnd(l.src, l.pos)
		if end == l.pos+1 {
			l.pos++
			for l.pos < len(l.src) && comment.IsIdentByte(l.src[l.pos]) {
				l.pos++
			}
			l.emit(TokLifetime, start)
			return nil
		}
		l.pos = end
		l.emit(TokChar, start)
	case comment.IsIdentByte(c):
		for l.pos < len(l.src) && comment.IsIdentByte(l.src[l.pos]) {
			l.pos++
		}
		l.emit(TokIdent, start)
	case c == '(' || c == '[' || c == '{':
		l.pos++
		l.emit(TokOpen, start)
	case c == ')' || c == ']' || c == '}':
		l.pos++
		l.emit(TokClose, start)
	default:
		_, size := utf8.DecodeRuneInString(l.src[l.pos:])
		l.pos += size
		l.emit(TokPunct, start)
	}

	return nil
}

func (l *lexer) emit(kind TokenKind, start int) {
	l.tokens = append(l.tokens, Token{
		Kind:        kind,
		Span:        source.Sp(start, l.pos),
		Text:        l.src[start:l.pos],
		SpaceBefore: l.space,
	})
	l.space = false
}

func (l *lexer) has(prefix string) bool {
	return len(l.src)-l.pos >= len(prefix) && l.src[l.pos:l.pos+len(prefix)] == prefix
}

func (l *lexer) peek(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}

	return l.src[l.pos+n]
}

func (l *lexer) string() error {
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
		case '"':
			l.pos++
			return nil
		default:
			l.pos++
		}
	}

	return l.errorAt(len(l.src), "`\"`", "end of file")
}

func (l *lexer) rawString() error {
	for l.src[l.pos] != '#' && l.src[l.pos] != '"' {
		l.pos++ // b, c, r prefixes
	}

	hashes := 0
	for l.src[l.pos] == '#' {
		hashes++
		l.pos++
	}
	l.pos++ // opening quote

	closer := "\"" + strings.Repeat("#", hashes)
	for l.pos < len(l.src) {
		if l.has(closer) {
			l.pos += len(closer)
			return nil
		}
		l.pos++
	}

	return l.errorAt(len(l.src), "`"+closer+"`", "end of file")
}

func (l *lexer) errorAt(offset int, expected, found string) error {
	file := source.NewFile("", []byte(l.src))
	line, col := file.LineAt(offset)

	return &Error{Offset: offset, Line: line, Column: col, Expected: expected, Found: found}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// isRawStart recognizes r"..", r#".."#, br"..", and cr"..".
func isRawStart(s string, pos int) bool {
	if pos > 0 && comment.IsIdentByte(s[pos-1]) {
		return false
	}

	i := pos
	if i < len(s) && (s[i] == 'b' || s[i] == 'c') {
		i++
	}

	if i >= len(s) || s[i] != 'r' {
		return false
	}
	i++

	for i < len(s) && s[i] == '#' {
		i++
	}

	return i < len(s) && s[i] == '"'
}

// charEnd returns the end of a char literal starting at the quote at pos,
// or pos+1 when the quote starts a lifetime.
func charEnd(s string, pos int) int {
	next := pos + 1
	if next >= len(s) {
		return len(s)
	}

	if s[next] == '\\' {
		for end := next + 2; end < len(s) && s[end] != '\n'; end++ {
			if s[end] == '\'' {
				return end + 1
			}
		}

		return next
	}

	_, size := utf8.DecodeRuneInString(s[next:])
	if next+size < len(s) && s[next+size] == '\'' {
		return next + size + 1
	}

	return next
}

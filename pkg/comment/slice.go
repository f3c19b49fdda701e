// Package comment classifies source text into comment and code slices and
// re-wraps comments for output.
package comment

import "unicode/utf8"

// Kind tags a slice as comment or ordinary code and whitespace.
type Kind int

const (
	// Normal is code or whitespace.
	Normal Kind = iota
	// Comment is a line or block comment, including a line comment's newline.
	Comment
)

func (k Kind) String() string {
	if k == Comment {
		return "comment"
	}

	return "normal"
}

// Slice is one classified run of text.
type Slice struct {
	Kind Kind

	// Offset is the byte offset of Text within the sliced input.
	Offset int

	Text string
}

// End returns the offset just past the slice.
func (s Slice) End() int {
	return s.Offset + len(s.Text)
}

// Slices splits s into alternating normal and comment slices.
// Concatenating the Text of every slice reproduces s exactly.
func Slices(s string) []Slice {
	var out []Slice

	start := 0
	pos := 0
	for pos < len(s) {
		switch {
		case s[pos] == '"':
			pos = skipString(s, pos+1)
		case isRawStringStart(s, pos):
			pos = skipRawString(s, pos)
		case s[pos] == '\'':
			pos = skipCharOrLifetime(s, pos)
		case hasPrefixAt(s, pos, "//"):
			end := lineCommentEnd(s, pos)
			out = appendNormal(out, s, start, pos)
			out = append(out, Slice{Kind: Comment, Offset: pos, Text: s[pos:end]})
			start, pos = end, end
		case hasPrefixAt(s, pos, "/*"):
			end := BlockCommentEnd(s, pos)
			out = appendNormal(out, s, start, pos)
			out = append(out, Slice{Kind: Comment, Offset: pos, Text: s[pos:end]})
			start, pos = end, end
		default:
			pos++
		}
	}

	return appendNormal(out, s, start, len(s))
}

// ContainsComment reports whether s contains a line or block comment.
func ContainsComment(s string) bool {
	for _, slice := range Slices(s) {
		if slice.Kind == Comment {
			return true
		}
	}

	return false
}

// BlockCommentEnd returns the offset just past the block comment starting at
// pos, honoring nesting. An unterminated comment runs to the end of s.
func BlockCommentEnd(s string, pos int) int {
	end, _ := ScanBlockComment(s, pos)
	return end
}

// ScanBlockComment is BlockCommentEnd that also reports whether the comment
// was terminated.
func ScanBlockComment(s string, pos int) (int, bool) {
	depth := 0
	for pos < len(s) {
		switch {
		case hasPrefixAt(s, pos, "/*"):
			depth++
			pos += 2
		case hasPrefixAt(s, pos, "*/"):
			depth--
			pos += 2
			if depth == 0 {
				return pos, true
			}
		default:
			pos++
		}
	}

	return len(s), false
}

func appendNormal(out []Slice, s string, start, end int) []Slice {
	if end <= start {
		return out
	}

	return append(out, Slice{Kind: Normal, Offset: start, Text: s[start:end]})
}

func lineCommentEnd(s string, pos int) int {
	for pos < len(s) {
		if s[pos] == '\n' {
			return pos + 1
		}
		pos++
	}

	return len(s)
}

// skipString returns the offset just past the closing quote of a string whose
// body starts at pos.
func skipString(s string, pos int) int {
	for pos < len(s) {
		switch s[pos] {
		case '\\':
			pos += 2
		case '"':
			return pos + 1
		default:
			pos++
		}
	}

	return len(s)
}

func isRawStringStart(s string, pos int) bool {
	if s[pos] != 'r' {
		return false
	}

	if pos > 0 && IsIdentByte(s[pos-1]) {
		// br"..." is a raw byte string; any other identifier ending in r is not.
		if s[pos-1] != 'b' || (pos > 1 && IsIdentByte(s[pos-2])) {
			return false
		}
	}

	next := pos + 1
	for next < len(s) && s[next] == '#' {
		next++
	}

	return next < len(s) && s[next] == '"'
}

func skipRawString(s string, pos int) int {
	pos++ // r
	hashes := 0
	for pos < len(s) && s[pos] == '#' {
		hashes++
		pos++
	}
	pos++ // opening quote

	for pos < len(s) {
		if s[pos] == '"' && closesRaw(s, pos+1, hashes) {
			return pos + 1 + hashes
		}
		pos++
	}

	return len(s)
}

func closesRaw(s string, pos, hashes int) bool {
	for i := range hashes {
		if pos+i >= len(s) || s[pos+i] != '#' {
			return false
		}
	}

	return true
}

// skipCharOrLifetime skips a char literal, or only the quote of a lifetime.
func skipCharOrLifetime(s string, pos int) int {
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

func hasPrefixAt(s string, pos int, prefix string) bool {
	return len(s)-pos >= len(prefix) && s[pos:pos+len(prefix)] == prefix
}

// IsIdentByte reports whether b can appear in an identifier.
func IsIdentByte(b byte) bool {
	return b == '_' || b >= 0x80 ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

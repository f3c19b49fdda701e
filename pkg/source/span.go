// Package source provides the immutable source buffer and byte spans over it.
package source

import "fmt"

// Span is a half-open byte range [Lo, Hi) over one source file.
type Span struct {
	// Lo is the byte index where the span begins (inclusive).
	Lo int

	// Hi is the byte index where the span ends (exclusive).
	Hi int
}

// Sp builds a span from two offsets.
func Sp(lo, hi int) Span {
	return Span{Lo: lo, Hi: hi}
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.Hi - s.Lo
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Lo == s.Hi
}

// Valid reports whether Lo <= Hi and both offsets are non-negative.
func (s Span) Valid() bool {
	return s.Lo >= 0 && s.Lo <= s.Hi
}

// Contains returns true if the given offset is within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Lo && offset < s.Hi
}

// To returns the span covering s and other.
func (s Span) To(other Span) Span {
	return Span{Lo: min(s.Lo, other.Lo), Hi: max(s.Hi, other.Hi)}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Lo, s.Hi)
}

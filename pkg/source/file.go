package source

import (
	"fmt"
	"sort"
)

// LineInfo describes the byte layout of one line.
type LineInfo struct {
	// StartOffset is the byte offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte offset where the line terminator begins,
	// or the end of content for an unterminated last line.
	NewlineStart int

	// EndOffset is the byte offset just past the line terminator.
	EndOffset int
}

// File is an immutable snapshot of one source file.
type File struct {
	Path    string
	Content []byte
	Lines   []LineInfo
}

// OutOfBoundsError reports a span that does not fit the buffer.
type OutOfBoundsError struct {
	Span Span
	Len  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("span %s out of bounds for buffer of %d bytes", e.Span, e.Len)
}

// NewFile creates a snapshot and computes its line table.
func NewFile(path string, content []byte) *File {
	return &File{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// Len returns the size of the buffer in bytes.
func (f *File) Len() int {
	return len(f.Content)
}

// Snippet returns the verbatim text of a span.
// It panics with *OutOfBoundsError when the span is malformed or does not fit
// the buffer; callers treat that as an internal error.
func (f *File) Snippet(s Span) string {
	if !s.Valid() || s.Hi > len(f.Content) {
		panic(&OutOfBoundsError{Span: s, Len: len(f.Content)})
	}

	return string(f.Content[s.Lo:s.Hi])
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (f *File) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(f.Content) {
		lastLine := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - lastLine.StartOffset + 1
	}

	lineIdx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(f.Lines) {
		lineIdx = len(f.Lines) - 1
	}

	lineInfo := f.Lines[lineIdx]
	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// LineRange returns the 1-based first and last line touched by a span.
// An empty span reports the line it sits on for both.
func (f *File) LineRange(s Span) (int, int) {
	lo, _ := f.LineAt(s.Lo)
	if s.IsEmpty() {
		return lo, lo
	}

	hi, _ := f.LineAt(s.Hi - 1)

	return lo, hi
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (f *File) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	lineInfo := f.Lines[line-1]

	return f.Content[lineInfo.StartOffset:lineInfo.NewlineStart]
}

// LineIndent returns the leading whitespace of the line containing offset.
func (f *File) LineIndent(offset int) string {
	line, _ := f.LineAt(offset)
	content := f.LineContent(line)

	end := 0
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}

	return string(content[:end])
}

package syntax

import "fmt"

// Error is a parse failure with the marker that was expected and the text
// actually found.
type Error struct {
	Offset   int
	Line     int
	Column   int
	Expected string
	Found    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: expected %s, found %s", e.Line, e.Column, e.Expected, e.Found)
}

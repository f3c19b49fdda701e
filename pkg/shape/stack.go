package shape

import (
	"errors"
	"fmt"
)

// ErrUnbalanced is returned when indent pushes and pops do not match.
var ErrUnbalanced = errors.New("unbalanced block indentation")

// Stack counts block indent pushes and pops during one formatting pass.
type Stack struct {
	depth int
}

// Push records one block indent.
func (s *Stack) Push() {
	s.depth++
}

// Pop records one block unindent.
// It panics when there is nothing to pop; the formatter recovers this as an
// internal error for the current file.
func (s *Stack) Pop() {
	if s.depth == 0 {
		panic(fmt.Errorf("pop at depth 0: %w", ErrUnbalanced))
	}

	s.depth--
}

// Depth returns the number of outstanding pushes.
func (s *Stack) Depth() int {
	return s.depth
}

// Check returns ErrUnbalanced when pushes are still outstanding.
func (s *Stack) Check() error {
	if s.depth != 0 {
		return fmt.Errorf("%d levels still open: %w", s.depth, ErrUnbalanced)
	}

	return nil
}

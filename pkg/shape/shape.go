package shape

import "github.com/yaklabco/bracefmt/pkg/config"

// Shape is the space available to a piece of formatted text.
type Shape struct {
	// Width is the number of columns available after Indent.
	Width int

	// Indent is where continuation lines start.
	Indent Indent

	// Offset is the visual column the text starts at, relative to the block indent.
	Offset int
}

// Indented returns the shape of a line starting at indent.
func Indented(indent Indent, cfg *config.Config) Shape {
	return Shape{
		Width:  max(0, cfg.MaxWidth-indent.Width()),
		Indent: indent,
		Offset: indent.Alignment,
	}
}

// Comment narrows the shape to the configured comment width.
func (s Shape) Comment(cfg *config.Config) Shape {
	s.Width = min(s.Width, max(0, cfg.CommentWidth-s.Indent.Width()))
	return s
}

// VisualIndent moves the start of the shape right by extra columns.
// Width is unchanged; callers shrink it with SubWidth.
func (s Shape) VisualIndent(extra int) Shape {
	alignment := s.Offset + extra

	return Shape{
		Width:  s.Width,
		Indent: Indent{Block: s.Indent.Block, Alignment: alignment},
		Offset: alignment,
	}
}

// SubWidth removes width columns from the shape.
// It reports false when fewer than width columns are available.
func (s Shape) SubWidth(width int) (Shape, bool) {
	if width > s.Width {
		return Shape{}, false
	}

	s.Width -= width

	return s, true
}

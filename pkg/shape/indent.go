// Package shape tracks indentation and the width available to formatted text.
package shape

import (
	"strings"

	"github.com/yaklabco/bracefmt/pkg/config"
)

// Indent is an indentation made of whole block levels plus visual alignment.
type Indent struct {
	// Block is the width of block indentation, in columns.
	// It is always a multiple of tab_spaces except after unindenting past zero.
	Block int

	// Alignment is extra visual indentation, always rendered as spaces.
	Alignment int
}

// Empty returns the zero indent.
func Empty() Indent {
	return Indent{}
}

// BlockIndent returns the indent one level deeper.
func (i Indent) BlockIndent(cfg *config.Config) Indent {
	i.Block += cfg.TabSpaces
	return i
}

// BlockUnindent returns the indent one level shallower.
func (i Indent) BlockUnindent(cfg *config.Config) Indent {
	if i.Block < cfg.TabSpaces {
		i.Alignment = max(0, i.Alignment-(cfg.TabSpaces-i.Block))
		i.Block = 0
		return i
	}

	i.Block -= cfg.TabSpaces

	return i
}

// Width returns the total width of the indent in columns.
func (i Indent) Width() int {
	return i.Block + i.Alignment
}

// String renders the indent as whitespace.
func (i Indent) String(cfg *config.Config) string {
	if !cfg.HardTabs || cfg.TabSpaces <= 0 {
		return strings.Repeat(" ", i.Width())
	}

	tabs := i.Block / cfg.TabSpaces
	spaces := i.Block%cfg.TabSpaces + i.Alignment

	return strings.Repeat("\t", tabs) + strings.Repeat(" ", spaces)
}

// StringWithNewline renders a newline followed by the indent.
func (i Indent) StringWithNewline(cfg *config.Config) string {
	return "\n" + i.String(cfg)
}

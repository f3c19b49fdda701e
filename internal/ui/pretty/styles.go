// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Changed lipgloss.Style

	FilePath lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader     lipgloss.Style
	TableSeparator  lipgloss.Style
	TableErrorRow   lipgloss.Style
	TableChangedRow lipgloss.Style
	OptionName      lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Changed: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),

		FilePath: lipgloss.NewStyle().Bold(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).TabWidth(lipgloss.NoTabConversion),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).TabWidth(lipgloss.NoTabConversion),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).TabWidth(lipgloss.NoTabConversion),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableErrorRow:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		TableChangedRow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		OptionName:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	// Diff lines carry source text, whose tabs must survive.
	verbatim := plain.TabWidth(lipgloss.NoTabConversion)
	return &Styles{
		Error:           plain,
		Warning:         plain,
		Changed:         plain,
		FilePath:        plain,
		DiffHeader:      plain,
		DiffHunk:        plain,
		DiffAdd:         verbatim,
		DiffRemove:      verbatim,
		DiffContext:     verbatim,
		SummaryTitle:    plain,
		SummaryValue:    plain,
		Success:         plain,
		Failure:         plain,
		TableHeader:     plain,
		TableSeparator:  plain,
		TableErrorRow:   plain,
		TableChangedRow: plain,
		OptionName:      plain,
		Dim:             plain,
		Bold:            plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

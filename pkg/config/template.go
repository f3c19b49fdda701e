package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// OptionInfo documents one configuration option.
type OptionInfo struct {
	Name        string
	Default     string
	Values      string
	Description string
}

// Options returns documentation for every persisted option, in template order.
func Options() []OptionInfo {
	return []OptionInfo{
		{"max_width", "100", "<unsigned integer>", "Maximum width of each output line"},
		{"hard_tabs", "false", "true|false", "Indent with tabs instead of spaces"},
		{"tab_spaces", "4", "<unsigned integer>", "Number of columns per indent level"},
		{
			"newline_style", string(NewlineAuto), "auto|native|unix|windows",
			"Line terminator of written files; auto keeps the first line ending of the input",
		},
		{
			"brace_style", string(BraceSameLineWhere), "always_next_line|prefer_same_line|same_line_where",
			"Placement of the opening brace of fn, mod, impl and trait bodies",
		},
		{
			"control_brace_style", string(ControlAlwaysSameLine),
			"always_same_line|closing_next_line|always_next_line",
			"Placement of braces and else in if chains",
		},
		{"empty_item_single_line", "true", "true|false", "Render empty fn and mod bodies as {}"},
		{"trailing_semicolon", "true", "true|false", "Add ; after a trailing return, break or continue"},
		{"wrap_comments", "false", "true|false", "Re-wrap line comments longer than comment_width"},
		{"comment_width", "80", "<unsigned integer>", "Maximum width of a wrapped comment line"},
		{"normalize_comments", "false", "true|false", "Turn single-line /* */ comments into // comments"},
		{"reorder_imports", "true", "true|false", "Sort groups of consecutive use declarations"},
		{"reorder_modules", "true", "true|false", "Sort groups of consecutive mod declarations"},
		{"blank_lines_upper_bound", "1", "<unsigned integer>", "Maximum blank lines kept between items"},
		{"blank_lines_lower_bound", "0", "<unsigned integer>", "Minimum blank lines between items"},
		{"file_lines", "[]", "[{file, start, end}]", "Restrict formatting to these line ranges"},
		{"ignore", "[]", "[<glob>]", "Glob patterns for files to skip during discovery"},
		{
			"emit_mode", string(EmitFiles), "files|stdout|diff|checkstyle|json|modified-lines|coverage",
			"What to do with formatted output",
		},
		{"color", string(ColorAuto), "auto|always|never", "Colored output"},
		{"verbosity", string(VerbosityNormal), "verbose|normal|quiet", "How much to print"},
		{"backups.enabled", "false", "true|false", "Keep a backup of each rewritten file"},
		{"backups.mode", "sidecar", "sidecar|xdg", "Where backups are stored"},
	}
}

// GenerateTemplate creates a commented configuration file with every option
// set to its default.
func GenerateTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	section := ""
	for _, opt := range Options() {
		name := opt.Name
		indent := ""

		if parent, child, ok := strings.Cut(opt.Name, "."); ok {
			if parent != section {
				buf.WriteString(fmt.Sprintf("\n%s:\n", parent))
				section = parent
			}
			name = child
			indent = "  "
		} else {
			buf.WriteString("\n")
		}

		buf.WriteString(fmt.Sprintf("%s# %s\n", indent, wrapComment(opt.Description, commentWrapWidth, indent)))
		buf.WriteString(fmt.Sprintf("%s# Values: %s\n", indent, opt.Values))
		buf.WriteString(fmt.Sprintf("%s%s: %s\n", indent, name, opt.Default))
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int, indent string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+indent+"# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# bracefmt configuration
# See: https://github.com/yaklabco/bracefmt`
}

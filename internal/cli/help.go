// Package cli provides the Cobra command structure for bracefmt.
package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/bracefmt/internal/configloader"
	"github.com/yaklabco/bracefmt/internal/ui/pretty"
	"github.com/yaklabco/bracefmt/pkg/config"
)

// annotationFormatHelp marks commands whose help lists emit modes and the
// configuration sources.
const annotationFormatHelp = "bracefmt:format-help"

type helpEntry struct {
	name string
	desc string
}

//nolint:gochecknoglobals // Read-only help table.
var emitModeHelp = []helpEntry{
	{string(config.EmitFiles), "rewrite files in place (default)"},
	{string(config.EmitStdout), "print the formatted source"},
	{string(config.EmitDiff), "print a unified diff of the changes"},
	{string(config.EmitJSON), "print changed line ranges as JSON"},
	{string(config.EmitCheckstyle), "print changes as Checkstyle XML"},
	{string(config.EmitModifiedLines), "print changed line ranges per file"},
	{string(config.EmitCoverage), "print the source with copied text masked as X"},
}

//nolint:gochecknoglobals // Read-only help table.
var configSourceHelp = []helpEntry{
	{configloader.ProjectConfigName, "project config, searched upward to the repository root"},
	{"rustfmt.toml", "read when no project config exists"},
	{configloader.EnvVarName("max_width"), "environment overrides, one BRACEFMT_* variable per option"},
	{"--config", "explicit file, applied after the project config"},
}

// HelpStyles are the lipgloss styles of the help output.
type HelpStyles struct {
	Heading lipgloss.Style
	Command lipgloss.Style
	Flag    lipgloss.Style
	Value   lipgloss.Style
	Example lipgloss.Style
}

// NewHelpStyles returns colored styles, or plain ones when color is off.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{Heading: plain, Command: plain, Flag: plain, Value: plain, Example: plain}
	}

	return &HelpStyles{
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Example: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for bracefmt commands. Color is decided
// per invocation from the --color flag and the output writer.
type HelpFormatter struct{}

// NewHelpFormatter creates a help formatter.
func NewHelpFormatter() *HelpFormatter {
	return &HelpFormatter{}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if index .Annotations "` + annotationFormatHelp + `"}}

{{ heading "Emit Modes:" }}
{{ emitModes }}

{{ heading "Configuration:" }}
{{ configSources }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs(styles *HelpStyles) template.FuncMap {
	return template.FuncMap{
		"heading": styles.Heading.Render,
		"command": styles.Command.Render,
		"example": styles.Example.Render,
		"flags": func(flags *pflag.FlagSet) string {
			return renderFlags(flags, styles)
		},
		"emitModes": func() string {
			return renderEntries(emitModeHelp, styles.Flag)
		},
		"configSources": func() string {
			return renderEntries(configSourceHelp, styles.Flag)
		},
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// render executes tmpl for command, styled for the command's output.
func (h *HelpFormatter) render(command *cobra.Command, name, tmpl string) error {
	out := command.OutOrStdout()

	colorMode := "auto"
	if flag := command.Flag("color"); flag != nil {
		colorMode = flag.Value.String()
	}

	styles := NewHelpStyles(pretty.IsColorEnabled(colorMode, out))

	parsed, err := template.New(name).Funcs(h.funcs(styles)).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}

	return parsed.Execute(out, command)
}

// ApplyToCommand installs the styled help and usage on cmd and, through
// cobra's inheritance, on all of its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.render(command, "usage", usageTemplate)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.render(command, "help", helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

// renderFlags lists the visible flags of set, one per line, with the value
// name dimmed and non-zero defaults appended.
func renderFlags(set *pflag.FlagSet, styles *HelpStyles) string {
	type row struct {
		names string
		value string
		usage string
	}

	var rows []row
	width := 0
	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		names := "    --" + flag.Name
		if flag.Shorthand != "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}

		value, usage := pflag.UnquoteUsage(flag)
		if !isZeroDefault(flag) {
			usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}

		rows = append(rows, row{names: names, value: value, usage: usage})
		width = max(width, len(names)+len(value)+1)
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		plain := len(r.names) + len(r.value) + 1
		lines = append(lines, "  "+styles.Flag.Render(r.names)+" "+styles.Value.Render(r.value)+
			strings.Repeat(" ", width-plain+3)+r.usage)
	}

	return strings.Join(lines, "\n")
}

func isZeroDefault(flag *pflag.Flag) bool {
	switch flag.DefValue {
	case "", "0", "false", "[]":
		return true
	default:
		return false
	}
}

func renderEntries(entries []helpEntry, nameStyle lipgloss.Style) string {
	width := 0
	for _, entry := range entries {
		width = max(width, len(entry.name))
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, "  "+nameStyle.Render(entry.name)+
			strings.Repeat(" ", width-len(entry.name)+3)+entry.desc)
	}

	return strings.Join(lines, "\n")
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

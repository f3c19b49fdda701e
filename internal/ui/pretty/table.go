package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/bracefmt/pkg/config"
	"github.com/yaklabco/bracefmt/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 20
	countWidth       = 7
	statusWidth      = 26
	minDescWidth     = 30
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableFormatter renders fixed-width tables sized to the terminal.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatFileTable lists every file that changed or failed, with its line
// counts and status. It returns "" when there is nothing to list.
func (t *TableFormatter) FormatFileTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var rows []runner.FileOutcome
	fileWidth := minFileWidth
	for _, file := range result.Files {
		if file.Error == nil && (file.Result == nil || !file.Result.Changed) {
			continue
		}
		rows = append(rows, file)
		fileWidth = max(fileWidth, runewidth.StringWidth(file.Path))
	}

	if len(rows) == 0 {
		return ""
	}

	fileWidth = min(fileWidth, max(minFileWidth, t.termWidth-2*countWidth-statusWidth-3*tablePadding))
	total := fileWidth + 2*countWidth + statusWidth + 3*tablePadding

	var builder strings.Builder

	header := fmt.Sprintf("%s  %*s  %*s  %s",
		runewidth.FillRight("FILE", fileWidth), countWidth, "ADDED", countWidth, "REMOVED", "STATUS")
	builder.WriteString(t.styles.TableHeader.Render(header) + "\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	for _, file := range rows {
		path := runewidth.FillRight(truncateLeft(file.Path, fileWidth), fileWidth)

		if file.Error != nil {
			line := fmt.Sprintf("%s  %*s  %*s  %s", path, countWidth, "", countWidth, "", "error")
			builder.WriteString(t.styles.TableErrorRow.Render(line) + "\n")
			continue
		}

		added, removed := 0, 0
		if d := file.Result.Diff; d != nil {
			added, removed = d.Additions, d.Deletions
		}

		line := fmt.Sprintf("%s  %*d  %*d  %s", path, countWidth, added, countWidth, removed, file.Result.Summary())
		builder.WriteString(t.styles.TableChangedRow.Render(line) + "\n")
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	return builder.String()
}

// FormatOptionsTable renders the documented options. When current is
// non-nil a VALUE column shows the effective setting of each option.
func (t *TableFormatter) FormatOptionsTable(options []config.OptionInfo, current map[string]string) string {
	nameWidth, defWidth := len("OPTION"), len("DEFAULT")
	for _, opt := range options {
		nameWidth = max(nameWidth, runewidth.StringWidth(opt.Name))
		defWidth = max(defWidth, runewidth.StringWidth(opt.Default))
	}

	valueWidth := 0
	if current != nil {
		valueWidth = len("VALUE")
		for _, opt := range options {
			valueWidth = max(valueWidth, runewidth.StringWidth(current[opt.Name]))
		}
	}

	used := nameWidth + defWidth + 2*tablePadding
	if valueWidth > 0 {
		used += valueWidth + tablePadding
	}
	descWidth := max(minDescWidth, t.termWidth-used)

	var builder strings.Builder

	row := func(name, def, value, desc string) string {
		cols := []string{runewidth.FillRight(name, nameWidth), runewidth.FillRight(def, defWidth)}
		if valueWidth > 0 {
			cols = append(cols, runewidth.FillRight(value, valueWidth))
		}
		cols = append(cols, desc)
		return strings.Join(cols, strings.Repeat(" ", tablePadding))
	}

	builder.WriteString(t.styles.TableHeader.Render(row("OPTION", "DEFAULT", "VALUE", "DESCRIPTION")) + "\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, used+descWidth)) + "\n")

	for _, opt := range options {
		desc := runewidth.Truncate(opt.Description, descWidth, ellipsis)
		line := row(opt.Name, opt.Default, current[opt.Name], desc)

		name := runewidth.FillRight(opt.Name, nameWidth)
		builder.WriteString(t.styles.OptionName.Render(name) + line[len(name):] + "\n")
	}

	return builder.String()
}

// truncateLeft shortens a path to width columns, keeping its end.
func truncateLeft(path string, width int) string {
	if runewidth.StringWidth(path) <= width {
		return path
	}

	runes := []rune(path)
	for i := range runes {
		rest := string(runes[i:])
		if runewidth.StringWidth(rest)+len(ellipsis) <= width {
			return ellipsis + rest
		}
	}

	return ellipsis
}

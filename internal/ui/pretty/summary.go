package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/bracefmt/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 files checked, 3 formatted, 1 error".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, check bool) string {
	parts := []string{fmt.Sprintf("%d %s checked", stats.FilesProcessed+stats.FilesErrored, plural(stats.FilesProcessed+stats.FilesErrored))}

	switch {
	case stats.FilesChanged == 0 && stats.FilesErrored == 0:
		return s.Success.Render("All files formatted") +
			s.Dim.Render(fmt.Sprintf(" (%s)", parts[0])) + "\n"
	case check && stats.FilesChanged > 0:
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d need formatting", stats.FilesChanged)))
	case stats.FilesChanged > 0:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d formatted", stats.FilesChanged)))
	}

	if stats.FilesErrored > 0 {
		word := "errors"
		if stats.FilesErrored == 1 {
			word = "error"
		}
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.FilesErrored, word)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, check bool) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")

	if stats.FilesChanged > 0 {
		label := "  Files changed:     "
		if check {
			label = "  Need formatting:   "
		}
		builder.WriteString(label + s.Warning.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}

	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	if stats.LinesAdded > 0 || stats.LinesRemoved > 0 {
		builder.WriteString("  Lines:             " +
			s.DiffAdd.Render(fmt.Sprintf("+%d", stats.LinesAdded)) + " " +
			s.DiffRemove.Render(fmt.Sprintf("-%d", stats.LinesRemoved)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed"))
	case check && stats.FilesChanged > 0:
		builder.WriteString(s.Warning.Render("Some files need formatting"))
	default:
		builder.WriteString(s.Success.Render("All files formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}

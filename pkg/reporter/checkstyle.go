package reporter

import (
	"bufio"
	"context"
	"encoding/xml"
	"fmt"

	"github.com/yaklabco/bracefmt/pkg/diff"
	"github.com/yaklabco/bracefmt/pkg/runner"
)

const checkstyleVersion = "4.3"

type checkstyleReport struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     int    `xml:"line,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
}

// CheckstyleReporter writes checkstyle XML with one warning per line that
// formatting would change, for CI tools that ingest that format.
type CheckstyleReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewCheckstyleReporter creates a new checkstyle reporter.
func NewCheckstyleReporter(opts Options) *CheckstyleReporter {
	return &CheckstyleReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *CheckstyleReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	report := checkstyleReport{Version: checkstyleVersion}

	if result != nil {
		for _, file := range result.Files {
			name := displayPath(file.Path, r.opts.WorkingDir)

			switch {
			case file.Error != nil:
				report.Files = append(report.Files, checkstyleFile{
					Name:   name,
					Errors: []checkstyleError{{Line: 1, Severity: "error", Message: file.Error.Error()}},
				})
			case file.Result != nil && file.Result.Changed:
				report.Files = append(report.Files, checkstyleFile{
					Name:   name,
					Errors: checkstyleErrors(file.Result.Original, file.Result.Formatted),
				})
			}
		}
	}

	if _, err := r.bw.WriteString(xml.Header); err != nil {
		return 0, fmt.Errorf("write checkstyle: %w", err)
	}

	encoder := xml.NewEncoder(r.bw)
	encoder.Indent("", "  ")

	if err := encoder.Encode(report); err != nil {
		return 0, fmt.Errorf("encode checkstyle: %w", err)
	}

	if err := r.bw.WriteByte('\n'); err != nil {
		return 0, fmt.Errorf("write checkstyle: %w", err)
	}

	return countChanged(result), nil
}

// checkstyleErrors reports each expected line at the original line it
// replaces or is inserted before.
func checkstyleErrors(original, formatted []byte) []checkstyleError {
	d := diff.Compute("", original, formatted, 0)
	if d == nil {
		return nil
	}

	var errs []checkstyleError
	for _, hunk := range d.Hunks {
		line := max(hunk.OriginalStart, 1)
		added := false

		for _, l := range hunk.Lines {
			if l.Kind != diff.Added {
				continue
			}
			added = true
			errs = append(errs, checkstyleError{
				Line:     line,
				Severity: "warning",
				Message:  fmt.Sprintf("Should be `%s`", l.Content),
			})
		}

		if !added {
			errs = append(errs, checkstyleError{Line: line, Severity: "warning", Message: "Should be removed"})
		}
	}

	return errs
}

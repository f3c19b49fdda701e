package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/bracefmt/pkg/diff"
	"github.com/yaklabco/bracefmt/pkg/runner"
)

// JSONFile lists the mismatches of one file.
type JSONFile struct {
	Name       string         `json:"name"`
	Mismatches []JSONMismatch `json:"mismatches"`
	Error      string         `json:"error,omitempty"`
}

// JSONMismatch is one replaced run of lines. Line numbers are 1-based and
// inclusive; an end before its begin denotes an empty side.
type JSONMismatch struct {
	OriginalBeginLine int    `json:"original_begin_line"`
	OriginalEndLine   int    `json:"original_end_line"`
	ExpectedBeginLine int    `json:"expected_begin_line"`
	ExpectedEndLine   int    `json:"expected_end_line"`
	Original          string `json:"original"`
	Expected          string `json:"expected"`
}

// JSONReporter writes one array with an entry per changed or failed file.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	files := r.buildOutput(result)

	if err := json.NewEncoder(r.bw).Encode(files); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return countChanged(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) []JSONFile {
	files := make([]JSONFile, 0)
	if result == nil {
		return files
	}

	for _, file := range result.Files {
		name := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			files = append(files, JSONFile{Name: name, Mismatches: []JSONMismatch{}, Error: file.Error.Error()})
			continue
		}

		if file.Result == nil || !file.Result.Changed {
			continue
		}

		files = append(files, JSONFile{
			Name:       name,
			Mismatches: mismatches(file.Result.Original, file.Result.Formatted),
		})
	}

	return files
}

// mismatches converts the context-free hunks between original and
// formatted into JSON mismatches.
func mismatches(original, formatted []byte) []JSONMismatch {
	d := diff.Compute("", original, formatted, 0)
	if d == nil {
		return []JSONMismatch{}
	}

	out := make([]JSONMismatch, 0, len(d.Hunks))
	for _, hunk := range d.Hunks {
		var removed, added []string
		for _, line := range hunk.Lines {
			switch line.Kind {
			case diff.Removed:
				removed = append(removed, line.Content)
			case diff.Added:
				added = append(added, line.Content)
			case diff.Context:
			}
		}

		out = append(out, JSONMismatch{
			OriginalBeginLine: hunk.OriginalStart,
			OriginalEndLine:   hunk.OriginalStart + hunk.OriginalCount - 1,
			ExpectedBeginLine: hunk.FormattedStart,
			ExpectedEndLine:   hunk.FormattedStart + hunk.FormattedCount - 1,
			Original:          strings.Join(removed, "\n"),
			Expected:          strings.Join(added, "\n"),
		})
	}

	return out
}

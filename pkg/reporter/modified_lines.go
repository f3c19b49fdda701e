package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/bracefmt/pkg/diff"
	"github.com/yaklabco/bracefmt/pkg/runner"
)

// ModifiedLinesReporter writes the replaced line runs of every changed
// file. Each run is a header "<orig line> <lines removed> <lines added>"
// followed by the added lines.
type ModifiedLinesReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewModifiedLinesReporter creates a new modified-lines reporter.
func NewModifiedLinesReporter(opts Options) *ModifiedLinesReporter {
	return &ModifiedLinesReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *ModifiedLinesReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Result == nil || !file.Result.Changed {
			continue
		}

		for _, chunk := range diff.Chunks(file.Result.Original, file.Result.Formatted) {
			fmt.Fprintf(r.bw, "%d %d %d\n", chunk.LineNumberOrig, chunk.LinesRemoved, len(chunk.Lines))
			for _, line := range chunk.Lines {
				fmt.Fprintln(r.bw, line)
			}
		}
	}

	return countChanged(result), nil
}

package reporter

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/bracefmt/pkg/runner"
)

// StdoutReporter writes formatted sources to the output instead of the
// files. With more than one file each source is preceded by "path:" and a
// blank line. Failed files are reported on the error writer.
type StdoutReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewStdoutReporter creates a new stdout reporter.
func NewStdoutReporter(opts Options) *StdoutReporter {
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = os.Stderr
	}

	return &StdoutReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *StdoutReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	withHeaders := len(result.Files) > 1

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprintf(r.opts.ErrorWriter, "%s: error: %v\n", path, file.Error)
			continue
		}

		if file.Result == nil {
			continue
		}

		if withHeaders {
			fmt.Fprintf(r.bw, "%s:\n\n", path)
		}

		if _, err := r.bw.Write(file.Result.Formatted); err != nil {
			return 0, fmt.Errorf("write %s: %w", path, err)
		}
	}

	return countChanged(result), nil
}

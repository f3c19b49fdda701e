// Package reporter writes formatting results in each emit mode.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/bracefmt/pkg/config"
	"github.com/yaklabco/bracefmt/pkg/runner"
)

// Reporter writes the results of a run.
type Reporter interface {
	// Report writes output for the given result.
	// It returns the number of files that changed or need formatting.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the options' emit mode.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	mode := opts.Mode
	if mode == "" {
		mode = config.EmitFiles
	}

	switch mode {
	case config.EmitFiles:
		return NewTextReporter(opts), nil
	case config.EmitStdout, config.EmitCoverage:
		return NewStdoutReporter(opts), nil
	case config.EmitDiff:
		return NewDiffReporter(opts), nil
	case config.EmitJSON:
		return NewJSONReporter(opts), nil
	case config.EmitCheckstyle:
		return NewCheckstyleReporter(opts), nil
	case config.EmitModifiedLines:
		return NewModifiedLinesReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported emit mode: %s", mode)
	}
}

// displayPath makes path relative to workDir when it lies beneath it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}

	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return filepath.ToSlash(rel)
}

// countChanged returns the number of files that changed.
func countChanged(result *runner.Result) int {
	if result == nil {
		return 0
	}

	var n int
	for _, file := range result.Files {
		if file.Result != nil && file.Result.Changed {
			n++
		}
	}

	return n
}

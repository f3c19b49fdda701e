package runner

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/bracefmt/pkg/pipeline"
)

// Run discovers files under opts.Paths and formats them concurrently.
// A failing file is recorded in its outcome and does not stop the others;
// only cancellation ends the run early.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("discovered files", "count", len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	pipelineOpts := pipeline.OptionsFromConfig(opts.Config)
	pipelineOpts.Logger = logger

	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			res, err := pipeline.ProcessFile(groupCtx, path, opts.Config, pipelineOpts)
			outcomes[idx] = FileOutcome{Path: path, Result: res, Error: err}

			if err != nil {
				logger.Debug("format failed", "path", path, "error", err)
			} else {
				logger.Debug("formatted", "path", path, "changed", res.Changed, "duration", res.Duration)
			}

			return nil
		})
	}

	waitErr := group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	result.Stats.Duration = time.Since(start)

	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}

	return result, nil
}

// RunContent formats content that did not come from discovery, such as stdin.
// The file system is never touched; name is used for reporting and for
// file_lines matching.
func RunContent(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	start := time.Now()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	pipelineOpts := pipeline.OptionsFromConfig(opts.Config)
	pipelineOpts.Write = false
	pipelineOpts.Logger = logger

	result := &Result{Files: make([]FileOutcome, 0, 1)}
	result.Stats.FilesDiscovered = 1

	res, err := pipeline.ProcessContent(ctx, name, content, opts.Config, pipelineOpts)
	if err != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	result.accumulate(FileOutcome{Path: name, Result: res, Error: err})
	result.Stats.Duration = time.Since(start)

	return result, nil
}

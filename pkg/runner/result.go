package runner

import (
	"time"

	"github.com/yaklabco/bracefmt/pkg/pipeline"
)

// FileOutcome is what happened to one file.
type FileOutcome struct {
	// Path is the file that was processed.
	Path string

	// Result is nil when Error is set.
	Result *pipeline.Result

	// Error is set if the file could not be formatted or written.
	Error error
}

// Stats are aggregate counts for a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesChanged    int
	FilesWritten    int
	FilesErrored    int
	LinesAdded      int
	LinesRemoved    int
	Duration        time.Duration
}

// Result is the outcome of a run, with files in discovery order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file needs or received formatting.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.Changed {
		r.Stats.FilesChanged++
	}

	if outcome.Result.Written {
		r.Stats.FilesWritten++
	}

	if d := outcome.Result.Diff; d != nil {
		r.Stats.LinesAdded += d.Additions
		r.Stats.LinesRemoved += d.Deletions
	}
}

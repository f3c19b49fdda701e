// Package pipeline runs one source file through the formatter safely: it
// reads and hashes the file, formats it, diffs the result, and writes it
// back only when nothing else touched the file in the meantime.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/bracefmt/pkg/config"
	"github.com/yaklabco/bracefmt/pkg/diff"
	"github.com/yaklabco/bracefmt/pkg/format"
	"github.com/yaklabco/bracefmt/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrFormatFailure indicates the file could not be parsed or formatted.
	ErrFormatFailure = errors.New("format failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")

	// ErrFileModified indicates the file changed while it was being formatted.
	ErrFileModified = errors.New("file modified during formatting")
)

// Result is the outcome of formatting one file.
type Result struct {
	// Path is the file that was processed.
	Path string

	// Original is the content that was read.
	Original []byte

	// Formatted is the formatter output.
	Formatted []byte

	// Changed is true when Formatted differs from Original.
	Changed bool

	// Diff holds the line changes; nil when nothing changed.
	Diff *diff.Diff

	// Written is true when Formatted replaced the file on disk.
	Written bool

	// BackupCreated is true when the original was backed up before writing.
	BackupCreated bool

	// Duration is how long formatting took.
	Duration time.Duration
}

// Summary returns a short human-readable status.
func (r *Result) Summary() string {
	switch {
	case r.Written && r.BackupCreated:
		return "formatted (backup created)"
	case r.Written:
		return "formatted"
	case r.Changed:
		return "needs formatting"
	default:
		return "ok"
	}
}

// Options controls what the pipeline does with formatted output.
type Options struct {
	// Write replaces changed files on disk.
	Write bool

	// Backup configures backups made before writing.
	Backup fsutil.BackupConfig

	// Context is the number of unchanged lines around each diff hunk.
	Context int

	// Logger receives per-file debug output. Nil discards it.
	Logger *log.Logger
}

// OptionsFromConfig derives pipeline options from the effective config.
// Files are written only in files emit mode outside check mode.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Write: cfg.EmitMode == config.EmitFiles && !cfg.Check,
		Backup: fsutil.BackupConfig{
			Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
		Context: diff.DefaultContext,
	}
}

// ProcessFile formats the file at path.
//
// The steps are:
//  1. Read and hash the original file.
//  2. Format the content in memory.
//  3. Compute the diff.
//  4. When writing, check for concurrent modification, back up the
//     original if enabled, and replace the file atomically.
func ProcessFile(ctx context.Context, path string, cfg *config.Config, opts Options) (*Result, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := ProcessContent(ctx, path, content, cfg, opts)
	if err != nil {
		return nil, err
	}

	if !opts.Write || !result.Changed {
		return result, nil
	}

	if err := commit(ctx, info, result, opts); err != nil {
		return nil, err
	}

	return result, nil
}

// commit writes the formatted content over the file described by info.
func commit(ctx context.Context, info *fsutil.FileInfo, result *Result, opts Options) error {
	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return fmt.Errorf("check modified: %w", err)
	}
	if modified {
		return fmt.Errorf("%w: %s", ErrFileModified, info.Path)
	}

	created, err := fsutil.CreateBackup(ctx, info.Path, opts.Backup)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, info.Path, result.Formatted, info.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return nil
}

// ProcessContent formats content that is already in memory, such as stdin.
// It never touches the file system.
func ProcessContent(ctx context.Context, path string, content []byte, cfg *config.Config, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	start := time.Now()

	formatted, err := format.Source(content, cfg, format.Options{Path: path, Logger: opts.Logger})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormatFailure, err)
	}

	result := &Result{
		Path:      path,
		Original:  content,
		Formatted: formatted.Output,
		Changed:   formatted.Changed,
		Duration:  time.Since(start),
	}

	if result.Changed {
		result.Diff = diff.Compute(path, content, formatted.Output, opts.Context)
	}

	return result, nil
}

// categorizeError wraps an error with the matching pipeline error type.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err is one of the pipeline error types.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrFormatFailure) ||
		errors.Is(err, ErrWriteFailure) ||
		errors.Is(err, ErrFileModified)
}

package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/bracefmt/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for per-file errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Mode selects the emitter.
	Mode config.EmitMode

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Check reports files as needing formatting rather than formatted.
	Check bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Verbose lists unchanged files and prints a detailed summary.
	Verbose bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Mode:        config.EmitFiles,
		Color:       "auto",
		ShowSummary: true,
	}
}

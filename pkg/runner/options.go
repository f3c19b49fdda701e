// Package runner formats many files concurrently.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/bracefmt/pkg/config"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to format. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process directory.
	WorkingDir string

	// ExcludeGlobs skip matching files and directories, relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks traverses symlinked directories.
	FollowSymlinks bool

	// Jobs limits concurrent files. 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config

	// Logger receives progress and per-file debug output. Nil discards it.
	Logger *log.Logger
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

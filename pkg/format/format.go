package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/bracefmt/pkg/config"
	"github.com/yaklabco/bracefmt/pkg/source"
	"github.com/yaklabco/bracefmt/pkg/syntax"
)

// Options carries per-call settings that are not formatting options.
type Options struct {
	// Path names the file in errors and selects its file_lines ranges.
	Path string

	// Logger receives debug output of the visitor. Nil discards it.
	Logger *log.Logger
}

// Result is the outcome of formatting one source.
type Result struct {
	Output  []byte
	Changed bool
}

// InternalError reports a formatter bug hit while formatting one file.
// The file is left untouched.
type InternalError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("internal error formatting %s: %s: %v", e.Path, e.Reason, e.Err)
	}

	return fmt.Sprintf("internal error formatting %s: %s", e.Path, e.Reason)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Source formats src. A parse error leaves the source unformatted and is
// returned wrapped; an inconsistency inside the formatter is returned as an
// *InternalError.
func Source(src []byte, cfg *config.Config, opts Options) (result Result, err error) {
	original := string(src)
	normalized := strings.ReplaceAll(original, "\r\n", "\n")

	file := source.NewFile(opts.Path, []byte(normalized))

	parsed, err := syntax.Parse(file)
	if err != nil {
		return Result{}, fmt.Errorf("parse %s: %w", displayPath(opts.Path), err)
	}

	defer func() {
		if r := recover(); r != nil {
			result = Result{}
			err = recoveredError(opts.Path, r)
		}
	}()

	visitor := NewVisitor(file, cfg, opts.Logger)
	visitor.VisitFile(parsed)

	if checkErr := visitor.indents.Check(); checkErr != nil {
		return Result{}, &InternalError{Path: opts.Path, Reason: "after visiting file", Err: checkErr}
	}

	out := ApplyNewlineStyle(cfg.NewlineStyle, original, visitor.String())

	return Result{Output: []byte(out), Changed: out != original}, nil
}

func recoveredError(path string, r any) error {
	if e, ok := r.(error); ok {
		return &InternalError{Path: path, Reason: "panic", Err: e}
	}

	return &InternalError{Path: path, Reason: fmt.Sprint(r)}
}

func displayPath(path string) string {
	if path == "" {
		return "<stdin>"
	}

	return path
}

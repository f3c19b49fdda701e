package cli

import "errors"

// Exit codes for bracefmt.
const (
	// ExitSuccess indicates every file was formatted or already formatted.
	ExitSuccess = 0

	// ExitNeedsFormatting indicates --check found files that would change.
	ExitNeedsFormatting = 1

	// ExitFileError indicates a file failed to parse, format or write.
	ExitFileError = 2

	// ExitUsageError indicates invalid command-line usage or configuration.
	ExitUsageError = 3
)

var (
	// ErrNeedsFormatting is returned in check mode when files would change.
	ErrNeedsFormatting = errors.New("files need formatting")

	// ErrFilesFailed is returned when at least one file could not be formatted.
	ErrFilesFailed = errors.New("some files could not be formatted")
)

// ExitCode maps the error returned by a command to a process exit code.
// Errors other than the two sentinels come from flag parsing, config
// loading or validation.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFileError
	case errors.Is(err, ErrNeedsFormatting):
		return ExitNeedsFormatting
	default:
		return ExitUsageError
	}
}

// IsSilent reports whether err only carries an exit status. The bare
// sentinels are returned after the reporter already printed the details.
func IsSilent(err error) bool {
	//nolint:errorlint // Wrapped sentinels carry a message that must be shown.
	return err == ErrNeedsFormatting || err == ErrFilesFailed
}

package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/bracefmt/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"xdg":     true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	requirePositive(result, "max_width", cfg.MaxWidth)
	requirePositive(result, "tab_spaces", cfg.TabSpaces)
	requirePositive(result, "comment_width", cfg.CommentWidth)

	validateEnums(cfg, result)

	if cfg.BlankLinesLowerBound < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "blank_lines_lower_bound",
			Value:   cfg.BlankLinesLowerBound,
			Message: "must be >= 0",
		})
	}

	if cfg.BlankLinesLowerBound > cfg.BlankLinesUpperBound {
		result.Errors = append(result.Errors, ValidationError{
			Field: "blank_lines_lower_bound",
			Value: cfg.BlankLinesLowerBound,
			Message: fmt.Sprintf("must not exceed blank_lines_upper_bound (%d)",
				cfg.BlankLinesUpperBound),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, xdg, none", cfg.Backups.Mode),
		})
	}

	if cfg.WrapComments && cfg.CommentWidth > cfg.MaxWidth {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "comment_width",
			Value:   cfg.CommentWidth,
			Message: fmt.Sprintf("exceeds max_width (%d); comments wrap at max_width", cfg.MaxWidth),
		})
	}

	validateIgnorePatterns(cfg, result)
	validateFileLines(cfg, result)

	return result
}

func requirePositive(result *ValidationResult, field string, value int) {
	if value > 0 {
		return
	}

	result.Errors = append(result.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: "must be > 0",
	})
}

// validateEnums checks that every enumerated option holds a known value.
func validateEnums(cfg *config.Config, result *ValidationResult) {
	enums := []struct {
		field   string
		value   string
		valid   bool
		allowed string
	}{
		{"newline_style", string(cfg.NewlineStyle), cfg.NewlineStyle.IsValid(), "auto, native, unix, windows"},
		{
			"brace_style", string(cfg.BraceStyle), cfg.BraceStyle.IsValid(),
			"always_next_line, prefer_same_line, same_line_where",
		},
		{
			"control_brace_style", string(cfg.ControlBraceStyle), cfg.ControlBraceStyle.IsValid(),
			"always_same_line, closing_next_line, always_next_line",
		},
		{
			"emit_mode", string(cfg.EmitMode), cfg.EmitMode.IsValid(),
			"files, stdout, diff, checkstyle, json, modified-lines, coverage",
		},
		{"color", string(cfg.Color), cfg.Color.IsValid(), "auto, always, never"},
		{"verbosity", string(cfg.Verbosity), cfg.Verbosity.IsValid(), "verbose, normal, quiet"},
	}

	for _, e := range enums {
		if e.valid {
			continue
		}
		result.Errors = append(result.Errors, ValidationError{
			Field:   e.field,
			Value:   e.value,
			Message: fmt.Sprintf("invalid value %q; must be one of: %s", e.value, e.allowed),
		})
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

func validateFileLines(cfg *config.Config, result *ValidationResult) {
	for i, r := range cfg.FileLines {
		if r.Start >= 1 && r.End >= r.Start {
			continue
		}
		result.Errors = append(result.Errors, ValidationError{
			Field:   fmt.Sprintf("file_lines[%d]", i),
			Value:   fmt.Sprintf("%d-%d", r.Start, r.End),
			Message: "need 1 <= start <= end",
		})
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}

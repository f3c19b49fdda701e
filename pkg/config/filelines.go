package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// LineRange is an inclusive, 1-based range of lines in one file.
// An empty File matches every file.
type LineRange struct {
	File  string `mapstructure:"file" yaml:"file,omitempty"`
	Start int    `mapstructure:"start" yaml:"start"`
	End   int    `mapstructure:"end" yaml:"end"`
}

// FileLines restricts formatting to a set of line ranges.
// An empty set means every line may be formatted.
type FileLines []LineRange

// IsAll returns true when no restriction is active.
func (fl FileLines) IsAll() bool {
	return len(fl) == 0
}

// ForFile returns the ranges that apply to path.
// It returns nil when no restriction is active, and an empty non-nil slice
// when ranges exist but none name this file.
func (fl FileLines) ForFile(path string) FileLines {
	if fl.IsAll() {
		return nil
	}

	matched := FileLines{}
	for _, r := range fl {
		if r.File == "" || sameFile(r.File, path) {
			matched = append(matched, r)
		}
	}

	return matched
}

// Intersects reports whether any line in [lo, hi] lies in a range.
// A nil receiver covers every line.
func (fl FileLines) Intersects(lo, hi int) bool {
	if fl == nil {
		return true
	}

	for _, r := range fl {
		if lo <= r.End && r.Start <= hi {
			return true
		}
	}

	return false
}

// ParseLineRange parses "path:start-end" or "start-end".
func ParseLineRange(raw string) (LineRange, error) {
	file := ""
	lines := raw
	if idx := strings.LastIndex(raw, ":"); idx >= 0 {
		file = raw[:idx]
		lines = raw[idx+1:]
	}

	startText, endText, ok := strings.Cut(lines, "-")
	if !ok {
		endText = startText
	}

	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return LineRange{}, fmt.Errorf("parse line range %q: %w", raw, err)
	}

	end, err := strconv.Atoi(strings.TrimSpace(endText))
	if err != nil {
		return LineRange{}, fmt.Errorf("parse line range %q: %w", raw, err)
	}

	if start < 1 || end < start {
		return LineRange{}, fmt.Errorf("parse line range %q: need 1 <= start <= end", raw)
	}

	return LineRange{File: file, Start: start, End: end}, nil
}

func sameFile(a, b string) bool {
	if a == b {
		return true
	}

	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)

	return errA == nil && errB == nil && absA == absB
}

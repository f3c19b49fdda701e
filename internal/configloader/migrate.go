package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/yaklabco/bracefmt/pkg/config"
)

// MigrationResult contains the result of converting a rustfmt config.
type MigrationResult struct {
	// Config is the converted configuration, defaults plus the converted options.
	Config *config.Config

	// Warnings lists options that were unknown or unsupported.
	Warnings []string

	// SourcePath is the path to the original rustfmt config.
	SourcePath string
}

// ConvertRustfmtConfig converts a rustfmt.toml file. Keys are normalized to
// snake_case, older option names are mapped to their replacements, and
// CamelCase values such as "AlwaysNextLine" become "always_next_line".
func ConvertRustfmtConfig(path string) (*MigrationResult, error) {
	cfg := config.NewConfig()

	warnings, err := loadTOMLFile(cfg, path)
	if err != nil {
		return nil, err
	}

	return &MigrationResult{Config: cfg, Warnings: warnings, SourcePath: path}, nil
}

// loadTOMLFile layers a rustfmt-style TOML file onto cfg.
func loadTOMLFile(cfg *config.Config, path string) ([]string, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, &ValidationError{FilePath: path, Message: fmt.Sprintf("parse TOML: %v", err)}
	}

	return overlay(cfg, raw, path)
}

// isTOML reports whether path names a TOML file.
func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// FindRustfmtConfig returns the rustfmt config in dir, or "" if there is none.
func FindRustfmtConfig(dir string) string {
	for _, name := range rustfmtConfigFiles {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`%s
# Migrated from: %s
`, config.DefaultTemplateHeader(), filepath.Base(sourcePath))
}

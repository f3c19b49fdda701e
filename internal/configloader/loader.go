// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered loading,
// environment variable support, validation, and rustfmt.toml migration.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/bracefmt/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration,
	// including a rustfmt.toml fallback.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Overrides are values set by CLI flags. These take highest precedence.
	Overrides *Overrides
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by layering all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.Overrides)
//  2. Environment variables (BRACEFMT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.bracefmt.yml upward search, else rustfmt.toml)
//  5. User config ($XDG_CONFIG_HOME/bracefmt/config.yml)
//  6. System config (/etc/bracefmt/config.yml)
//  7. Defaults
//
// Each file only sets the options it names, so a later layer can turn a
// boolean off again.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layer := func(path, label string, load func(*config.Config, string) ([]string, error)) error {
		warnings, err := load(cfg, path)
		if err != nil {
			return fmt.Errorf("load %s config: %w", label, err)
		}
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, path+": "+w)
		}
		result.LoadedFrom = append(result.LoadedFrom, path)
		return nil
	}

	if !opts.IgnoreSystemConfig && paths.System != "" {
		if err := layer(paths.System, "system", loadYAMLFile); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreUserConfig && paths.User != "" {
		if err := layer(paths.User, "user", loadYAMLFile); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreProjectConfig {
		switch {
		case paths.Project != "":
			if paths.Rustfmt != "" {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("both %s and %s exist; using %s", paths.Project, paths.Rustfmt, paths.Project))
			}
			if err := layer(paths.Project, "project", loadYAMLFile); err != nil {
				return nil, err
			}
		case paths.Rustfmt != "":
			if err := layer(paths.Rustfmt, "rustfmt", loadTOMLFile); err != nil {
				return nil, err
			}
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("read %s; run 'bracefmt migrate' to convert it to %s", paths.Rustfmt, ProjectConfigName))
		}
	}

	if opts.ExplicitPath != "" {
		load := loadYAMLFile
		if isTOML(opts.ExplicitPath) {
			load = loadTOMLFile
		}
		if err := layer(opts.ExplicitPath, "explicit", load); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.Overrides != nil {
		opts.Overrides.Apply(cfg)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadYAMLFile layers a YAML config file onto cfg.
func loadYAMLFile(cfg *config.Config, path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, &ValidationError{FilePath: path, Message: fmt.Sprintf("parse YAML: %v", err)}
	}

	return overlay(cfg, raw, path)
}

// overlay normalizes a decoded document and applies the options it sets
// to cfg, leaving every other option untouched.
func overlay(cfg *config.Config, raw map[string]any, source string) ([]string, error) {
	doc, warnings, err := normalizeDocument(raw)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.FilePath = source
		}
		return nil, err
	}

	sort.Strings(warnings)

	if len(doc) == 0 {
		return warnings, nil
	}

	content, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, &ValidationError{FilePath: source, Message: typeErrorMessage(err)}
	}

	return warnings, nil
}

// typeErrorMessage flattens a yaml.TypeError into one line.
func typeErrorMessage(err error) string {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		return typeErr.Errors[0]
	}
	return err.Error()
}

// WriteConfig writes cfg as YAML with a header comment. An existing file is
// only replaced when force is set.
func WriteConfig(cfg *config.Config, path, header string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

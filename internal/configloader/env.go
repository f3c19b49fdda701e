package configloader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/bracefmt/pkg/config"
)

// envVarPrefix is the prefix for all bracefmt environment variables.
const envVarPrefix = "BRACEFMT_"

// EnvVarName returns the environment variable that sets an option,
// such as BRACEFMT_MAX_WIDTH or BRACEFMT_BACKUPS_ENABLED.
func EnvVarName(option string) string {
	return envVarPrefix + strcase.ToScreamingSnake(strings.ReplaceAll(option, ".", "_"))
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Values are read as YAML scalars; ignore takes a comma-separated list and
// file_lines a comma-separated list of "file:start-end" ranges.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, opt := range config.Options() {
		envVar := EnvVarName(opt.Name)
		value, ok := os.LookupEnv(envVar)
		if !ok || value == "" {
			continue
		}

		parsed, err := parseEnvValue(opt.Name, value)
		if err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}

		doc := map[string]any{opt.Name: parsed}
		if parent, child, nested := strings.Cut(opt.Name, "."); nested {
			doc = map[string]any{parent: map[string]any{child: parsed}}
		}

		if _, err := overlay(cfg, doc, envVar); err != nil {
			return err
		}
	}

	return nil
}

func parseEnvValue(option, value string) (any, error) {
	switch option {
	case "ignore":
		return parseSliceValue(value), nil
	case "file_lines":
		var ranges config.FileLines
		for _, part := range parseSliceValue(value) {
			r, err := config.ParseLineRange(part)
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, r)
		}
		out := make([]map[string]any, 0, len(ranges))
		for _, r := range ranges {
			out = append(out, map[string]any{"file": r.File, "start": r.Start, "end": r.End})
		}
		return out, nil
	}

	var scalar any
	if err := yaml.Unmarshal([]byte(value), &scalar); err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", value, err)
	}

	return scalar, nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable, sorted, with
// the option description.
func ListEnvVars() []config.OptionInfo {
	vars := make([]config.OptionInfo, 0, len(config.Options()))
	for _, opt := range config.Options() {
		opt.Name = EnvVarName(opt.Name)
		vars = append(vars, opt)
	}

	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })

	return vars
}

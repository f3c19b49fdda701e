package configloader

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/yaklabco/bracefmt/pkg/config"
)

// optionAliases maps older or alternative rustfmt option names to the
// option they configure.
//
//nolint:gochecknoglobals // Read-only lookup table.
var optionAliases = map[string]string{
	"write_mode":             "emit_mode",
	"emit":                   "emit_mode",
	"fn_brace_style":         "brace_style",
	"item_brace_style":       "brace_style",
	"fn_empty_single_line":   "empty_item_single_line",
	"reorder_imported_names": "reorder_imports",
	"verbose":                "verbosity",
}

// unsupportedOptions are rustfmt options that are accepted but have no effect.
//
//nolint:gochecknoglobals // Read-only lookup table.
var unsupportedOptions = map[string]bool{
	"edition":                       true,
	"style_edition":                 true,
	"version":                       true,
	"unstable_features":             true,
	"required_version":              true,
	"disable_all_formatting":        true,
	"imports_granularity":           true,
	"group_imports":                 true,
	"imports_layout":                true,
	"use_small_heuristics":          true,
	"fn_params_layout":              true,
	"format_strings":                true,
	"format_macro_matchers":         true,
	"format_code_in_doc_comments":   true,
	"merge_derives":                 true,
	"use_field_init_shorthand":      true,
	"use_try_shorthand":             true,
	"match_block_trailing_comma":    true,
	"trailing_comma":                true,
	"struct_lit_width":              true,
	"fn_call_width":                 true,
	"chain_width":                   true,
	"single_line_if_else_max_width": true,
	"error_on_line_overflow":        true,
	"error_on_unformatted":          true,
	"skip_children":                 true,
	"hide_parse_errors":             true,
	"show_parse_errors":             true,
	"make_backup":                   true,
}

// enumOptions lists the options whose values are normalized from rustfmt's
// CamelCase spelling.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enumOptions = map[string]bool{
	"newline_style":       true,
	"brace_style":         true,
	"control_brace_style": true,
	"color":               true,
	"verbosity":           true,
}

// CanonicalKey returns the option name that key configures. Keys may be
// written in any case style or as a rustfmt alias.
func CanonicalKey(key string) string {
	canonical := strcase.ToSnake(strings.TrimSpace(key))
	if alias, ok := optionAliases[canonical]; ok {
		return alias
	}
	return canonical
}

// normalizeValue rewrites rustfmt spellings of a value, such as
// "AlwaysNextLine" or "ModifiedLines", into the form the config uses.
func normalizeValue(key string, value any) (any, error) {
	switch {
	case key == "emit_mode":
		if s, ok := value.(string); ok {
			return strcase.ToKebab(s), nil
		}
	case enumOptions[key]:
		if s, ok := value.(string); ok {
			return strcase.ToSnake(s), nil
		}
	case key == "file_lines":
		if s, ok := value.(string); ok {
			return parseRustfmtFileLines(s)
		}
	case key == "backups":
		if m, ok := value.(map[string]any); ok {
			out := make(map[string]any, len(m))
			for k, v := range m {
				out[strcase.ToSnake(k)] = v
			}
			return out, nil
		}
	}

	return value, nil
}

// knownOptions returns the top-level keys of the persisted options.
func knownOptions() map[string]bool {
	known := make(map[string]bool)
	for _, opt := range config.Options() {
		name, _, _ := strings.Cut(opt.Name, ".")
		known[name] = true
	}
	return known
}

// normalizeDocument canonicalizes the keys and values of a decoded config
// document. Unknown and unsupported options are dropped with a warning.
func normalizeDocument(raw map[string]any) (map[string]any, []string, error) {
	known := knownOptions()
	out := make(map[string]any, len(raw))

	var warnings []string
	for key, value := range raw {
		canonical := CanonicalKey(key)

		switch {
		case unsupportedOptions[canonical]:
			warnings = append(warnings, fmt.Sprintf("option %q is not supported; ignoring", key))
			continue
		case !known[canonical]:
			warnings = append(warnings, fmt.Sprintf("unknown option %q; ignoring", key))
			continue
		}

		normalized, err := normalizeValue(canonical, value)
		if err != nil {
			return nil, nil, &ValidationError{Field: canonical, Value: value, Message: err.Error()}
		}
		out[canonical] = normalized
	}

	return out, warnings, nil
}

// parseRustfmtFileLines parses rustfmt's JSON file_lines form,
// [{"file":"src/lib.rs","range":[7,13]}], into line ranges.
func parseRustfmtFileLines(text string) ([]map[string]any, error) {
	var entries []struct {
		File  string `json:"file"`
		Range [2]int `json:"range"`
	}
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		return nil, fmt.Errorf("parse file_lines JSON: %w", err)
	}

	ranges := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		ranges = append(ranges, map[string]any{
			"file":  entry.File,
			"start": entry.Range[0],
			"end":   entry.Range[1],
		})
	}

	return ranges, nil
}

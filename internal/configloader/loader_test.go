package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/bracefmt/pkg/config"
)

// newProject returns a temp directory marked as a VCS root so the upward
// config search stops there.
func newProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newProject(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.MaxWidth != config.DefaultMaxWidth {
		t.Errorf("expected max_width %d, got %d", config.DefaultMaxWidth, result.Config.MaxWidth)
	}
	if result.Config.BraceStyle != config.BraceSameLineWhere {
		t.Errorf("expected brace_style %q, got %q", config.BraceSameLineWhere, result.Config.BraceStyle)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ProjectConfigName), `
max_width: 80
hard_tabs: true
reorder_imports: false
brace_style: AlwaysNextLine
`)

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.MaxWidth != 80 {
		t.Errorf("expected max_width 80, got %d", cfg.MaxWidth)
	}
	if !cfg.HardTabs {
		t.Error("expected hard_tabs to be true")
	}
	if cfg.ReorderImports {
		t.Error("expected reorder_imports to be false")
	}
	if cfg.BraceStyle != config.BraceAlwaysNextLine {
		t.Errorf("expected brace_style %q, got %q", config.BraceAlwaysNextLine, cfg.BraceStyle)
	}
	if !cfg.ReorderModules {
		t.Error("unset options should keep their defaults")
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ProjectConfigName), "tab_spaces: 2\n")

	sub := filepath.Join(dir, "src", "bin")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.TabSpaces != 2 {
		t.Errorf("expected tab_spaces 2, got %d", result.Config.TabSpaces)
	}
}

func TestLoad_RustfmtFallback(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, "rustfmt.toml"), `
max_width = 120
newline_style = "Unix"
fn_brace_style = "AlwaysNextLine"
imports_granularity = "Crate"
`)

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.MaxWidth != 120 {
		t.Errorf("expected max_width 120, got %d", cfg.MaxWidth)
	}
	if cfg.NewlineStyle != config.NewlineUnix {
		t.Errorf("expected newline_style %q, got %q", config.NewlineUnix, cfg.NewlineStyle)
	}
	if cfg.BraceStyle != config.BraceAlwaysNextLine {
		t.Errorf("expected brace_style %q, got %q", config.BraceAlwaysNextLine, cfg.BraceStyle)
	}

	joined := strings.Join(result.Warnings, "\n")
	if !strings.Contains(joined, `"imports_granularity" is not supported`) {
		t.Errorf("expected unsupported-option warning, got %v", result.Warnings)
	}
	if !strings.Contains(joined, "bracefmt migrate") {
		t.Errorf("expected migrate hint, got %v", result.Warnings)
	}
}

func TestLoad_ProjectConfigWinsOverRustfmt(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ProjectConfigName), "max_width: 90\n")
	writeFile(t, filepath.Join(dir, ".rustfmt.toml"), "max_width = 70\n")

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.MaxWidth != 90 {
		t.Errorf("expected max_width 90, got %d", result.Config.MaxWidth)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "both") {
		t.Errorf("expected one 'both exist' warning, got %v", result.Warnings)
	}
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ProjectConfigName), "max_width: 90\nhard_tabs: true\n")

	custom := filepath.Join(dir, "custom.yml")
	writeFile(t, custom, "hard_tabs: false\n")

	opts := isolated(dir)
	opts.ExplicitPath = custom

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.MaxWidth != 90 {
		t.Errorf("expected max_width 90 from project config, got %d", result.Config.MaxWidth)
	}
	if result.Config.HardTabs {
		t.Error("explicit config should turn hard_tabs off again")
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != custom {
		t.Errorf("expected project then explicit config, got %v", result.LoadedFrom)
	}
}

func TestLoad_ExplicitTOML(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	custom := filepath.Join(dir, "fmt.toml")
	writeFile(t, custom, "tab_spaces = 2\nwrite_mode = \"Diff\"\n")

	opts := isolated(dir)
	opts.ExplicitPath = custom

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.TabSpaces != 2 {
		t.Errorf("expected tab_spaces 2, got %d", result.Config.TabSpaces)
	}
	if result.Config.EmitMode != config.EmitDiff {
		t.Errorf("expected emit_mode %q, got %q", config.EmitDiff, result.Config.EmitMode)
	}
}

func TestLoad_UnknownOptionWarns(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ProjectConfigName), "max_widht: 80\n")

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `unknown option "max_widht"`) {
		t.Errorf("expected unknown option warning, got %v", result.Warnings)
	}
	if result.Config.MaxWidth != config.DefaultMaxWidth {
		t.Errorf("unknown option must not change max_width, got %d", result.Config.MaxWidth)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "invalid enum", content: "brace_style: sideways\n", field: "brace_style"},
		{name: "zero width", content: "max_width: 0\n", field: "max_width"},
		{name: "blank line bounds", content: "blank_lines_lower_bound: 3\n", field: "blank_lines_lower_bound"},
		{name: "bad backup mode", content: "backups:\n  mode: cloud\n", field: "backups.mode"},
		{name: "wrong type", content: "max_width: wide\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t)
			writeFile(t, filepath.Join(dir, ProjectConfigName), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			if err == nil {
				t.Fatal("expected error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if tt.field != "" && verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ProjectConfigName), "max_width: 80\nhard_tabs: true\n")

	width := 60
	hardTabs := false
	mode := config.EmitJSON

	opts := isolated(dir)
	opts.Overrides = &Overrides{
		MaxWidth: &width,
		HardTabs: &hardTabs,
		EmitMode: &mode,
		Check:    true,
		Jobs:     3,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.MaxWidth != 60 || cfg.HardTabs || cfg.EmitMode != config.EmitJSON {
		t.Errorf("overrides not applied: width=%d hard_tabs=%v emit=%q", cfg.MaxWidth, cfg.HardTabs, cfg.EmitMode)
	}
	if !cfg.Check || cfg.Jobs != 3 {
		t.Errorf("expected check and jobs from overrides, got check=%v jobs=%d", cfg.Check, cfg.Jobs)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BRACEFMT_MAX_WIDTH", "72")
	t.Setenv("BRACEFMT_HARD_TABS", "true")
	t.Setenv("BRACEFMT_IGNORE", "target/**, gen/*.rs")
	t.Setenv("BRACEFMT_FILE_LINES", "src/lib.rs:3-9,12-12")
	t.Setenv("BRACEFMT_BACKUPS_ENABLED", "true")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.MaxWidth != 72 {
		t.Errorf("expected max_width 72, got %d", cfg.MaxWidth)
	}
	if !cfg.HardTabs {
		t.Error("expected hard_tabs true")
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[1] != "gen/*.rs" {
		t.Errorf("unexpected ignore: %v", cfg.Ignore)
	}
	want := config.FileLines{{File: "src/lib.rs", Start: 3, End: 9}, {Start: 12, End: 12}}
	if len(cfg.FileLines) != len(want) || cfg.FileLines[0] != want[0] || cfg.FileLines[1] != want[1] {
		t.Errorf("expected file_lines %v, got %v", want, cfg.FileLines)
	}
	if !cfg.Backups.Enabled || cfg.Backups.Mode != "sidecar" {
		t.Errorf("expected backups enabled in sidecar mode, got %+v", cfg.Backups)
	}
}

func TestLoadFromEnv_NamesVariableOnError(t *testing.T) {
	t.Setenv("BRACEFMT_TAB_SPACES", "four")

	err := LoadFromEnv(config.NewConfig())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "BRACEFMT_TAB_SPACES") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestEnvVarName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"max_width":       "BRACEFMT_MAX_WIDTH",
		"backups.enabled": "BRACEFMT_BACKUPS_ENABLED",
		"emit_mode":       "BRACEFMT_EMIT_MODE",
	}

	for option, want := range tests {
		if got := EnvVarName(option); got != want {
			t.Errorf("EnvVarName(%q) = %q, want %q", option, got, want)
		}
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ProjectConfigName)

	cfg := config.NewConfig()
	cfg.MaxWidth = 88

	if err := WriteConfig(cfg, path, config.DefaultTemplateHeader(), false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	if err := WriteConfig(cfg, path, "", false); err == nil {
		t.Error("expected error when file exists without force")
	}
	if err := WriteConfig(cfg, path, "", true); err != nil {
		t.Errorf("WriteConfig(force) error = %v", err)
	}

	loaded := config.NewConfig()
	if _, err := loadYAMLFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.MaxWidth != 88 {
		t.Errorf("expected max_width 88 after round trip, got %d", loaded.MaxWidth)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	if result := Validate(cfg); !result.Valid() || result.HasWarnings() {
		t.Errorf("defaults should validate cleanly: %v", result.AllMessages())
	}

	cfg.WrapComments = true
	cfg.CommentWidth = cfg.MaxWidth + 20
	cfg.Ignore = []string{"[unclosed"}
	cfg.FileLines = config.FileLines{{Start: 5, End: 2}}

	result := ValidateWithFile(cfg, "cfg.yml")
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", result.AllMessages())
	}
	if !result.HasWarnings() {
		t.Error("expected comment_width warning")
	}
	for _, e := range result.Errors {
		if !strings.HasPrefix(e.Error(), "cfg.yml: ") {
			t.Errorf("error should carry the file path: %q", e.Error())
		}
	}
}

func TestValidationResult_AllMessages(t *testing.T) {
	t.Parallel()

	result := &ValidationResult{
		Errors:   []ValidationError{{Field: "max_width", Message: "must be positive"}},
		Warnings: []ValidationError{{Field: "comment_width", Message: "exceeds max_width"}},
	}

	got := result.AllMessages()
	want := []string{
		"error: max_width: must be positive",
		"warning: comment_width: exceeds max_width",
	}
	if len(got) != len(want) {
		t.Fatalf("AllMessages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllMessages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

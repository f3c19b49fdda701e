// Package config defines the style and run configuration for bracefmt.
// These types are pure data structures with no dependency on how they are loaded.
package config

// NewlineStyle selects the line terminator written to formatted files.
type NewlineStyle string

const (
	NewlineAuto    NewlineStyle = "auto"    // copy the first line ending of the input
	NewlineNative  NewlineStyle = "native"  // CRLF on Windows, LF elsewhere
	NewlineUnix    NewlineStyle = "unix"    // always LF
	NewlineWindows NewlineStyle = "windows" // always CRLF
)

// IsValid returns true if the newline style is known.
func (n NewlineStyle) IsValid() bool {
	switch n {
	case NewlineAuto, NewlineNative, NewlineUnix, NewlineWindows:
		return true
	default:
		return false
	}
}

// BraceStyle controls where the opening brace of an item body goes.
type BraceStyle string

const (
	BraceAlwaysNextLine BraceStyle = "always_next_line"
	BracePreferSameLine BraceStyle = "prefer_same_line"
	BraceSameLineWhere  BraceStyle = "same_line_where"
)

// IsValid returns true if the brace style is known.
func (b BraceStyle) IsValid() bool {
	switch b {
	case BraceAlwaysNextLine, BracePreferSameLine, BraceSameLineWhere:
		return true
	default:
		return false
	}
}

// ControlBraceStyle controls brace and `else` placement in if chains.
type ControlBraceStyle string

const (
	ControlAlwaysSameLine  ControlBraceStyle = "always_same_line"
	ControlClosingNextLine ControlBraceStyle = "closing_next_line"
	ControlAlwaysNextLine  ControlBraceStyle = "always_next_line"
)

// IsValid returns true if the control brace style is known.
func (c ControlBraceStyle) IsValid() bool {
	switch c {
	case ControlAlwaysSameLine, ControlClosingNextLine, ControlAlwaysNextLine:
		return true
	default:
		return false
	}
}

// EmitMode specifies what is done with formatted output.
type EmitMode string

const (
	EmitFiles         EmitMode = "files"
	EmitStdout        EmitMode = "stdout"
	EmitDiff          EmitMode = "diff"
	EmitCheckstyle    EmitMode = "checkstyle"
	EmitJSON          EmitMode = "json"
	EmitModifiedLines EmitMode = "modified-lines"
	EmitCoverage      EmitMode = "coverage"
)

// IsValid returns true if the emit mode is known.
func (e EmitMode) IsValid() bool {
	switch e {
	case EmitFiles, EmitStdout, EmitDiff, EmitCheckstyle, EmitJSON, EmitModifiedLines, EmitCoverage:
		return true
	default:
		return false
	}
}

// Color controls colored terminal output.
type Color string

const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

// IsValid returns true if the color mode is known.
func (c Color) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Verbosity controls how much the CLI prints.
type Verbosity string

const (
	VerbosityVerbose Verbosity = "verbose"
	VerbosityNormal  Verbosity = "normal"
	VerbosityQuiet   Verbosity = "quiet"
)

// IsValid returns true if the verbosity is known.
func (v Verbosity) IsValid() bool {
	switch v {
	case VerbosityVerbose, VerbosityNormal, VerbosityQuiet:
		return true
	default:
		return false
	}
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "xdg"
}

// Config is the root configuration structure for bracefmt.
type Config struct {
	// MaxWidth is the maximum width of each output line.
	MaxWidth int `mapstructure:"max_width" yaml:"max_width"`

	// HardTabs indents with tabs instead of spaces.
	HardTabs bool `mapstructure:"hard_tabs" yaml:"hard_tabs"`

	// TabSpaces is the number of columns per indent level.
	TabSpaces int `mapstructure:"tab_spaces" yaml:"tab_spaces"`

	// NewlineStyle selects the line terminator of written files.
	NewlineStyle NewlineStyle `mapstructure:"newline_style" yaml:"newline_style"`

	// BraceStyle places the opening brace of fn, mod, impl and trait bodies.
	BraceStyle BraceStyle `mapstructure:"brace_style" yaml:"brace_style"`

	// ControlBraceStyle places braces and `else` in if chains.
	ControlBraceStyle ControlBraceStyle `mapstructure:"control_brace_style" yaml:"control_brace_style"`

	// EmptyItemSingleLine renders empty fn and mod bodies as `{}`.
	EmptyItemSingleLine bool `mapstructure:"empty_item_single_line" yaml:"empty_item_single_line"`

	// TrailingSemicolon adds `;` after a trailing return, break or continue.
	TrailingSemicolon bool `mapstructure:"trailing_semicolon" yaml:"trailing_semicolon"`

	// WrapComments re-wraps line comments longer than CommentWidth.
	WrapComments bool `mapstructure:"wrap_comments" yaml:"wrap_comments"`

	// CommentWidth is the maximum width of a comment line when wrapping.
	CommentWidth int `mapstructure:"comment_width" yaml:"comment_width"`

	// NormalizeComments turns single-line block comments into line comments.
	NormalizeComments bool `mapstructure:"normalize_comments" yaml:"normalize_comments"`

	// ReorderImports sorts groups of consecutive use declarations.
	ReorderImports bool `mapstructure:"reorder_imports" yaml:"reorder_imports"`

	// ReorderModules sorts groups of consecutive `mod name;` declarations.
	ReorderModules bool `mapstructure:"reorder_modules" yaml:"reorder_modules"`

	// BlankLinesUpperBound is the maximum number of blank lines kept between items.
	BlankLinesUpperBound int `mapstructure:"blank_lines_upper_bound" yaml:"blank_lines_upper_bound"`

	// BlankLinesLowerBound is the minimum number of blank lines between items.
	BlankLinesLowerBound int `mapstructure:"blank_lines_lower_bound" yaml:"blank_lines_lower_bound"`

	// FileLines restricts formatting to the given line ranges.
	FileLines FileLines `mapstructure:"file_lines" yaml:"file_lines,omitempty"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// EmitMode selects what happens with formatted output.
	EmitMode EmitMode `mapstructure:"emit_mode" yaml:"emit_mode"`

	// Color controls colored output.
	Color Color `mapstructure:"color" yaml:"color"`

	// Verbosity controls how much is printed.
	Verbosity Verbosity `mapstructure:"verbosity" yaml:"verbosity"`

	// Backups configures backup behavior when writing files.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Check reports files that would change without writing them.
	Check bool `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// Default values for numeric options.
const (
	DefaultMaxWidth     = 100
	DefaultTabSpaces    = 4
	DefaultCommentWidth = 80
)

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		MaxWidth:             DefaultMaxWidth,
		HardTabs:             false,
		TabSpaces:            DefaultTabSpaces,
		NewlineStyle:         NewlineAuto,
		BraceStyle:           BraceSameLineWhere,
		ControlBraceStyle:    ControlAlwaysSameLine,
		EmptyItemSingleLine:  true,
		TrailingSemicolon:    true,
		WrapComments:         false,
		CommentWidth:         DefaultCommentWidth,
		NormalizeComments:    false,
		ReorderImports:       true,
		ReorderModules:       true,
		BlankLinesUpperBound: 1,
		BlankLinesLowerBound: 0,
		EmitMode:             EmitFiles,
		Color:                ColorAuto,
		Verbosity:            VerbosityNormal,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Jobs: 0, // 0 means use GOMAXPROCS
	}
}

package configloader

import "github.com/yaklabco/bracefmt/pkg/config"

// Overrides holds values set by command-line flags. A nil field leaves the
// corresponding option as the config files and environment set it.
type Overrides struct {
	MaxWidth     *int
	TabSpaces    *int
	HardTabs     *bool
	NewlineStyle *config.NewlineStyle
	EmitMode     *config.EmitMode
	Color        *config.Color
	Verbosity    *config.Verbosity
	Backup       *bool

	// FileLines replaces any configured ranges when non-empty.
	FileLines config.FileLines

	Check     bool
	Jobs      int
	NoBackups bool
}

// Apply writes the set overrides into cfg.
func (o *Overrides) Apply(cfg *config.Config) {
	if o == nil || cfg == nil {
		return
	}

	if o.MaxWidth != nil {
		cfg.MaxWidth = *o.MaxWidth
	}
	if o.TabSpaces != nil {
		cfg.TabSpaces = *o.TabSpaces
	}
	if o.HardTabs != nil {
		cfg.HardTabs = *o.HardTabs
	}
	if o.NewlineStyle != nil {
		cfg.NewlineStyle = *o.NewlineStyle
	}
	if o.EmitMode != nil {
		cfg.EmitMode = *o.EmitMode
	}
	if o.Color != nil {
		cfg.Color = *o.Color
	}
	if o.Verbosity != nil {
		cfg.Verbosity = *o.Verbosity
	}
	if o.Backup != nil {
		cfg.Backups.Enabled = *o.Backup
	}
	if len(o.FileLines) > 0 {
		cfg.FileLines = o.FileLines
	}

	cfg.Check = o.Check
	cfg.Jobs = o.Jobs
	cfg.NoBackups = o.NoBackups
}

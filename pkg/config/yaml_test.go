package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracefmt/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Ignore = []string{"target/**"}
		original.FileLines = config.FileLines{{File: "a.rs", Start: 1, End: 3}}
		original.Check = true

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "vendor/**"
		clone.FileLines[0].End = 9
		assert.Equal(t, "target/**", original.Ignore[0])
		assert.Equal(t, 3, original.FileLines[0].End)
	})
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.MaxWidth = 80
	original.HardTabs = true
	original.NewlineStyle = config.NewlineWindows
	original.FileLines = config.FileLines{{File: "src/lib.rs", Start: 4, End: 10}}
	original.Check = true

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_width: 80")
	assert.Contains(t, string(data), "newline_style: windows")
	assert.NotContains(t, string(data), "check")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, 80, parsed.MaxWidth)
	assert.True(t, parsed.HardTabs)
	assert.Equal(t, config.NewlineWindows, parsed.NewlineStyle)
	assert.Equal(t, original.FileLines, parsed.FileLines)
	assert.False(t, parsed.Check, "CLI-only fields are not serialized")
}

func TestConfigToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Regexp(t, `^# header\n\nmax_width: 100\n`, string(data))
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("max_width: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestGenerateTemplateParsesToDefaults(t *testing.T) {
	t.Parallel()

	data := config.GenerateTemplate()

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	defaults := config.NewConfig()
	assert.Equal(t, defaults.MaxWidth, parsed.MaxWidth)
	assert.Equal(t, defaults.TabSpaces, parsed.TabSpaces)
	assert.Equal(t, defaults.NewlineStyle, parsed.NewlineStyle)
	assert.Equal(t, defaults.BraceStyle, parsed.BraceStyle)
	assert.Equal(t, defaults.ControlBraceStyle, parsed.ControlBraceStyle)
	assert.Equal(t, defaults.EmptyItemSingleLine, parsed.EmptyItemSingleLine)
	assert.Equal(t, defaults.ReorderImports, parsed.ReorderImports)
	assert.Equal(t, defaults.BlankLinesUpperBound, parsed.BlankLinesUpperBound)
	assert.Equal(t, defaults.EmitMode, parsed.EmitMode)
	assert.Equal(t, defaults.Backups, parsed.Backups)
	assert.Empty(t, parsed.FileLines)
	assert.Empty(t, parsed.Ignore)
}

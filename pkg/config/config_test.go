package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracefmt/pkg/config"
)

func TestEnumValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.NewlineNative.IsValid())
	assert.False(t, config.NewlineStyle("mac").IsValid())
	assert.True(t, config.BraceAlwaysNextLine.IsValid())
	assert.False(t, config.BraceStyle("k&r").IsValid())
	assert.True(t, config.ControlClosingNextLine.IsValid())
	assert.True(t, config.EmitModifiedLines.IsValid())
	assert.False(t, config.EmitMode("sarif").IsValid())
	assert.True(t, config.ColorNever.IsValid())
	assert.True(t, config.VerbosityQuiet.IsValid())
	assert.False(t, config.Verbosity("loud").IsValid())
}

func TestParseLineRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    config.LineRange
		wantErr bool
	}{
		{name: "file and range", raw: "src/main.rs:3-9", want: config.LineRange{File: "src/main.rs", Start: 3, End: 9}},
		{name: "range only", raw: "2-4", want: config.LineRange{Start: 2, End: 4}},
		{name: "single line", raw: "a.rs:7", want: config.LineRange{File: "a.rs", Start: 7, End: 7}},
		{name: "reversed", raw: "a.rs:9-3", wantErr: true},
		{name: "zero start", raw: "0-3", wantErr: true},
		{name: "garbage", raw: "a.rs:x-y", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseLineRange(testCase.raw)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestFileLines(t *testing.T) {
	t.Parallel()

	var all config.FileLines
	assert.True(t, all.IsAll())
	assert.Nil(t, all.ForFile("a.rs"))
	assert.True(t, all.ForFile("a.rs").Intersects(1, 1))

	restricted := config.FileLines{
		{File: "a.rs", Start: 5, End: 8},
		{Start: 20, End: 20},
	}

	forA := restricted.ForFile("a.rs")
	assert.Len(t, forA, 2)
	assert.True(t, forA.Intersects(1, 5))
	assert.True(t, forA.Intersects(20, 30))
	assert.False(t, forA.Intersects(9, 19))

	forB := restricted.ForFile("b.rs")
	assert.Len(t, forB, 1)
	assert.False(t, forB.Intersects(5, 8))

	none := config.FileLines{{File: "a.rs", Start: 1, End: 2}}.ForFile("b.rs")
	assert.NotNil(t, none)
	assert.False(t, none.Intersects(1, 100))
}

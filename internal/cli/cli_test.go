package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracefmt/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "bracefmt", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"format", "init", "migrate", "config", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if !assert.NoError(t, err, "subcommand %q", name) {
			continue
		}
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestFormatCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	formatCmd, _, err := cmd.Find([]string{"format"})
	require.NoError(t, err)

	expectedFlags := []string{
		"check",
		"emit",
		"backup",
		"no-backups",
		"file-lines",
		"jobs",
		"max-width",
		"tab-spaces",
		"hard-tabs",
		"newline-style",
		"verbose",
		"quiet",
		"stdin-filepath",
	}

	for _, flagName := range expectedFlags {
		assert.NotNil(t, formatCmd.Flags().Lookup(flagName), "expected flag %q on format command", flagName)
	}

	emit := formatCmd.Flags().Lookup("emit")
	assert.Equal(t, "files", emit.DefValue)
	assert.Contains(t, emit.Usage, "modified-lines")
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flagName), "expected global flag %q", flagName)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestDefaultArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		terminal bool
		want     []string
	}{
		{name: "path implies format", args: []string{"src/"}, terminal: true, want: []string{"format", "src/"}},
		{name: "flags imply format", args: []string{"--check"}, terminal: true, want: []string{"format", "--check"}},
		{
			name: "flag with value then path", args: []string{"--emit", "diff", "lib.rs"}, terminal: true,
			want: []string{"format", "--emit", "diff", "lib.rs"},
		},
		{name: "subcommand kept", args: []string{"init", "--force"}, terminal: true, want: []string{"init", "--force"}},
		{
			name: "global flag before subcommand", args: []string{"--config", "x.yml", "config"}, terminal: true,
			want: []string{"--config", "x.yml", "config"},
		},
		{name: "help kept", args: []string{"help"}, terminal: true, want: []string{"help"}},
		{name: "help flag kept", args: []string{"--help"}, terminal: true, want: []string{"--help"}},
		{name: "no args on terminal", args: []string{}, terminal: true, want: []string{}},
		{name: "no args with piped stdin", args: []string{}, terminal: false, want: []string{"format"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := cli.NewRootCommand(testInfo())
			assert.Equal(t, tt.want, cli.DefaultArgs(root, tt.args, tt.terminal))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		want   int
		silent bool
	}{
		{name: "success", err: nil, want: cli.ExitSuccess},
		{name: "needs formatting", err: cli.ErrNeedsFormatting, want: cli.ExitNeedsFormatting, silent: true},
		{name: "files failed", err: cli.ErrFilesFailed, want: cli.ExitFileError, silent: true},
		{
			name: "wrapped failure is shown",
			err:  fmt.Errorf("%w: discover: no such file", cli.ErrFilesFailed),
			want: cli.ExitFileError,
		},
		{name: "usage", err: errors.New("unknown flag: --nope"), want: cli.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
			assert.Equal(t, tt.silent, cli.IsSilent(tt.err))
		})
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "root lists commands",
			args:     []string{"--help", "--color", "never"},
			contains: []string{"Usage:", "Commands:", "format", "migrate", "Flags:", "--config string"},
			excludes: []string{"Emit Modes:"},
		},
		{
			name: "format lists emit modes and config sources",
			args: []string{"format", "--help", "--color", "never"},
			contains: []string{
				"Emit Modes:", "modified-lines", "checkstyle",
				"Configuration:", ".bracefmt.yml", "BRACEFMT_MAX_WIDTH",
				"--max-width int", "(default 100)", "-j, --jobs",
			},
		},
		{
			name:     "init has no format sections",
			args:     []string{"init", "--help", "--color", "never"},
			contains: []string{"Usage:", "--force"},
			excludes: []string{"Emit Modes:"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(testCase.args)

			require.NoError(t, cmd.Execute())

			help := out.String()
			for _, want := range testCase.contains {
				assert.Contains(t, help, want)
			}
			for _, unwanted := range testCase.excludes {
				assert.NotContains(t, help, unwanted)
			}
			assert.NotContains(t, help, "\x1b[", "color must be off with --color never")
		})
	}
}

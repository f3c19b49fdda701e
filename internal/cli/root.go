// Package cli provides the Cobra command structure for bracefmt.
package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bracefmt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root bracefmt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "bracefmt",
		Short: "A fast, comment-preserving Rust source formatter",
		Long: `bracefmt reformats Rust source files: it re-indents blocks, places braces,
normalizes blank lines between items and sorts leading use declarations,
while keeping every comment exactly where it belongs.

Configuration is read from .bracefmt.yml (or an existing rustfmt.toml),
BRACEFMT_* environment variables and command-line flags.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevelOf(logging.FromContext(cmd.Context()), "debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (.yml or rustfmt-style .toml)")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter().ApplyToCommand(rootCmd)

	return rootCmd
}

// builtinCommands are resolved by cobra at execution time and therefore
// not visible to Find beforehand.
//
//nolint:gochecknoglobals // Read-only lookup table.
var builtinCommands = []string{"help", "completion", "__complete", "__completeNoDesc"}

// DefaultArgs makes "format" the implied subcommand. It is inserted when
// the arguments name no subcommand (e.g. "bracefmt src/" or
// "bracefmt --check"), or when there are no arguments and stdin is piped.
func DefaultArgs(root *cobra.Command, args []string, stdinIsTerminal bool) []string {
	if len(args) == 0 {
		if stdinIsTerminal {
			return args
		}
		return []string{"format"}
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return args
		}
		if !strings.HasPrefix(arg, "-") {
			if slices.Contains(builtinCommands, arg) {
				return args
			}
			break
		}
	}

	cmd, _, err := root.Find(args)
	if err == nil && cmd != root {
		return args
	}

	return append([]string{"format"}, args...)
}

// Package main is the entry point for the bracefmt CLI.
package main

import (
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/bracefmt/internal/cli"
	"github.com/yaklabco/bracefmt/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)
	rootCmd.SetArgs(cli.DefaultArgs(rootCmd, os.Args[1:], term.IsTerminal(int(os.Stdin.Fd()))))

	err := rootCmd.Execute()
	if err != nil && !cli.IsSilent(err) {
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}

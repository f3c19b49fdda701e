package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/bracefmt/internal/configloader"
	"github.com/yaklabco/bracefmt/internal/logging"
	"github.com/yaklabco/bracefmt/pkg/config"
	"github.com/yaklabco/bracefmt/pkg/reporter"
	"github.com/yaklabco/bracefmt/pkg/runner"
)

// stdinName is the display name of formatted stdin without --stdin-filepath.
const stdinName = "<stdin>"

type formatFlags struct {
	check         bool
	emit          string
	backup        bool
	noBackups     bool
	fileLines     []string
	jobs          int
	maxWidth      int
	tabSpaces     int
	hardTabs      bool
	newlineStyle  string
	verbose       bool
	quiet         bool
	stdinFilepath string
}

func newFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format Rust source files",
		Long:  formatLongDescription,
		Args:  cobra.ArbitraryArgs,
		Annotations: map[string]string{
			annotationFormatHelp: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
	}

	addFormatFlags(cmd, flags)

	return cmd
}

const formatLongDescription = `Format Rust source files in place.

By default, formats every .rs file under the current directory, skipping
hidden directories, target/ and vendor/. Specify paths to format specific
files or directories. With no paths and piped input, formats stdin and
writes the result to stdout.

Examples:
  bracefmt format                          # Format the current directory
  bracefmt src/                            # "format" is implied for paths
  bracefmt format --check                  # Exit 1 if any file would change
  bracefmt format --emit diff src/lib.rs   # Show changes as a unified diff
  bracefmt format --file-lines src/lib.rs:10-20
  cat main.rs | bracefmt format            # Format stdin`

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	cmd.Flags().BoolVar(&flags.check, "check", false, "report files that need formatting without writing them")
	cmd.Flags().StringVar(&flags.emit, "emit", string(config.EmitFiles),
		"output mode: files, stdout, diff, checkstyle, json, modified-lines, coverage")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "back up each file before rewriting it")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backups even when configured")
	cmd.Flags().StringArrayVar(&flags.fileLines, "file-lines", nil,
		"only format lines in this range, as path:start-end (repeatable)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&flags.maxWidth, "max-width", config.DefaultMaxWidth, "maximum width of each line")
	cmd.Flags().IntVar(&flags.tabSpaces, "tab-spaces", config.DefaultTabSpaces, "number of columns per indent level")
	cmd.Flags().BoolVar(&flags.hardTabs, "hard-tabs", false, "indent with tabs instead of spaces")
	cmd.Flags().StringVar(&flags.newlineStyle, "newline-style", string(config.NewlineAuto),
		"line endings: auto, native, unix, windows")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "print every file and a detailed summary")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print errors only")
	cmd.Flags().StringVar(&flags.stdinFilepath, "stdin-filepath", "",
		"path used for stdin in reports and --file-lines matching")

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.MarkFlagsMutuallyExclusive("backup", "no-backups")
}

// buildOverrides turns explicitly set flags into config overrides.
func buildOverrides(cmd *cobra.Command, flags *formatFlags) (*configloader.Overrides, error) {
	changed := cmd.Flags().Changed
	overrides := &configloader.Overrides{
		Check:     flags.check,
		Jobs:      flags.jobs,
		NoBackups: flags.noBackups,
	}

	if changed("max-width") {
		overrides.MaxWidth = &flags.maxWidth
	}
	if changed("tab-spaces") {
		overrides.TabSpaces = &flags.tabSpaces
	}
	if changed("hard-tabs") {
		overrides.HardTabs = &flags.hardTabs
	}
	if changed("newline-style") {
		style := config.NewlineStyle(flags.newlineStyle)
		overrides.NewlineStyle = &style
	}
	if changed("emit") {
		mode := config.EmitMode(flags.emit)
		overrides.EmitMode = &mode
	}
	if changed("backup") {
		overrides.Backup = &flags.backup
	}
	if changed("color") {
		colorMode, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		color := config.Color(colorMode)
		overrides.Color = &color
	}

	switch {
	case flags.verbose:
		verbosity := config.VerbosityVerbose
		overrides.Verbosity = &verbosity
	case flags.quiet:
		verbosity := config.VerbosityQuiet
		overrides.Verbosity = &verbosity
	}

	for _, raw := range flags.fileLines {
		lineRange, err := config.ParseLineRange(raw)
		if err != nil {
			return nil, fmt.Errorf("--file-lines: %w", err)
		}
		overrides.FileLines = append(overrides.FileLines, lineRange)
	}

	return overrides, nil
}

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	overrides, err := buildOverrides(cmd, flags)
	if err != nil {
		return err
	}

	cfg, workDir, err := loadConfig(ctx, cmd, overrides)
	if err != nil {
		return err
	}

	logger := logging.FromContext(ctx)
	if !cmd.Flags().Changed("debug") {
		logging.SetLevelOf(logger, logging.LevelFor(
			cfg.Verbosity == config.VerbosityVerbose,
			cfg.Verbosity == config.VerbosityQuiet,
		))
	}

	logger.Debug("configuration loaded",
		logging.FieldEmitMode, cfg.EmitMode,
		logging.FieldCheck, cfg.Check,
		logging.FieldJobs, cfg.Jobs,
	)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
		Logger:       logger,
	}

	mode := cfg.EmitMode

	var result *runner.Result
	if useStdin(cmd, args) {
		if mode == config.EmitFiles {
			mode = config.EmitStdout
			if cfg.Check {
				mode = config.EmitDiff
			}
		}
		result, err = formatStdin(ctx, cmd.InOrStdin(), flags.stdinFilepath, runOpts)
	} else {
		result, err = runner.Run(ctx, runOpts)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesFailed, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Mode:        mode,
		Color:       string(cfg.Color),
		Check:       cfg.Check,
		ShowSummary: cfg.Verbosity != config.VerbosityQuiet,
		Verbose:     cfg.Verbosity == config.VerbosityVerbose,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("%w: report results: %w", ErrFilesFailed, err)
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDuration, result.Stats.Duration,
	)

	switch {
	case result.HasErrors():
		return ErrFilesFailed
	case cfg.Check && result.HasChanges():
		return ErrNeedsFormatting
	default:
		return nil
	}
}

// loadConfig resolves the layered configuration for the current directory
// and logs any loader warnings.
func loadConfig(
	ctx context.Context, cmd *cobra.Command, overrides *configloader.Overrides,
) (*config.Config, string, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Overrides:    overrides,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	logger := logging.FromContext(ctx)
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	return loadResult.Config, workDir, nil
}

// useStdin reports whether input comes from stdin: either "-" is the only
// path, or no paths are given and stdin is not a terminal.
func useStdin(cmd *cobra.Command, args []string) bool {
	if len(args) == 1 && args[0] == "-" {
		return true
	}
	if len(args) > 0 {
		return false
	}
	return !isTerminal(cmd.InOrStdin())
}

// isTerminal reports whether r is an interactive terminal. Readers that are
// not files, such as buffers in tests, never are.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func formatStdin(ctx context.Context, in io.Reader, name string, opts runner.Options) (*runner.Result, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	if name == "" {
		name = stdinName
	}

	ctx = logging.WithFields(ctx, logging.FieldPath, name)
	opts.Logger = logging.FromContext(ctx)

	return runner.RunContent(ctx, name, content, opts)
}

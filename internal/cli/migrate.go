package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bracefmt/internal/configloader"
	"github.com/yaklabco/bracefmt/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [rustfmt.toml]",
		Short: "Convert a rustfmt configuration to bracefmt format",
		Long: `Convert an existing rustfmt.toml or .rustfmt.toml to .bracefmt.yml.

Keys are normalized to snake_case and older option names are mapped to their
current equivalents. Options bracefmt does not support are reported and left
out. If no input file is given, the current directory is searched.

Examples:
  bracefmt migrate                       Auto-detect and convert rustfmt.toml
  bracefmt migrate config/rustfmt.toml   Convert a specific file
  bracefmt migrate --output config.yml   Write to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "Output file path")

	return cmd
}

func runMigrate(flags *migrateFlags) error {
	logger := logging.NewInteractive()

	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindRustfmtConfig(cwd)
		if inputPath == "" {
			return errors.New("no rustfmt.toml or .rustfmt.toml found in current directory")
		}

		logger.Info("found rustfmt config", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	result, err := configloader.ConvertRustfmtConfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	header := configloader.GenerateMigrationHeader(inputPath)
	if err := configloader.WriteConfig(result.Config, absOutput, header, flags.force); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("migration complete", logging.FieldPath, inputPath, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	logger.Info("you can now delete the old rustfmt configuration file")

	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/bracefmt/internal/configloader"
	"github.com/yaklabco/bracefmt/internal/ui/pretty"
	"github.com/yaklabco/bracefmt/pkg/config"
)

// defaultTableWidth is used for option tables when the terminal width is unknown.
const defaultTableWidth = 120

type configFlags struct {
	current bool
	env     bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration options",
		Long: `List every configuration option with its default value, the value in
effect for the current directory, and a description.

With --current, print the effective configuration for the current directory
as YAML, after merging config files, environment variables and defaults.

Examples:
  bracefmt config              List all options
  bracefmt config --current    Show the effective configuration
  bracefmt config --env        List the BRACEFMT_* environment variables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.current, "current", false, "print the effective merged configuration as YAML")
	cmd.Flags().BoolVar(&flags.env, "env", false, "list environment variables instead of option names")
	cmd.MarkFlagsMutuallyExclusive("current", "env")

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()

	if flags.current {
		cfg, _, err := loadConfig(ctx, cmd, nil)
		if err != nil {
			return err
		}

		content, err := cfg.ToYAML()
		if err != nil {
			return fmt.Errorf("serialize configuration: %w", err)
		}

		_, err = out.Write(content)
		return err
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	table := pretty.NewTableFormatter(styles, terminalWidth(out))

	if flags.env {
		_, err = fmt.Fprint(out, table.FormatOptionsTable(configloader.ListEnvVars(), nil))
		return err
	}

	cfg, _, err := loadConfig(ctx, cmd, nil)
	if err != nil {
		return err
	}

	values, err := currentValues(cfg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, table.FormatOptionsTable(config.Options(), values))
	return err
}

// currentValues flattens cfg into option name to display value, with nested
// options named "parent.child".
func currentValues(cfg *config.Config) (map[string]string, error) {
	content, err := cfg.ToYAML()
	if err != nil {
		return nil, fmt.Errorf("serialize configuration: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	values := make(map[string]string)
	flattenValues(values, "", doc)

	return values, nil
}

func flattenValues(values map[string]string, prefix string, doc map[string]any) {
	for key, value := range doc {
		name := prefix + key

		switch v := value.(type) {
		case map[string]any:
			flattenValues(values, name+".", v)
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, displayItem(item))
			}
			values[name] = "[" + strings.Join(items, ", ") + "]"
		case nil:
			values[name] = "[]"
		default:
			values[name] = fmt.Sprint(v)
		}
	}
}

// displayItem renders a list element; file_lines entries become path:start-end.
func displayItem(item any) string {
	m, ok := item.(map[string]any)
	if !ok {
		return fmt.Sprint(item)
	}

	if _, hasStart := m["start"]; hasStart {
		prefix := ""
		if file, ok := m["file"].(string); ok && file != "" {
			prefix = file + ":"
		}
		return fmt.Sprintf("%s%v-%v", prefix, m["start"], m["end"])
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(parts, " ")
}

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTableWidth
}

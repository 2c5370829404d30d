package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/pkg/config"
	"github.com/ccollicutt/logsift/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a logsift configuration file without running analysis.

Checks:
  - YAML syntax
  - Required fields
  - Webhook URLs and triggers
  - Base directory existence and matching files (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Base directory: %s\n", cfg.BaseDirectory)
	fmt.Fprintf(out, "  Extensions:     %s\n", strings.Join(cfg.Extensions, ", "))
	fmt.Fprintf(out, "  Recency window: %s\n", cfg.RecencyWindow)
	fmt.Fprintf(out, "  Strict:         %t\n", cfg.StrictTimestamps)
	fmt.Fprintf(out, "  Webhooks:       %d\n", len(cfg.Webhooks))

	files, err := parser.LocateFiles(parser.OSFileSystem{}, cfg.BaseDirectory, cfg.Extensions)
	if err != nil {
		fmt.Fprintf(out, "\nWarning: %v\n", err)
	} else if len(files) == 0 {
		fmt.Fprintf(out, "\nWarning: No files match the configured extensions\n")
	} else {
		fmt.Fprintf(out, "\nLog files matched: %d\n", len(files))
		for _, f := range files {
			fmt.Fprintf(out, "  - %s\n", f)
		}
	}

	return nil
}

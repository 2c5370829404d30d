package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewFilesCommand creates the files command.
func NewFilesCommand() *cobra.Command {
	opts := &ScanOptions{}

	cmd := &cobra.Command{
		Use:   "files [directory]",
		Short: "List the log files that would be analyzed",
		Long: `List every file under the directory whose name ends with one of the
configured extensions. The recency window is not applied here.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd, args, opts)
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runFiles(cmd *cobra.Command, args []string, opts *ScanOptions) error {
	ctx := commandContext(cmd)

	cfg, err := resolveConfig(ctx, cmd, args, opts)
	if err != nil {
		return err
	}

	a, err := newAnalyzer(cfg, commandLogger(cmd, cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("creating analyzer: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, f := range a.RawFiles() {
		fmt.Fprintln(out, f)
	}

	return nil
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/internal/observability"
	"github.com/ccollicutt/logsift/pkg/analyzer"
	"github.com/ccollicutt/logsift/pkg/config"
	"github.com/ccollicutt/logsift/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ScanOptions holds the flags shared by commands that locate log files.
type ScanOptions struct {
	ConfigPath string
	Extensions []string
	Window     time.Duration
	Strict     bool
	LogLevel   string
}

func (o *ScanOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.ConfigPath, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringSliceVarP(&o.Extensions, "ext", "e", nil, "File extension to match (can be repeated, default .log)")
	cmd.Flags().DurationVar(&o.Window, "window", 0, "Only scan files modified within this duration (default 168h)")
	cmd.Flags().BoolVar(&o.Strict, "strict", false, "Abort on the first unparsable timestamp instead of skipping the line")
	cmd.Flags().StringVar(&o.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
}

// resolveConfig layers an optional config file, then the environment, then
// command-line flags over the defaults and validates the result.
func resolveConfig(ctx context.Context, cmd *cobra.Command, args []string, o *ScanOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.Read(ctx, o.ConfigPath)
	} else {
		cfg, err = config.LoadDefault(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if len(args) > 0 {
		cfg.BaseDirectory = args[0]
	}
	if cmd.Flags().Changed("ext") {
		cfg.Extensions = o.Extensions
	}
	if cmd.Flags().Changed("window") {
		cfg.RecencyWindow = o.Window
	}
	if cmd.Flags().Changed("strict") {
		cfg.StrictTimestamps = o.Strict
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newAnalyzer builds an analyzer from a validated configuration.
func newAnalyzer(cfg *config.Config, logger zerolog.Logger, extra ...analyzer.Option) (*analyzer.Analyzer, error) {
	timestamps := parser.NewTimestampParser(cfg.TimestampLayouts, nil)

	opts := []analyzer.Option{
		analyzer.WithRecencyWindow(cfg.RecencyWindow),
		analyzer.WithStrictTimestamps(cfg.StrictTimestamps),
		analyzer.WithLineParser(parser.NewPositionalParser(timestamps)),
		analyzer.WithLogger(logger),
	}
	opts = append(opts, extra...)

	return analyzer.NewWithExtensions(cfg.BaseDirectory, cfg.Extensions, opts...)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func commandLogger(cmd *cobra.Command, level string) zerolog.Logger {
	return observability.NewLogger(cmd.ErrOrStderr(), level)
}

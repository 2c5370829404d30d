package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/logsift/pkg/config"
	"github.com/ccollicutt/logsift/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Suggest a timestamp layout for a log file",
		Long: `Sample the error lines of a log file and rank the built-in timestamp
layouts by how many of their timestamp prefixes each one parses.

Prints a timestamp_layouts snippet for the best layout. With --write-config
a starter configuration is written for the file's directory and extension.

Example:
  logsift detect /var/log/openiz/app.log
  logsift detect --sample 500 --all /var/log/openiz/app.log
  logsift detect -w logsift.yaml /var/log/openiz/app.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of error lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show every matching layout, not just the best")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(result, logFile, opts.WriteConfig); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote starter config to: %s\n\n", opts.WriteConfig)
	}

	if opts.Output == "json" {
		return outputDetectJSON(out, result, logFile, opts)
	}
	return outputDetectText(out, result, logFile, opts)
}

func outputDetectText(w io.Writer, result *detector.Result, logFile string, opts *DetectOptions) error {
	var b strings.Builder

	b.WriteString("=== Timestamp Layout Detection ===\n\n")
	fmt.Fprintf(&b, "File: %s\n", logFile)
	fmt.Fprintf(&b, "Error lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(&b, "Error lines parsed: %d\n\n", result.ParsedLines)

	best := result.BestMatch()
	if best == nil {
		if result.SampledLines == 0 {
			b.WriteString("No error lines found to sample.\n")
		} else {
			b.WriteString("No timestamp layout matched.\n")
			b.WriteString("Add the layout to timestamp_layouts in your config file.\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Detected layout: %s\n", best.Layout)
	fmt.Fprintf(&b, "Confidence: %.1f%% (%d/%d lines parsed)\n\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Fprintf(&b, "Sample match:\n  %s\n", best.SampleLine)
	fmt.Fprintf(&b, "Parsed as: %s\n\n", best.ParsedTime.Format("2006-01-02 15:04:05 MST"))

	if result.AmbiguityNote != "" {
		fmt.Fprintf(&b, "Note: %s\n\n", result.AmbiguityNote)
	}

	b.WriteString("--- Configuration snippet ---\n\n")
	b.WriteString("timestamp_layouts:\n")
	fmt.Fprintf(&b, "  - %q\n\n", best.Layout)

	if opts.ShowAll && len(result.Matches) > 1 {
		b.WriteString("--- Alternative layouts ---\n")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(&b, "%d. %s (%.1f%% confidence)\n", i+2, m.Layout, m.Confidence*100)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// JSONMatch represents a layout match in JSON output.
type JSONMatch struct {
	Layout     string  `json:"layout"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line"`
	Ambiguous  bool    `json:"ambiguous,omitempty"`
}

// JSONOutput represents the full JSON output of detect.
type JSONOutput struct {
	File          string      `json:"file"`
	Matches       []JSONMatch `json:"matches"`
	SampledLines  int         `json:"sampled_lines"`
	ParsedLines   int         `json:"parsed_lines"`
	AmbiguityNote string      `json:"ambiguity_note,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.Result, logFile string, opts *DetectOptions) error {
	doc := JSONOutput{
		File:          logFile,
		SampledLines:  result.SampledLines,
		ParsedLines:   result.ParsedLines,
		AmbiguityNote: result.AmbiguityNote,
		Matches:       make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1]
	}

	for _, m := range matches {
		doc.Matches = append(doc.Matches, JSONMatch{
			Layout:     m.Layout,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
			Ambiguous:  m.Ambiguous(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// writeStarterConfig writes a config scanning the log file's directory for
// its extension with the detected layout. Existing files are left alone.
func writeStarterConfig(result *detector.Result, logFile, configPath string) error {
	best := result.BestMatch()
	if best == nil {
		return errors.New("cannot generate config: no timestamp layout detected")
	}

	dir := filepath.Dir(logFile)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	ext := strings.ToLower(filepath.Ext(logFile))
	if ext == "" {
		ext = config.DefaultExtension
	}

	starter := config.Config{
		BaseDirectory:    dir,
		Extensions:       []string{ext},
		RecencyWindow:    config.DefaultRecencyWindow,
		TimestampLayouts: []string{best.Layout},
	}

	data, err := yaml.Marshal(&starter)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	header := fmt.Sprintf("# logsift configuration\n# Generated by: logsift detect\n# Detected layout: %s (%.0f%% confidence)\n\n",
		best.Layout, best.Confidence*100)

	// #nosec G304 G302 -- user-chosen output path, config is not secret
	f, err := os.OpenFile(configPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
		}
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, header+string(data)); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

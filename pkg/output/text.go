package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ccollicutt/logsift/pkg/parser"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "logsift: %d files scanned, %d errors found\n",
		report.Summary.FilesScanned,
		report.Summary.ErrorsFound)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	var b strings.Builder

	b.WriteString("=== logsift Error Report ===\n")
	fmt.Fprintf(&b, "Directory: %s (%s)\n", report.Metadata.BaseDirectory,
		strings.Join(report.Metadata.Extensions, ", "))
	b.WriteString("\n")

	if len(report.Entries) == 0 {
		b.WriteString("No errors detected\n\n")
	}

	for _, entry := range report.Entries {
		f.formatEntry(entry, &b)
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "Summary: %d files located, %d scanned, %d stale, %d errors found\n",
		report.Summary.FilesLocated,
		report.Summary.FilesScanned,
		report.Summary.FilesStale,
		report.Summary.ErrorsFound)

	if report.Summary.LinesSkipped > 0 {
		fmt.Fprintf(&b, "Skipped: %d error line(s) with unparsable timestamps\n", report.Summary.LinesSkipped)
	}

	if f.opts.Verbose {
		fmt.Fprintf(&b, "Lines read: %d\n", report.Summary.LinesRead)
		fmt.Fprintf(&b, "Cutoff: %s\n", report.Metadata.Cutoff.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
		fmt.Fprintf(&b, "Run: %s\n", report.Metadata.RunID)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TextFormatter) formatEntry(entry *parser.LogFileEntry, b *strings.Builder) {
	thread := "-"
	if entry.ThreadID != nil {
		thread = fmt.Sprintf("%d", *entry.ThreadID)
	}

	fmt.Fprintf(b, "[%s] %s thread=%s: %s\n",
		entry.Category,
		entry.Timestamp.Format("2006-01-02 15:04:05"),
		thread,
		entry.Content)

	if f.opts.Verbose {
		fmt.Fprintf(b, "  Source: %s:%d\n", entry.Source, entry.LineNum)
	}
}

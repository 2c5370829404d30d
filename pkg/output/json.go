package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// quietJSON is the document written in quiet mode.
type quietJSON struct {
	RunID         string  `json:"run_id"`
	BaseDirectory string  `json:"base_directory"`
	Summary       Summary `json:"summary"`
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as indented JSON. Quiet mode drops the entries.
func (f *JSONFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if !f.opts.Quiet {
		return enc.Encode(report)
	}

	return enc.Encode(quietJSON{
		RunID:         report.Metadata.RunID,
		BaseDirectory: report.Metadata.BaseDirectory,
		Summary:       report.Summary,
	})
}

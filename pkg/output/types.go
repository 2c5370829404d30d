// Package output provides formatting and output generation for analysis results.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/logsift/pkg/analyzer"
	"github.com/ccollicutt/logsift/pkg/parser"
)

// Report is the complete analysis output.
type Report struct {
	Summary Summary `json:"summary"`

	// Entries are the error entries in discovery order.
	Entries []*parser.LogFileEntry `json:"entries"`

	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	FilesLocated int `json:"files_located"`
	FilesScanned int `json:"files_scanned"`
	FilesStale   int `json:"files_stale"`
	LinesRead    int `json:"lines_read"`
	LinesSkipped int `json:"lines_skipped"`
	ErrorsFound  int `json:"errors_found"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// RunID uniquely identifies this analysis run.
	RunID string `json:"run_id"`

	BaseDirectory string   `json:"base_directory"`
	Extensions    []string `json:"extensions"`

	// Cutoff is the oldest modification time a scanned file could have.
	Cutoff time.Time `json:"cutoff"`

	// AnalyzedAt is when the analysis completed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from an analysis pass.
func NewReport(result *analyzer.Result, baseDir string, extensions []string) *Report {
	return &Report{
		Entries: result.Entries,
		Summary: Summary{
			FilesLocated: result.Stats.FilesLocated,
			FilesScanned: result.Stats.FilesScanned,
			FilesStale:   result.Stats.FilesStale,
			LinesRead:    result.Stats.LinesRead,
			LinesSkipped: result.Stats.LinesSkipped,
			ErrorsFound:  result.Stats.ErrorsFound,
		},
		Metadata: Metadata{
			RunID:         uuid.NewString(),
			BaseDirectory: baseDir,
			Extensions:    extensions,
			Cutoff:        result.Cutoff,
			AnalyzedAt:    result.EndTime,
			Duration:      result.EndTime.Sub(result.StartTime),
		},
	}
}

// HasErrors returns true if any error entries were found.
func (r *Report) HasErrors() bool {
	return r.Summary.ErrorsFound > 0
}

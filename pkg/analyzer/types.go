// Package analyzer scans located log files for error lines and reports them.
package analyzer

import (
	"errors"
	"fmt"
	"time"

	"github.com/ccollicutt/logsift/pkg/parser"
)

// DefaultRecencyWindow is how far back a file's modification time may be
// for the file to be scanned.
const DefaultRecencyWindow = 7 * 24 * time.Hour

// DefaultExtensions is the extension set used by New.
var DefaultExtensions = []string{".log"}

// ErrInvalidArgument is wrapped by every construction error.
var ErrInvalidArgument = errors.New("invalid argument")

// Construction errors, checked in this order before any file is enumerated.
var (
	ErrMissingBaseDirectory = fmt.Errorf("%w: missing base directory", ErrInvalidArgument)
	ErrDirectoryNotFound    = fmt.Errorf("%w: directory not found", ErrInvalidArgument)
	ErrNoExtensions         = fmt.Errorf("%w: no extensions provided", ErrInvalidArgument)
)

// ErrorHandler is called synchronously for every error entry as it is found.
type ErrorHandler func(entry *parser.LogFileEntry)

// Clock supplies the current time for the recency filter.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// Stats counts what happened during one analysis pass.
type Stats struct {
	// FilesLocated is the number of files found at construction.
	FilesLocated int `json:"files_located"`

	// FilesScanned is the number of files inside the recency window.
	FilesScanned int `json:"files_scanned"`

	// FilesStale is the number of files skipped for being too old.
	FilesStale int `json:"files_stale"`

	// LinesRead is the total number of lines read from scanned files.
	LinesRead int `json:"lines_read"`

	// LinesSkipped is the number of error lines dropped for an unparsable timestamp.
	LinesSkipped int `json:"lines_skipped"`

	// ErrorsFound is the number of entries produced.
	ErrorsFound int `json:"errors_found"`
}

// Result is the output of a single analysis pass.
type Result struct {
	// Entries holds the parsed error entries in discovery order.
	Entries []*parser.LogFileEntry

	// Stats describes the pass.
	Stats Stats

	// Cutoff is the oldest modification time a file could have and still be scanned.
	Cutoff time.Time

	// StartTime is when the pass began.
	StartTime time.Time

	// EndTime is when the pass completed.
	EndTime time.Time
}

// HasErrors returns true if the pass produced at least one entry.
func (r *Result) HasErrors() bool {
	return len(r.Entries) > 0
}

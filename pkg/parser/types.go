// Package parser provides log file discovery and error line parsing.
package parser

import (
	"fmt"
	"time"
)

// LevelError is the level recorded on every entry produced by the analyzer.
const LevelError = "error"

// LogFileEntry is a single error occurrence parsed from a log line.
type LogFileEntry struct {
	// Timestamp is parsed from the line prefix (everything before the first '[').
	Timestamp time.Time `json:"timestamp"`

	// ThreadID is nil when the bracketed thread token is not numeric.
	ThreadID *int `json:"thread_id,omitempty"`

	// Category is the token following the level token.
	Category string `json:"category"`

	// Content is the remaining free-text message.
	Content string `json:"content"`

	// Level is always LevelError.
	Level string `json:"level"`

	// Source is the file path this entry came from.
	Source string `json:"source,omitempty"`

	// LineNum is the 1-based line number in the source file.
	LineNum int `json:"line,omitempty"`
}

// NewLogFileEntry creates an error entry with the given timestamp.
func NewLogFileEntry(ts time.Time) *LogFileEntry {
	return &LogFileEntry{
		Timestamp: ts,
		Level:     LevelError,
	}
}

// HasThreadID reports whether a numeric thread id was parsed.
func (e *LogFileEntry) HasThreadID() bool {
	return e.ThreadID != nil
}

// String renders the entry in the same shape as the lines it is parsed from.
func (e *LogFileEntry) String() string {
	thread := ""
	if e.ThreadID != nil {
		thread = fmt.Sprintf("%d", *e.ThreadID)
	}
	return fmt.Sprintf("%s [@%s] : %s %s %s",
		e.Timestamp.Format("2006-01-02 03:04:05 PM"),
		thread,
		e.Level,
		e.Category,
		e.Content)
}

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/logsift/pkg/parser"
)

// Analyzer locates log files under a base directory once, then scans them for
// error lines on every call to Analyze.
// It is not safe for concurrent use.
type Analyzer struct {
	baseDir    string
	extensions []string
	files      []string

	fs         parser.FileSystem
	clock      Clock
	lineParser parser.LineParser
	window     time.Duration
	strict     bool
	logger     zerolog.Logger

	handlers []subscription
	nextID   int

	entries []*parser.LogFileEntry
	stats   Stats
}

type subscription struct {
	id int
	fn ErrorHandler
}

// Option configures analyzer behavior.
type Option func(*Analyzer)

// WithFileSystem replaces the operating system filesystem.
func WithFileSystem(fsys parser.FileSystem) Option {
	return func(a *Analyzer) {
		if fsys != nil {
			a.fs = fsys
		}
	}
}

// WithClock replaces the wall clock used by the recency filter.
func WithClock(c Clock) Option {
	return func(a *Analyzer) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithLineParser replaces the positional line grammar.
func WithLineParser(p parser.LineParser) Option {
	return func(a *Analyzer) {
		if p != nil {
			a.lineParser = p
		}
	}
}

// WithRecencyWindow sets how old a file may be and still be scanned.
// Non-positive values keep DefaultRecencyWindow.
func WithRecencyWindow(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.window = d
		}
	}
}

// WithStrictTimestamps makes an unparsable timestamp abort the whole pass
// instead of skipping the line.
func WithStrictTimestamps(strict bool) Option {
	return func(a *Analyzer) {
		a.strict = strict
	}
}

// WithLogger sets the logger used for progress and skipped lines.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithErrorHandler subscribes h at construction.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *Analyzer) {
		a.Subscribe(h)
	}
}

// New creates an analyzer for baseDir matching DefaultExtensions.
func New(baseDir string, opts ...Option) (*Analyzer, error) {
	return NewWithExtensions(baseDir, DefaultExtensions, opts...)
}

// NewWithExtensions creates an analyzer for baseDir matching the given extensions.
// The directory is validated and the matching files are located immediately.
func NewWithExtensions(baseDir string, extensions []string, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		fs:     parser.OSFileSystem{},
		clock:  ClockFunc(time.Now),
		window: DefaultRecencyWindow,
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if baseDir == "" {
		return nil, ErrMissingBaseDirectory
	}

	info, err := a.fs.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, baseDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, baseDir)
	}

	exts := parser.NormalizeExtensions(extensions)
	if len(exts) == 0 {
		return nil, ErrNoExtensions
	}

	if a.lineParser == nil {
		a.lineParser = parser.NewPositionalParser(nil)
	}

	a.baseDir = baseDir
	a.extensions = exts

	files, err := parser.LocateFiles(a.fs, baseDir, exts)
	if err != nil {
		return nil, fmt.Errorf("locating log files: %w", err)
	}
	a.files = files

	a.logger.Info().
		Str("base_dir", baseDir).
		Strs("extensions", exts).
		Int("files", len(files)).
		Msg("Located log files")

	return a, nil
}

// BaseDirectory returns the configured root directory.
func (a *Analyzer) BaseDirectory() string {
	return a.baseDir
}

// Extensions returns the normalized extension set.
func (a *Analyzer) Extensions() []string {
	return slices.Clone(a.extensions)
}

// RawFiles returns the files located at construction.
func (a *Analyzer) RawFiles() []string {
	return slices.Clone(a.files)
}

// Entries returns the entries from the most recent pass, or nil before the first one.
func (a *Analyzer) Entries() []*parser.LogFileEntry {
	return slices.Clone(a.entries)
}

// Stats returns the counters from the most recent pass.
func (a *Analyzer) Stats() Stats {
	return a.stats
}

// Subscribe registers h to be called for each entry during Analyze, after any
// previously registered handlers. The returned function removes it.
func (a *Analyzer) Subscribe(h ErrorHandler) (unsubscribe func()) {
	if h == nil {
		return func() {}
	}

	a.nextID++
	id := a.nextID
	a.handlers = append(a.handlers, subscription{id: id, fn: h})

	return func() {
		a.handlers = slices.DeleteFunc(a.handlers, func(s subscription) bool {
			return s.id == id
		})
	}
}

// Analyze scans every located file modified within the recency window and
// replaces the stored entries with the error entries found.
// On failure the previously stored entries are kept.
func (a *Analyzer) Analyze(ctx context.Context) (*Result, error) {
	start := a.clock.Now()
	result := &Result{
		Entries:   make([]*parser.LogFileEntry, 0),
		Cutoff:    start.Add(-a.window),
		StartTime: start,
		Stats: Stats{
			FilesLocated: len(a.files),
		},
	}

	for _, path := range a.files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := a.fs.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !result.Cutoff.Before(info.ModTime()) {
			result.Stats.FilesStale++
			a.logger.Debug().
				Str("file", path).
				Time("mod_time", info.ModTime()).
				Msg("Skipping file outside recency window")
			continue
		}

		result.Stats.FilesScanned++
		if err := a.scanFile(path, result); err != nil {
			return nil, err
		}
	}

	result.Stats.ErrorsFound = len(result.Entries)
	result.EndTime = a.clock.Now()

	a.entries = result.Entries
	a.stats = result.Stats

	a.logger.Info().
		Int("files_scanned", result.Stats.FilesScanned).
		Int("files_stale", result.Stats.FilesStale).
		Int("lines_read", result.Stats.LinesRead).
		Int("errors_found", result.Stats.ErrorsFound).
		Msg("Analysis complete")

	return result, nil
}

// scanFile reads path to the end, appending and announcing each error entry.
func (a *Analyzer) scanFile(path string, result *Result) error {
	f, err := a.fs.Open(path)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}
	defer f.Close()

	var parseErr error
	lineNum := 0

	err = parser.ForEachLine(f, func(line string) error {
		lineNum++
		result.Stats.LinesRead++

		entry, err := a.lineParser.Parse(line)
		if err != nil {
			var tsErr *parser.TimestampError
			if !a.strict && errors.As(err, &tsErr) {
				result.Stats.LinesSkipped++
				a.logger.Warn().
					Err(err).
					Str("file", path).
					Int("line", lineNum).
					Msg("Skipping error line with unparsable timestamp")
				return nil
			}
			parseErr = fmt.Errorf("parsing %s:%d: %w", path, lineNum, err)
			return parseErr
		}
		if entry == nil {
			return nil
		}

		entry.Source = path
		entry.LineNum = lineNum
		result.Entries = append(result.Entries, entry)

		a.notify(entry)
		return nil
	})
	if parseErr != nil {
		return parseErr
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return nil
}

func (a *Analyzer) notify(entry *parser.LogFileEntry) {
	for _, s := range slices.Clone(a.handlers) {
		s.fn(entry)
	}
}

// Package detector suggests timestamp layouts for a log file by sampling the
// timestamp prefix of its error lines.
package detector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ccollicutt/logsift/pkg/parser"
)

// DefaultSampleSize is the number of error lines sampled per file.
const DefaultSampleSize = 100

// errSampleFull stops reading once the sample is complete.
var errSampleFull = errors.New("sample full")

// Result holds the outcome of sampling a log file.
type Result struct {
	Matches       []Match // Layouts that parsed at least one line, best first
	SampledLines  int     // Number of error lines sampled
	ParsedLines   int     // Number of sampled lines parsed by the best layout
	AmbiguityNote string  // Warning about date ordering if applicable
}

// Match is a layout together with how well it fit the sample.
type Match struct {
	Layout     string
	Confidence float64   // 0.0 to 1.0 (share of sampled lines parsed)
	MatchCount int       // Number of lines parsed
	SampleLine string    // First line the layout parsed
	ParsedTime time.Time // Timestamp parsed from SampleLine
}

// Ambiguous reports whether the layout cannot tell MM/DD from DD/MM.
func (m Match) Ambiguous() bool {
	return strings.HasPrefix(m.Layout, "01/02") || strings.HasPrefix(m.Layout, "1/2/")
}

// Detector ranks candidate timestamp layouts against sampled error lines.
type Detector struct {
	layouts    []string
	sampleSize int
	fs         parser.FileSystem
	location   *time.Location
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of error lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithLayouts replaces the candidate layouts.
func WithLayouts(layouts []string) Option {
	return func(d *Detector) {
		if len(layouts) > 0 {
			d.layouts = append([]string(nil), layouts...)
		}
	}
}

// WithFileSystem replaces the operating system filesystem.
func WithFileSystem(fsys parser.FileSystem) Option {
	return func(d *Detector) {
		if fsys != nil {
			d.fs = fsys
		}
	}
}

// WithLocation sets the zone used for layouts without an offset.
func WithLocation(loc *time.Location) Option {
	return func(d *Detector) {
		if loc != nil {
			d.location = loc
		}
	}
}

// New creates a Detector trying parser.DefaultTimestampLayouts.
func New(opts ...Option) *Detector {
	d := &Detector{
		layouts:    append([]string(nil), parser.DefaultTimestampLayouts...),
		sampleSize: DefaultSampleSize,
		fs:         parser.OSFileSystem{},
		location:   time.Local,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples the error lines of path and ranks the layouts.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*Result, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines ranks the layouts against lines. Lines that are not error
// lines are ignored.
func (d *Detector) DetectFromLines(lines []string) *Result {
	result := &Result{}

	type candidate struct {
		parser *parser.TimestampParser
		match  Match
	}
	candidates := make([]candidate, len(d.layouts))
	for i, layout := range d.layouts {
		candidates[i] = candidate{
			parser: parser.NewTimestampParser([]string{layout}, d.location),
			match:  Match{Layout: layout},
		}
	}

	for _, line := range lines {
		if !parser.IsErrorLine(line) {
			continue
		}
		result.SampledLines++

		prefix, ok := parser.TimestampPrefix(line)
		if !ok {
			continue
		}

		for i := range candidates {
			c := &candidates[i]
			ts, err := c.parser.Parse(prefix)
			if err != nil {
				continue
			}
			if c.match.MatchCount == 0 {
				c.match.SampleLine = line
				c.match.ParsedTime = ts
			}
			c.match.MatchCount++
		}
	}

	for _, c := range candidates {
		if c.match.MatchCount == 0 {
			continue
		}
		c.match.Confidence = float64(c.match.MatchCount) / float64(result.SampledLines)
		result.Matches = append(result.Matches, c.match)
	}

	// Equal counts keep the configured layout order.
	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].MatchCount > result.Matches[j].MatchCount
	})

	if best := result.BestMatch(); best != nil {
		result.ParsedLines = best.MatchCount
		if best.Ambiguous() {
			result.AmbiguityNote = "This layout has date ordering ambiguity (MM/DD vs DD/MM). " +
				"For day-first dates use a layout such as \"02/01/2006 15:04:05\""
		}
	}

	return result
}

// sampleFile reads error lines from the head of path until sampleSize are found.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	f, err := d.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	err = parser.ForEachLine(f, func(line string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !parser.IsErrorLine(line) {
			return nil
		}
		lines = append(lines, line)
		if len(lines) >= d.sampleSize {
			return errSampleFull
		}
		return nil
	})
	switch {
	case errors.Is(err, errSampleFull):
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return lines, nil
}

// BestMatch returns the highest ranked match, or nil if none found.
func (r *Result) BestMatch() *Match {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one layout parsed a sampled line.
func (r *Result) HasMatch() bool {
	return len(r.Matches) > 0
}

package parser

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimestampLayouts are tried in order when no layouts are configured.
// The first entries match the "2019-03-10 10:15:22 PM [@12] : Error ..." shape;
// the rest cover common 24h, ISO 8601 and US date forms.
var DefaultTimestampLayouts = []string{
	"2006-01-02 03:04:05 PM",
	"2006-01-02 3:04:05 PM",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05,000",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"01/02/2006 03:04:05 PM",
	"1/2/2006 3:04:05 PM",
	"01/02/2006 15:04:05",
	"2006-01-02",
}

// TimestampError reports a timestamp prefix that no layout could parse.
type TimestampError struct {
	Value string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("unparsable timestamp %q", e.Value)
}

// TimestampParser parses timestamp prefixes using a list of Go time layouts.
type TimestampParser struct {
	layouts  []string
	location *time.Location
}

// NewTimestampParser creates a new timestamp parser.
// Empty layouts fall back to DefaultTimestampLayouts and a nil location to time.Local.
func NewTimestampParser(layouts []string, loc *time.Location) *TimestampParser {
	if len(layouts) == 0 {
		layouts = DefaultTimestampLayouts
	}
	if loc == nil {
		loc = time.Local
	}
	return &TimestampParser{
		layouts:  append([]string(nil), layouts...),
		location: loc,
	}
}

// Layouts returns the layouts tried by the parser, in order.
func (p *TimestampParser) Layouts() []string {
	return append([]string(nil), p.layouts...)
}

// Parse returns the first successful parse of s across the configured layouts.
// Surrounding whitespace is ignored.
func (p *TimestampParser) Parse(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return time.Time{}, &TimestampError{Value: s}
	}

	for _, layout := range p.layouts {
		if ts, err := time.ParseInLocation(layout, value, p.location); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, &TimestampError{Value: value}
}

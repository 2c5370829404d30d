package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Token positions of the fixed line grammar, e.g.
//
//	2019-03-10 10:15:22 PM [@12] : Error Category message text...
//	0          1        2  3     4 5     6        7...
const (
	levelField    = 5
	categoryField = 6
	contentField  = 7
)

// LineParser turns a raw log line into an error entry.
// Parse returns (nil, nil) for lines that are not error lines.
type LineParser interface {
	Parse(line string) (*LogFileEntry, error)
}

// PositionalParser implements LineParser for the fixed, space-delimited grammar:
// token 5 is the level, token 6 the category and tokens 7.. the message.
// The timestamp and thread id are located by character position instead of
// by token, so the timestamp may contain spaces.
type PositionalParser struct {
	timestamps *TimestampParser
}

// NewPositionalParser creates a positional parser. A nil timestamp parser
// uses the default layouts in the local time zone.
func NewPositionalParser(timestamps *TimestampParser) *PositionalParser {
	if timestamps == nil {
		timestamps = NewTimestampParser(nil, nil)
	}
	return &PositionalParser{timestamps: timestamps}
}

// IsErrorLine reports whether the sixth single-space token equals "error",
// ignoring case. Lines with fewer tokens never match.
func IsErrorLine(line string) bool {
	return isErrorToken(strings.Split(line, " "))
}

func isErrorToken(tokens []string) bool {
	if len(tokens) <= levelField {
		return false
	}
	return strings.EqualFold(tokens[levelField], LevelError)
}

// Parse implements LineParser. A timestamp that cannot be parsed yields an
// error wrapping *TimestampError; a non-numeric thread id does not.
func (p *PositionalParser) Parse(line string) (*LogFileEntry, error) {
	tokens := strings.Split(line, " ")
	if !isErrorToken(tokens) {
		return nil, nil
	}

	prefix, ok := TimestampPrefix(line)
	if !ok {
		return nil, fmt.Errorf("no thread marker: %w", &TimestampError{Value: line})
	}

	ts, err := p.timestamps.Parse(prefix)
	if err != nil {
		return nil, err
	}

	entry := NewLogFileEntry(ts)
	entry.ThreadID = parseThreadID(line, len(prefix))

	if len(tokens) > categoryField {
		entry.Category = tokens[categoryField]
	}
	if len(tokens) > contentField {
		entry.Content = strings.Join(tokens[contentField:], " ")
	}

	return entry, nil
}

// TimestampPrefix returns the text before the first '[', which holds the
// timestamp. It reports false when the line has no '['.
func TimestampPrefix(line string) (string, bool) {
	prefix, _, found := strings.Cut(line, "[")
	if !found {
		return "", false
	}
	return prefix, true
}

// parseThreadID reads the text between the first '[' and the last ']',
// drops any '@' and parses it as an integer.
func parseThreadID(line string, open int) *int {
	closing := strings.LastIndex(line, "]")
	if closing <= open {
		return nil
	}

	raw := strings.ReplaceAll(line[open+1:closing], "@", "")
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &id
}

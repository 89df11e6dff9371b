package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tag is one group code / value pair from a tagged DXF stream.
type Tag struct {
	Code  int
	Value string
}

// Float converts the tag value to a float64, returning 0 when the
// value does not parse.
func (t Tag) Float() float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	return f
}

// Int converts the tag value to an int, returning 0 when the value
// does not parse.
func (t Tag) Int() int {
	i, _ := strconv.Atoi(strings.TrimSpace(t.Value))
	return i
}

// Text returns the tag value with surrounding whitespace removed.
func (t Tag) Text() string {
	return strings.TrimSpace(t.Value)
}

// Scanner reads a DXF stream two lines at a time: a numeric group code
// followed by its value. Blank code lines are skipped; a code line
// without a value line is an error.
type Scanner struct {
	lines *bufio.Scanner
	tag   Tag
	line  int
	err   error
}

// NewScanner returns a Scanner reading tag pairs from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{lines: bufio.NewScanner(r)}
}

// Next advances to the next tag pair. It returns false at the end of
// the stream or on a malformed pair; Err distinguishes the two.
func (s *Scanner) Next() bool {
	code, ok := s.nextLine()
	for ok && strings.TrimSpace(code) == "" {
		code, ok = s.nextLine()
	}
	if !ok {
		return false
	}

	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		s.err = fmt.Errorf("line %d: group code %q is not numeric", s.line, strings.TrimSpace(code))
		return false
	}

	value, ok := s.nextLine()
	if !ok {
		if s.err == nil {
			s.err = fmt.Errorf("line %d: group code %d has no value line", s.line, n)
		}
		return false
	}

	// Trailing CR comes off, leading spaces stay: DXF values may
	// begin with significant whitespace.
	s.tag = Tag{Code: n, Value: strings.TrimRight(value, "\r")}
	return true
}

// Tag returns the pair read by the last successful Next.
func (s *Scanner) Tag() Tag {
	return s.tag
}

// Err returns the first error encountered, or nil after a clean end of
// stream.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) nextLine() (string, bool) {
	if !s.lines.Scan() {
		if err := s.lines.Err(); err != nil && s.err == nil {
			s.err = err
		}
		return "", false
	}
	s.line++
	return s.lines.Text(), true
}

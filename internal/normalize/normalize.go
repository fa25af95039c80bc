// Package normalize converts loosely formatted textual numeric fields
// into strict float64 values. Source files mix currency symbols, thousands
// separators, and trailing units ("$1,234 or more", "12,345.6 USD"); the
// normalizer extracts the first maximal numeric substring and parses it.
//
// A value that cannot be normalized is reported as missing, never as zero
// and never as an error: data-quality problems are absorbed locally and
// only surfaced as counts.
package normalize

import (
	"strconv"
	"strings"
)

// ParseNumeric normalizes a raw string into a float64. It strips commas
// and currency symbols, extracts the first maximal run of digits with at
// most one decimal point, and parses it. The second return value is false
// when the input contains no numeric substring.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")

	start := -1
	end := -1
	seenDot := false
	for i, c := range s {
		isDigit := c >= '0' && c <= '9'
		isDot := c == '.'
		if start == -1 {
			if isDigit {
				start = i
			} else if isDot && !seenDot {
				// A substring may begin with the decimal point (".5").
				start = i
				seenDot = true
			} else {
				seenDot = false
			}
			continue
		}
		if isDigit {
			continue
		}
		if isDot && !seenDot {
			seenDot = true
			continue
		}
		end = i
		break
	}
	if start == -1 {
		return 0, false
	}
	if end == -1 {
		end = len(s)
	}

	sub := strings.TrimSuffix(s[start:end], ".")
	if sub == "" || sub == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(sub, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseOptional normalizes a raw string into an optional float64. Missing
// values come back as nil rather than a sentinel so downstream mean and
// pivot computations can exclude them without magic-number comparisons.
func ParseOptional(raw string) *float64 {
	v, ok := ParseNumeric(raw)
	if !ok {
		return nil
	}
	return &v
}

// ParseYear normalizes a raw string into an integer year. Fractional
// year values are truncated; a value outside the plausible model-year
// domain is rejected as unparsable.
func ParseYear(raw string) (int, bool) {
	v, ok := ParseNumeric(raw)
	if !ok {
		return 0, false
	}
	year := int(v)
	if year < 1900 || year > 2100 {
		return 0, false
	}
	return year, true
}

// Stats accumulates per-run data-quality counts. The pipeline never fails
// on a bad individual value; it records the problem here instead.
type Stats struct {
	Parsed     int `json:"parsed"`
	Missing    int `json:"missing"`
	Unparsable int `json:"unparsable"`
}

// Field normalizes one raw cell and updates the counts. Empty cells count
// as missing; non-empty cells with no numeric substring as unparsable.
func (s *Stats) Field(raw string) *float64 {
	if strings.TrimSpace(raw) == "" {
		s.Missing++
		return nil
	}
	v, ok := ParseNumeric(raw)
	if !ok {
		s.Unparsable++
		return nil
	}
	s.Parsed++
	return &v
}

// Add merges another set of counts into s.
func (s *Stats) Add(other Stats) {
	s.Parsed += other.Parsed
	s.Missing += other.Missing
	s.Unparsable += other.Unparsable
}

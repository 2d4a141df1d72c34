package textmatch

import (
	"fmt"
	"strings"
	"time"
)

var isoLayouts = []string{"2006-01-02", time.RFC3339}

// ParseISODate parses a claimed calendar date. Impossible dates such as
// 2023-02-30 are rejected.
func ParseISODate(isoDate string) (time.Time, error) {
	s := strings.TrimSpace(isoDate)

	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, fmt.Errorf("invalid date %q: %w", isoDate, lastErr)
}

// DatePatterns lists the digit sequences a printed date can collapse to once
// separators are lost: DDMMYYYY, YYYYMMDD, DDMMYY and YYMMDD.
func DatePatterns(t time.Time) []string {
	y := fmt.Sprintf("%04d", t.Year())
	m := fmt.Sprintf("%02d", int(t.Month()))
	d := fmt.Sprintf("%02d", t.Day())
	yy := y[2:]

	return []string{
		d + m + y,
		y + m + d,
		d + m + yy,
		yy + m + d,
	}
}

// FindDate returns the first pattern of isoDate found in the digits of text.
// It returns false when the text has no digits or the date does not parse.
func FindDate(text, isoDate string) (string, bool) {
	return FindDateInDigits(Digits(text), isoDate)
}

// FindDateInDigits is FindDate over a precomputed Digits projection.
func FindDateInDigits(digits, isoDate string) (string, bool) {
	if digits == "" {
		return "", false
	}

	t, err := ParseISODate(isoDate)
	if err != nil {
		return "", false
	}

	for _, p := range DatePatterns(t) {
		if strings.Contains(digits, p) {
			return p, true
		}
	}

	return "", false
}

// DateMatches reports whether isoDate appears in text in any of the
// DatePatterns forms. Digit transpositions and misread digits are not
// tolerated.
func DateMatches(text, isoDate string) bool {
	_, ok := FindDate(text, isoDate)
	return ok
}

package gamelog

import (
	"strings"
	"time"
)

// Full layouts, tried in order. Month names match case-insensitively, so
// "FEB 25, 2026" parses with the "Jan 2, 2006" layout.
var dateLayouts = []string{
	"Jan 2, 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// Partial layouts used when no full layout matches
var partialLayouts = []string{
	"Jan 2006",
	"January 2006",
	"2006-01",
	"2006",
}

// ParseGameDate parses a free-form game date. It falls back to month or year
// precision before giving up; ok is false only when nothing matched.
func ParseGameDate(raw string) (t time.Time, ok bool) {
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	for _, layout := range partialLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	// "FEB 25 2026" or "Feb 25, 2026 (OT)": retry on the leading month-day-year tokens
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) >= 3 {
		if t, err := time.Parse("Jan 2 2006", strings.Join(fields[:3], " ")); err == nil {
			return t.UTC(), true
		}
	}
	if len(fields) >= 2 {
		if t, err := time.Parse("Jan 2006", fields[0]+" "+fields[len(fields)-1]); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

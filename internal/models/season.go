package models

import (
	"fmt"
	"strconv"
	"time"
)

// SeasonFor returns the season identifier ("2025-26") in progress at t.
// Seasons roll over in October.
func SeasonFor(t time.Time) string {
	start := t.Year()
	if t.Month() < time.October {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// ValidSeason reports whether s has the form YYYY-YY with consecutive years
func ValidSeason(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	start, err := strconv.Atoi(s[:4])
	if err != nil || start < 1946 {
		return false
	}
	end, err := strconv.Atoi(s[5:])
	if err != nil {
		return false
	}
	return end == (start+1)%100
}

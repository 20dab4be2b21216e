package gamelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseGameDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{"FEB 25, 2026", time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), true},
		{"Feb 5, 2026", time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), true},
		{"feb 05, 2026", time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), true},
		{"  OCT  22,  2025 ", time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC), true},
		{"2026-02-25", time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), true},
		{"2026-02-25T19:30:00", time.Date(2026, 2, 25, 19, 30, 0, 0, time.UTC), true},
		{"2026-02-25T19:30:00Z", time.Date(2026, 2, 25, 19, 30, 0, 0, time.UTC), true},
		{"02/25/2026", time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), true},
		{"FEB 25 2026", time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), true},
		{"FEB 30, 2026", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"Feb 2026", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"2026-02", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"2026", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseGameDate(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

// Package features derives scoring inputs from a player's recent games.
package features

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/pickscore/internal/models"
)

// Extractor computes a FeatureSet from games sorted most recent first
type Extractor struct{}

// NewExtractor creates a feature extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract derives the trailing average, hit count, estimated minutes and edge.
// An empty batch is models.ErrNoGameData; a missing statistic in any game inside
// the lookback or hit window is a *models.MalformedRecordError.
func (e *Extractor) Extract(games []models.GameLogEntry, statCat models.StatCategory, line float64, direction models.Direction, lookback int) (*models.FeatureSet, error) {
	if !statCat.Valid() {
		return nil, &models.ValidationError{Fields: map[string]string{"stat": "unknown value"}}
	}
	if !direction.Valid() {
		return nil, &models.ValidationError{Fields: map[string]string{"direction": "unknown value"}}
	}
	if math.IsInf(line, 0) || math.IsNaN(line) {
		return nil, &models.ValidationError{Fields: map[string]string{"line": "must be a finite number"}}
	}
	if lookback <= 0 {
		return nil, &models.ValidationError{Fields: map[string]string{"lookback": "must be positive"}}
	}
	if len(games) == 0 {
		return nil, models.ErrNoGameData
	}

	seriesLen := max(min(lookback, len(games)), min(models.HitsWindow, len(games)))
	series, err := statSeries(games[:seriesLen], statCat)
	if err != nil {
		return nil, err
	}

	used := min(lookback, len(games))
	avg := stat.Mean(series[:used], nil)

	hitsWindow := min(models.HitsWindow, len(games))
	hits := countHits(series[:hitsWindow], line, direction)

	minutes, defaulted := estimateMinutes(games[:min(models.MinutesWindow, len(games))])

	edge := avg - line
	magnitude := math.Abs(edge) / math.Max(1, line) * models.EdgeScaleMax
	magnitude = math.Max(0, math.Min(models.EdgeScaleMax, magnitude))

	return &models.FeatureSet{
		Stat:             statCat,
		Line:             line,
		Direction:        direction,
		Lookback:         lookback,
		GamesUsed:        used,
		Series:           series[:used],
		AvgN:             avg,
		Hits5:            hits,
		HitsWindow:       hitsWindow,
		EstimatedMinutes: minutes,
		MinutesDefaulted: defaulted,
		Edge:             edge,
		EdgeMagnitude:    magnitude,
	}, nil
}

func statSeries(games []models.GameLogEntry, statCat models.StatCategory) ([]float64, error) {
	series := make([]float64, len(games))
	for i, g := range games {
		v, err := g.StatValue(statCat)
		if err != nil {
			return nil, err
		}
		series[i] = v.InexactFloat64()
	}
	return series, nil
}

// countHits counts values strictly beyond the line in the pick's direction
func countHits(values []float64, line float64, direction models.Direction) int {
	hits := 0
	for _, v := range values {
		switch direction {
		case models.DirectionMore:
			if v > line {
				hits++
			}
		case models.DirectionLess:
			if v < line {
				hits++
			}
		}
	}
	return hits
}

// estimateMinutes averages the parseable minutes fields. Only when none parse does
// it fall back to the neutral default.
func estimateMinutes(games []models.GameLogEntry) (float64, bool) {
	parsed := make([]float64, 0, len(games))
	for _, g := range games {
		if m, ok := ParseMinutes(g.Minutes); ok {
			parsed = append(parsed, m)
		}
	}
	if len(parsed) == 0 {
		return models.DefaultMinutes, true
	}
	return stat.Mean(parsed, nil), false
}

// ParseMinutes reads "36", "36.5" or "36:30" (minutes:seconds) as fractional minutes
func ParseMinutes(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	minPart, secPart, hasSeconds := strings.Cut(s, ":")
	m, err := strconv.ParseFloat(minPart, 64)
	if err != nil || m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, false
	}
	if !hasSeconds {
		return m, true
	}

	sec, err := strconv.Atoi(secPart)
	if err != nil || sec < 0 || sec >= 60 {
		return 0, false
	}
	return m + float64(sec)/60, true
}

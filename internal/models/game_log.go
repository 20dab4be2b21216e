package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GameLogEntry is one completed game for a player. Box-score counts are nullable so
// a missing value is never mistaken for zero.
type GameLogEntry struct {
	GameID   string                     `json:"game_id"`
	Date     time.Time                  `json:"date"`
	RawDate  string                     `json:"raw_date"`
	Matchup  string                     `json:"matchup"`
	Minutes  string                     `json:"minutes"`
	Points   decimal.NullDecimal        `json:"points"`
	Rebounds decimal.NullDecimal        `json:"rebounds"`
	Assists  decimal.NullDecimal        `json:"assists"`
	Extra    map[string]decimal.Decimal `json:"extra,omitempty"`
}

// HasDate reports whether the game date could be parsed
func (g GameLogEntry) HasDate() bool {
	return !g.Date.IsZero()
}

// StatValue returns the entry's value for the given category. PRA is the sum of
// points, rebounds and assists. A null field is a MalformedRecordError.
func (g GameLogEntry) StatValue(stat StatCategory) (decimal.Decimal, error) {
	switch stat {
	case StatPoints:
		return g.require("points", g.Points)
	case StatRebounds:
		return g.require("rebounds", g.Rebounds)
	case StatAssists:
		return g.require("assists", g.Assists)
	case StatPRA:
		pts, err := g.require("points", g.Points)
		if err != nil {
			return decimal.Zero, err
		}
		reb, err := g.require("rebounds", g.Rebounds)
		if err != nil {
			return decimal.Zero, err
		}
		ast, err := g.require("assists", g.Assists)
		if err != nil {
			return decimal.Zero, err
		}
		return pts.Add(reb).Add(ast), nil
	default:
		return decimal.Zero, &ValidationError{Fields: map[string]string{"stat": "unknown stat category " + string(stat)}}
	}
}

func (g GameLogEntry) require(field string, v decimal.NullDecimal) (decimal.Decimal, error) {
	if !v.Valid {
		return decimal.Zero, &MalformedRecordError{GameDate: g.RawDate, Field: field, Reason: "value is missing"}
	}
	return v.Decimal, nil
}

package models

// Feature windows
const (
	HitsWindow     = 5
	MinutesWindow  = 10
	DefaultMinutes = 30.0
	EdgeScaleMax   = 30.0
)

// FeatureSet holds the scoring inputs derived from one fetched batch
type FeatureSet struct {
	Stat             StatCategory `json:"stat"`
	Line             float64      `json:"line"`
	Direction        Direction    `json:"direction"`
	Lookback         int          `json:"lookback"`
	GamesUsed        int          `json:"games_used"`
	Series           []float64    `json:"series"`
	AvgN             float64      `json:"avg_n"`
	Hits5            int          `json:"hits5"`
	HitsWindow       int          `json:"hits_window"`
	EstimatedMinutes float64      `json:"estimated_minutes"`
	MinutesDefaulted bool         `json:"minutes_defaulted"`
	Edge             float64      `json:"edge"`
	EdgeMagnitude    float64      `json:"edge_magnitude"`
}

package models

// Label is the categorical verdict for a score
type Label string

const (
	LabelGood  Label = "PICK BUENO"
	LabelFlex  Label = "SOLO FLEX"
	LabelAvoid Label = "EVITAR"
)

// ScoreBreakdown is the additive decomposition of a raw score
type ScoreBreakdown struct {
	Base      float64 `json:"base"`
	Hits      float64 `json:"hits"`
	Minutes   float64 `json:"minutes"`
	Role      float64 `json:"role"`
	Blowout   float64 `json:"blowout"`
	Direction float64 `json:"direction"`
	Raw       float64 `json:"raw"`
}

// ScoreResult is the output of the scoring engine. Score and Probability are on 0-100.
type ScoreResult struct {
	Score       float64        `json:"score"`
	Probability float64        `json:"probability"`
	Label       Label          `json:"label"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
}

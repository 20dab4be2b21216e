// Package scoring turns extracted features into a confidence score, probability and label.
package scoring

import (
	"fmt"
	"math"

	"github.com/yourusername/pickscore/internal/models"
)

// Score model constants
const (
	BaseScore         = 50.0
	HitsMaxPoints     = 25.0
	MinutesFloor      = 24.0
	MinutesMaxPoints  = 18.0
	ProbabilityFactor = 0.35

	GoodThreshold = 70.0
	FlexThreshold = 60.0
)

// Engine is the additive point model. It holds no state; identical inputs always
// produce identical results.
type Engine struct{}

// NewEngine creates a scoring engine
func NewEngine() *Engine {
	return &Engine{}
}

// Score combines the features with the qualitative adjustments. Unknown enum
// values are rejected rather than scored as zero.
func (e *Engine) Score(fs models.FeatureSet, role models.Role, blowout models.BlowoutRisk, direction models.Direction) (models.ScoreResult, error) {
	roleBonus, err := RoleBonus(role)
	if err != nil {
		return models.ScoreResult{}, err
	}
	blowoutPenalty, err := BlowoutPenalty(blowout)
	if err != nil {
		return models.ScoreResult{}, err
	}
	directionBonus, err := DirectionBonus(direction)
	if err != nil {
		return models.ScoreResult{}, err
	}

	breakdown := models.ScoreBreakdown{
		Base:      BaseScore,
		Hits:      HitsPoints(fs.Hits5),
		Minutes:   MinutesPoints(fs.EstimatedMinutes),
		Role:      roleBonus,
		Blowout:   blowoutPenalty,
		Direction: directionBonus,
	}
	breakdown.Raw = breakdown.Base + breakdown.Hits + breakdown.Minutes + breakdown.Role + breakdown.Blowout + breakdown.Direction

	score := clamp(breakdown.Raw, 0, 100)
	return models.ScoreResult{
		Score:       score,
		Probability: Probability(score),
		Label:       LabelFor(score),
		Breakdown:   breakdown,
	}, nil
}

// HitsPoints scales hits out of five onto 0-25
func HitsPoints(hits5 int) float64 {
	h := clamp(float64(hits5), 0, models.HitsWindow)
	return h * HitsMaxPoints / models.HitsWindow
}

// MinutesPoints awards one point per minute above 24, capped at 18
func MinutesPoints(minutes float64) float64 {
	return clamp(minutes-MinutesFloor, 0, MinutesMaxPoints)
}

// RoleBonus returns the bonus for the player's role
func RoleBonus(role models.Role) (float64, error) {
	switch role {
	case models.RoleStar:
		return 10, nil
	case models.RoleStarter:
		return 5, nil
	case models.RoleBench:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: unknown role %q", models.ErrInvalidQuery, role)
	}
}

// BlowoutPenalty returns the (non-positive) penalty for the blowout risk
func BlowoutPenalty(risk models.BlowoutRisk) (float64, error) {
	switch risk {
	case models.BlowoutLow:
		return 0, nil
	case models.BlowoutMedium:
		return -5, nil
	case models.BlowoutHigh:
		return -10, nil
	default:
		return 0, fmt.Errorf("%w: unknown blowout risk %q", models.ErrInvalidQuery, risk)
	}
}

// DirectionBonus favours MORE picks
func DirectionBonus(direction models.Direction) (float64, error) {
	switch direction {
	case models.DirectionMore:
		return 2, nil
	case models.DirectionLess:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: unknown direction %q", models.ErrInvalidQuery, direction)
	}
}

// Probability compresses a score toward 50
func Probability(score float64) float64 {
	return clamp(BaseScore+(score-BaseScore)*ProbabilityFactor, 0, 100)
}

// LabelFor maps a score to its tier; each tier includes its lower bound
func LabelFor(score float64) models.Label {
	switch {
	case score >= GoodThreshold:
		return models.LabelGood
	case score >= FlexThreshold:
		return models.LabelFlex
	default:
		return models.LabelAvoid
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

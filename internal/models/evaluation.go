package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal state of one pipeline run
type Outcome string

const (
	OutcomeScored              Outcome = "scored"
	OutcomeInvalidQuery        Outcome = "invalid_query"
	OutcomePlayerNotFound      Outcome = "player_not_found"
	OutcomeUpstreamUnavailable Outcome = "upstream_unavailable"
	OutcomeNoGameData          Outcome = "no_data"
	OutcomeMalformedRecord     Outcome = "malformed_record"
	OutcomeInternal            Outcome = "internal_error"
)

// Retryable reports whether re-issuing the same query later may succeed
func (o Outcome) Retryable() bool {
	return o == OutcomeUpstreamUnavailable
}

// ClassifyError maps a pipeline error onto exactly one outcome
func ClassifyError(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeScored
	case errors.Is(err, ErrInvalidQuery):
		return OutcomeInvalidQuery
	case errors.Is(err, ErrPlayerNotFound):
		return OutcomePlayerNotFound
	case errors.Is(err, ErrNoGameData):
		return OutcomeNoGameData
	case errors.Is(err, ErrMalformedRecord):
		return OutcomeMalformedRecord
	case errors.Is(err, ErrUpstreamUnavailable):
		return OutcomeUpstreamUnavailable
	default:
		return OutcomeInternal
	}
}

// Evaluation is everything the presentation layer needs to render one query
type Evaluation struct {
	QueryID     uuid.UUID       `json:"query_id"`
	Query       PickQuery       `json:"query"`
	Outcome     Outcome         `json:"outcome"`
	Player      *PlayerIdentity `json:"player,omitempty"`
	Games       []GameLogEntry  `json:"games,omitempty"`
	Features    *FeatureSet     `json:"features,omitempty"`
	Result      *ScoreResult    `json:"result,omitempty"`
	EvaluatedAt time.Time       `json:"evaluated_at"`
}

// Scored reports whether the evaluation produced a score
func (e *Evaluation) Scored() bool {
	return e != nil && e.Outcome == OutcomeScored && e.Result != nil
}

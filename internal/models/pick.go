package models

import (
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Lookback window bounds
const (
	MinLookback     = 5
	MaxLookback     = 15
	DefaultLookback = 10
)

// PickQuery is the complete, immutable input of one evaluation. The presentation
// layer builds it and passes it by value into the pipeline.
type PickQuery struct {
	PlayerName string       `json:"player_name" validate:"required"`
	Stat       StatCategory `json:"stat" validate:"known"`
	Line       float64      `json:"line" validate:"finite,gt=0"`
	Direction  Direction    `json:"direction" validate:"known"`
	Lookback   int          `json:"lookback" validate:"min=5,max=15"`
	Role       Role         `json:"role" validate:"known"`
	Blowout    BlowoutRisk  `json:"blowout" validate:"known"`
	Season     string       `json:"season" validate:"season"`
}

type enumValue interface {
	Valid() bool
}

var queryValidator = newQueryValidator()

func newQueryValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("known", func(fl validator.FieldLevel) bool {
		if e, ok := fl.Field().Interface().(enumValue); ok {
			return e.Valid()
		}
		return false
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	_ = v.RegisterValidation("season", func(fl validator.FieldLevel) bool {
		return ValidSeason(fl.Field().String())
	})
	return v
}

// Normalized returns a copy with surrounding whitespace removed from the name
func (q PickQuery) Normalized() PickQuery {
	q.PlayerName = strings.TrimSpace(q.PlayerName)
	q.Season = strings.TrimSpace(q.Season)
	return q
}

// Active reports whether the query has enough input for the pipeline to run
func (q PickQuery) Active() bool {
	return q.Line > 0 && !math.IsInf(q.Line, 0) && strings.TrimSpace(q.PlayerName) != ""
}

// Validate checks every field. Failures are a *ValidationError matching ErrInvalidQuery.
func (q PickQuery) Validate() error {
	q = q.Normalized()
	err := queryValidator.Struct(q)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: map[string]string{"query": err.Error()}}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonFieldName(fe.Field())] = describeRule(fe)
	}
	return &ValidationError{Fields: fields}
}

// FetchWindow is the number of games the pipeline needs to cover every feature window
func (q PickQuery) FetchWindow() int {
	n := q.Lookback
	if n < MinutesWindow {
		n = MinutesWindow
	}
	return n
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "known":
		return "unknown value"
	case "finite":
		return "must be a finite number"
	case "season":
		return "must look like 2025-26"
	default:
		return "failed " + fe.Tag()
	}
}

func jsonFieldName(field string) string {
	switch field {
	case "PlayerName":
		return "player_name"
	default:
		return strings.ToLower(field)
	}
}

// Package api exposes the pick pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickscore/internal/models"
)

// retryAfterSeconds is advertised when the upstream provider is unavailable
const retryAfterSeconds = 30

// Evaluator runs one query through the pipeline
type Evaluator interface {
	Evaluate(ctx context.Context, query models.PickQuery) (*models.Evaluation, error)
}

// PlayerResolver maps a free-text name onto a player identity
type PlayerResolver interface {
	Resolve(ctx context.Context, name string) (models.PlayerIdentity, error)
}

// ScoreRequest is the JSON body of a score request. Enumerations are free text and
// accept the same aliases as the CLI.
type ScoreRequest struct {
	PlayerName string  `json:"player_name"`
	Stat       string  `json:"stat"`
	Line       float64 `json:"line"`
	Direction  string  `json:"direction"`
	Lookback   int     `json:"lookback"`
	Role       string  `json:"role"`
	Blowout    string  `json:"blowout"`
	Season     string  `json:"season"`
}

// ScoreResponse wraps an evaluation with retry guidance
type ScoreResponse struct {
	*models.Evaluation
	Retryable bool   `json:"retryable"`
	Error     string `json:"error,omitempty"`
}

// ErrorResponse is returned when no evaluation was attempted
type ErrorResponse struct {
	Outcome models.Outcome `json:"outcome"`
	Error   string         `json:"error"`
}

// Defaults fill in optional request fields
type Defaults struct {
	Lookback int
	Season   string
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	evaluator Evaluator
	resolver  PlayerResolver
	defaults  Defaults
	now       func() time.Time
	logger    *logrus.Entry
}

// NewHandler creates a new handler
func NewHandler(evaluator Evaluator, resolver PlayerResolver, defaults Defaults, log *logrus.Logger) *Handler {
	if defaults.Lookback == 0 {
		defaults.Lookback = models.DefaultLookback
	}
	return &Handler{
		evaluator: evaluator,
		resolver:  resolver,
		defaults:  defaults,
		now:       time.Now,
		logger:    log.WithField("component", "api"),
	}
}

// ScorePick evaluates a pick and maps the outcome onto an HTTP status
func (h *Handler) ScorePick(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.OutcomeInvalidQuery, fmt.Sprintf("invalid request: %v", err))
		return
	}

	query, err := h.buildQuery(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.OutcomeInvalidQuery, err.Error())
		return
	}

	eval, err := h.evaluator.Evaluate(r.Context(), query)
	if eval == nil {
		respondError(w, http.StatusInternalServerError, models.OutcomeInternal, "evaluation failed")
		return
	}

	resp := ScoreResponse{Evaluation: eval, Retryable: eval.Outcome.Retryable()}
	if err != nil {
		resp.Error = err.Error()
	}

	status := StatusFor(eval.Outcome)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfterSeconds))
	}
	if status >= http.StatusInternalServerError {
		h.logger.WithFields(logrus.Fields{
			"query_id": eval.QueryID.String(),
			"outcome":  eval.Outcome,
		}).WithError(err).Warn("Pick evaluation failed")
	}
	respondJSON(w, status, resp)
}

// ResolvePlayer returns the identity a name resolves to
func (h *Handler) ResolvePlayer(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	player, err := h.resolver.Resolve(r.Context(), name)
	if err != nil {
		outcome := models.ClassifyError(err)
		status := StatusFor(outcome)
		if status == http.StatusServiceUnavailable {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfterSeconds))
		}
		respondError(w, status, outcome, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// StatusFor maps a pipeline outcome onto an HTTP status
func StatusFor(outcome models.Outcome) int {
	switch outcome {
	case models.OutcomeScored, models.OutcomeNoGameData:
		return http.StatusOK
	case models.OutcomeInvalidQuery:
		return http.StatusBadRequest
	case models.OutcomePlayerNotFound:
		return http.StatusNotFound
	case models.OutcomeUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case models.OutcomeMalformedRecord:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) buildQuery(req ScoreRequest) (models.PickQuery, error) {
	var errs []error

	stat, err := models.ParseStatCategory(req.Stat)
	errs = append(errs, err)
	direction, err := models.ParseDirection(req.Direction)
	errs = append(errs, err)
	role, err := models.ParseRole(req.Role)
	errs = append(errs, err)
	blowout, err := models.ParseBlowoutRisk(req.Blowout)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return models.PickQuery{}, err
	}

	lookback := req.Lookback
	if lookback == 0 {
		lookback = h.defaults.Lookback
	}
	season := strings.TrimSpace(req.Season)
	if season == "" {
		season = h.defaults.Season
	}
	if season == "" {
		season = models.SeasonFor(h.now())
	}

	return models.PickQuery{
		PlayerName: req.PlayerName,
		Stat:       stat,
		Line:       req.Line,
		Direction:  direction,
		Lookback:   lookback,
		Role:       role,
		Blowout:    blowout,
		Season:     season,
	}, nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, outcome models.Outcome, message string) {
	respondJSON(w, status, ErrorResponse{Outcome: outcome, Error: message})
}

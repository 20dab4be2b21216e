// Package logger provides pick pipeline logging.
package logger

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PickLogger provides dedicated logging for pick pipeline runs.
type PickLogger struct {
	*logrus.Entry
}

// NewPickLogger creates a new pick pipeline logger.
func NewPickLogger(baseLogger *logrus.Logger) *PickLogger {
	return &PickLogger{
		Entry: baseLogger.WithField("component", "pick_pipeline"),
	}
}

// ForQuery returns a logger bound to one query id.
func (pl *PickLogger) ForQuery(queryID uuid.UUID) *PickLogger {
	return &PickLogger{Entry: pl.WithField("query_id", queryID.String())}
}

// LogQueryReceived logs the start of a pipeline run.
func (pl *PickLogger) LogQueryReceived(playerName, stat string, line float64, direction string, lookback int, season string) {
	pl.WithFields(logrus.Fields{
		"player_query": playerName,
		"stat":         stat,
		"line":         line,
		"direction":    direction,
		"lookback":     lookback,
		"season":       season,
	}).Debug("Pick query received")
}

// LogQueryRejected logs a query that failed validation.
func (pl *PickLogger) LogQueryRejected(reason string) {
	pl.WithFields(logrus.Fields{
		"event_type": "rejected",
		"reason":     reason,
	}).Info("Pick query rejected")
}

// LogPlayerResolved logs a successful name resolution.
func (pl *PickLogger) LogPlayerResolved(query string, playerID int64, fullName string, active bool) {
	pl.WithFields(logrus.Fields{
		"player_query": query,
		"player_id":    playerID,
		"player_name":  fullName,
		"is_active":    active,
	}).Debug("Player resolved")
}

// LogPlayerNotFound logs a name that did not resolve.
func (pl *PickLogger) LogPlayerNotFound(query string) {
	pl.WithFields(logrus.Fields{
		"player_query": query,
		"event_type":   "player_not_found",
	}).Info("Player not found")
}

// LogGameLogFetched logs the size of a fetched batch.
func (pl *PickLogger) LogGameLogFetched(playerID int64, season string, requested, returned int) {
	pl.WithFields(logrus.Fields{
		"player_id": playerID,
		"season":    season,
		"requested": requested,
		"returned":  returned,
	}).Debug("Game log fetched")
}

// LogFeaturesExtracted logs the derived features.
func (pl *PickLogger) LogFeaturesExtracted(avgN float64, hits5 int, estimatedMinutes float64, minutesDefaulted bool, edge float64) {
	pl.WithFields(logrus.Fields{
		"avg_n":             avgN,
		"hits5":             hits5,
		"estimated_minutes": estimatedMinutes,
		"minutes_defaulted": minutesDefaulted,
		"edge":              edge,
	}).Debug("Features extracted")
}

// LogPickScored logs the final verdict.
func (pl *PickLogger) LogPickScored(playerName, stat string, line, score, probability float64, label string, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"player_name": playerName,
		"stat":        stat,
		"line":        line,
		"score":       score,
		"probability": probability,
		"label":       label,
		"duration_ms": durationMs,
	}).Info("Pick scored")
}

// LogPipelineFailure logs a non-scored terminal outcome.
func (pl *PickLogger) LogPipelineFailure(outcome string, retryable bool, err error) {
	pl.WithFields(logrus.Fields{
		"outcome":   outcome,
		"retryable": retryable,
	}).WithError(err).Warn("Pick pipeline did not produce a score")
}

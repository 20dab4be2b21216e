// Package logger provides upstream data provider logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// UpstreamLogger records upstream data provider events.
type UpstreamLogger struct {
	*logrus.Entry
}

// NewUpstreamLogger creates a new upstream logger for the named source.
func NewUpstreamLogger(baseLogger *logrus.Logger, source string) *UpstreamLogger {
	return &UpstreamLogger{
		Entry: baseLogger.WithFields(logrus.Fields{
			"component": "upstream",
			"source":    source,
		}),
	}
}

// LogRequest logs a completed upstream request.
func (ul *UpstreamLogger) LogRequest(operation string, statusCode int, latencyMs float64) {
	ul.WithFields(logrus.Fields{
		"operation":   operation,
		"status_code": statusCode,
		"latency_ms":  latencyMs,
	}).Debug("Upstream request completed")
}

// LogCircuitBreakerEvent logs a circuit breaker state change.
func (ul *UpstreamLogger) LogCircuitBreakerEvent(eventType string, consecutiveErrors int, lastErr error) {
	entry := ul.WithFields(logrus.Fields{
		"event_type":         eventType,
		"consecutive_errors": consecutiveErrors,
	})
	if lastErr != nil {
		entry = entry.WithError(lastErr)
	}
	entry.Warn("Upstream circuit breaker state changed")
}

// LogUnparsedDate logs a game date that could not be parsed.
func (ul *UpstreamLogger) LogUnparsedDate(playerID int64, rawDate string) {
	ul.WithFields(logrus.Fields{
		"player_id": playerID,
		"raw_date":  rawDate,
	}).Warn("Game date could not be parsed, ordering it last")
}

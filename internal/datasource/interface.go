package datasource

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/yourusername/pickscore/internal/models"
)

// Provider is the upstream source of player identities and game logs
type Provider interface {
	// LookupPlayers returns players whose full name matches query ignoring case
	LookupPlayers(ctx context.Context, query string) ([]PlayerRecord, error)

	// ListPlayers returns the full known-players registry in registry order
	ListPlayers(ctx context.Context) ([]PlayerRecord, error)

	// GetGameLog returns every game of the season for a player, in provider order
	GetGameLog(ctx context.Context, playerID int64, season string) ([]GameLogRecord, error)

	// Name returns the name of the provider
	Name() string
}

// Pinger is implemented by providers that can report their own readiness
type Pinger interface {
	Ping(ctx context.Context) error
}

// PlayerRecord is a registry row as the provider returns it
type PlayerRecord struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
}

// Identity converts the record into the canonical player identity
func (p PlayerRecord) Identity() models.PlayerIdentity {
	return models.PlayerIdentity{ID: p.ID, FullName: p.FullName, IsActive: p.IsActive}
}

// GameLogRecord is one game as the provider returns it. The date and minutes are
// kept as free-form text; counts are null when the provider omitted them.
type GameLogRecord struct {
	GameID   string                     `json:"game_id"`
	GameDate string                     `json:"game_date"`
	Matchup  string                     `json:"matchup"`
	Minutes  string                     `json:"min"`
	Points   decimal.NullDecimal        `json:"pts"`
	Rebounds decimal.NullDecimal        `json:"reb"`
	Assists  decimal.NullDecimal        `json:"ast"`
	Extra    map[string]decimal.Decimal `json:"-"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap returns the underlying error
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Is maps error codes onto the pipeline taxonomy
func (e DataSourceError) Is(target error) bool {
	switch target {
	case models.ErrUpstreamUnavailable:
		return e.Code != ErrCodeInvalidData && e.Code != ErrCodeNotFound
	case models.ErrMalformedRecord:
		return e.Code == ErrCodeInvalidData
	}
	return false
}

// Retryable reports whether re-issuing the same call later may succeed
func (e DataSourceError) Retryable() bool {
	return errors.Is(e, models.ErrUpstreamUnavailable)
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeCircuitOpen          = "circuit_open"
	ErrCodeTimeout              = "timeout"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/pickscore/internal/logger"
	"github.com/yourusername/pickscore/internal/metrics"
	"github.com/yourusername/pickscore/internal/models"
)

const (
	httpProviderName = "stats_api"

	opLookupPlayers = "lookup_players"
	opListPlayers   = "list_players"
	opGetGameLog    = "get_game_log"
)

// HTTPProvider reads players and game logs from a JSON stats API:
//
//	GET {base}/players?search=NAME
//	GET {base}/players
//	GET {base}/players/{id}/gamelog?season=YYYY-YY
type HTTPProvider struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	userAgent  string
	logger     *logger.UpstreamLogger
}

type playersEnvelope struct {
	Players []PlayerRecord `json:"players"`
}

type gameLogEnvelope struct {
	Games []json.RawMessage `json:"games"`
}

// NewHTTPProvider creates a provider for the stats API at baseURL
func NewHTTPProvider(httpClient *RateLimitedHTTPClient, baseURL, apiKey, userAgent string, log *logger.UpstreamLogger) *HTTPProvider {
	return &HTTPProvider{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		userAgent:  userAgent,
		logger:     log,
	}
}

// Name returns the name of the provider
func (p *HTTPProvider) Name() string {
	return httpProviderName
}

// LookupPlayers returns players whose full name matches query
func (p *HTTPProvider) LookupPlayers(ctx context.Context, query string) ([]PlayerRecord, error) {
	endpoint := fmt.Sprintf("%s/players?search=%s", p.baseURL, url.QueryEscape(query))
	return p.fetchPlayers(ctx, opLookupPlayers, endpoint)
}

// ListPlayers returns the full registry
func (p *HTTPProvider) ListPlayers(ctx context.Context) ([]PlayerRecord, error) {
	return p.fetchPlayers(ctx, opListPlayers, p.baseURL+"/players")
}

// GetGameLog returns every game of the season for a player. A 404 means the player
// has no log for that season and yields an empty batch.
func (p *HTTPProvider) GetGameLog(ctx context.Context, playerID int64, season string) ([]GameLogRecord, error) {
	endpoint := fmt.Sprintf("%s/players/%d/gamelog?season=%s", p.baseURL, playerID, url.QueryEscape(season))

	body, err := p.get(ctx, opGetGameLog, endpoint)
	if err != nil || body == nil {
		return nil, err
	}

	var envelope gameLogEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, NewDataSourceError(p.Name(), ErrCodeInvalidData, "failed to parse game log", err)
	}

	records := make([]GameLogRecord, 0, len(envelope.Games))
	for _, raw := range envelope.Games {
		record, err := decodeGameRecord(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// Ping checks that the API answers
func (p *HTTPProvider) Ping(ctx context.Context) error {
	if p.httpClient.IsOpen() {
		return NewDataSourceError(p.Name(), ErrCodeCircuitOpen, "circuit breaker open", ErrCircuitOpen)
	}
	return nil
}

func (p *HTTPProvider) fetchPlayers(ctx context.Context, operation, endpoint string) ([]PlayerRecord, error) {
	body, err := p.get(ctx, operation, endpoint)
	if err != nil || body == nil {
		return nil, err
	}

	var envelope playersEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, NewDataSourceError(p.Name(), ErrCodeInvalidData, "failed to parse players", err)
	}
	return envelope.Players, nil
}

// get performs the request and returns the body of a 200 response, or nil for 404
func (p *HTTPProvider) get(ctx context.Context, operation, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewDataSourceError(p.Name(), ErrCodeNetworkError, "failed to create request", err)
	}

	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordUpstreamRequest(p.Name(), operation, 0, elapsed.Seconds())
		return nil, p.transportError(err)
	}
	defer drainBody(resp.Body)

	metrics.RecordUpstreamRequest(p.Name(), operation, resp.StatusCode, elapsed.Seconds())
	if p.logger != nil {
		p.logger.LogRequest(operation, resp.StatusCode, float64(elapsed.Milliseconds()))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, NewDataSourceError(p.Name(), ErrCodeNetworkError, "failed to read response", err)
		}
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewDataSourceError(p.Name(), ErrCodeAuthenticationFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(p.Name(), ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, NewDataSourceError(p.Name(), ErrCodeServerError, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	default:
		return nil, NewDataSourceError(p.Name(), ErrCodeUnknown, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
}

func (p *HTTPProvider) transportError(err error) error {
	switch {
	case errors.Is(err, ErrCircuitOpen):
		return NewDataSourceError(p.Name(), ErrCodeCircuitOpen, "upstream temporarily disabled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return NewDataSourceError(p.Name(), ErrCodeTimeout, "request timed out", err)
	default:
		return NewDataSourceError(p.Name(), ErrCodeNetworkError, "request failed", err)
	}
}

var statFields = []struct {
	key   string
	field string
}{
	{"pts", "points"},
	{"reb", "rebounds"},
	{"ast", "assists"},
}

var textFields = map[string]bool{
	"game_id":   true,
	"game_date": true,
	"matchup":   true,
	"min":       true,
}

// decodeGameRecord decodes one game. A count that is present but not numeric makes
// the record malformed; other numeric keys are kept as extra box-score counts.
func decodeGameRecord(raw json.RawMessage) (GameLogRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return GameLogRecord{}, &models.MalformedRecordError{Reason: "record is not an object"}
	}

	record := GameLogRecord{
		GameID:   textValue(fields["game_id"]),
		GameDate: textValue(fields["game_date"]),
		Matchup:  textValue(fields["matchup"]),
		Minutes:  textValue(fields["min"]),
	}

	targets := map[string]*decimal.NullDecimal{
		"pts": &record.Points,
		"reb": &record.Rebounds,
		"ast": &record.Assists,
	}
	for _, sf := range statFields {
		value, ok := fields[sf.key]
		if !ok {
			continue
		}
		if err := targets[sf.key].UnmarshalJSON(value); err != nil {
			return GameLogRecord{}, &models.MalformedRecordError{
				GameDate: record.GameDate,
				Field:    sf.field,
				Reason:   fmt.Sprintf("not a number: %s", string(value)),
			}
		}
	}

	for key, value := range fields {
		if textFields[key] || targets[key] != nil {
			continue
		}
		var extra decimal.NullDecimal
		if extra.UnmarshalJSON(value) != nil || !extra.Valid {
			continue
		}
		if record.Extra == nil {
			record.Extra = make(map[string]decimal.Decimal)
		}
		record.Extra[key] = extra.Decimal
	}

	return record, nil
}

// textValue renders a JSON string or number as text; null and absent become ""
func textValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

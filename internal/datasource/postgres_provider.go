package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/pickscore/internal/database"
	"github.com/yourusername/pickscore/internal/metrics"
	"github.com/yourusername/pickscore/internal/models"
	"github.com/yourusername/pickscore/internal/repository"
)

const postgresProviderName = "postgres_mirror"

// PostgresProvider serves players and game logs from a read-only Postgres mirror
type PostgresProvider struct {
	db    *database.DB
	repos *repository.Repositories
}

// NewPostgresProvider creates a provider over an open database
func NewPostgresProvider(db *database.DB) (*PostgresProvider, error) {
	repos, err := repository.NewRepositories(db)
	if err != nil {
		return nil, err
	}
	return &PostgresProvider{db: db, repos: repos}, nil
}

// Name returns the name of the provider
func (p *PostgresProvider) Name() string {
	return postgresProviderName
}

// LookupPlayers returns players whose full name equals query ignoring case
func (p *PostgresProvider) LookupPlayers(ctx context.Context, query string) ([]PlayerRecord, error) {
	start := time.Now()
	players, err := p.repos.Player.FindByName(ctx, query)
	p.record(opLookupPlayers, start, err)
	if err != nil {
		return nil, NewDataSourceError(p.Name(), ErrCodeNetworkError, "player lookup failed", err)
	}
	return toPlayerRecords(players), nil
}

// ListPlayers returns the full registry
func (p *PostgresProvider) ListPlayers(ctx context.Context) ([]PlayerRecord, error) {
	start := time.Now()
	players, err := p.repos.Player.List(ctx)
	p.record(opListPlayers, start, err)
	if err != nil {
		return nil, NewDataSourceError(p.Name(), ErrCodeNetworkError, "player listing failed", err)
	}
	return toPlayerRecords(players), nil
}

// GetGameLog returns the mirrored games of the season for a player
func (p *PostgresProvider) GetGameLog(ctx context.Context, playerID int64, season string) ([]GameLogRecord, error) {
	start := time.Now()
	rows, err := p.repos.GameLog.GetBySeason(ctx, playerID, season)
	p.record(opGetGameLog, start, err)
	if err != nil {
		return nil, NewDataSourceError(p.Name(), ErrCodeNetworkError, "game log query failed", err)
	}

	records := make([]GameLogRecord, 0, len(rows))
	for _, row := range rows {
		record, err := fromGameLogRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Ping verifies database connectivity
func (p *PostgresProvider) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func (p *PostgresProvider) record(operation string, start time.Time, err error) {
	status := 200
	if err != nil {
		status = 0
	}
	metrics.RecordUpstreamRequest(p.Name(), operation, status, time.Since(start).Seconds())
}

func toPlayerRecords(players []models.PlayerIdentity) []PlayerRecord {
	records := make([]PlayerRecord, len(players))
	for i, pl := range players {
		records[i] = PlayerRecord{ID: pl.ID, FullName: pl.FullName, IsActive: pl.IsActive}
	}
	return records
}

func fromGameLogRow(row repository.GameLogRow) (GameLogRecord, error) {
	record := GameLogRecord{
		GameID:   row.GameID,
		GameDate: row.GameDate,
		Matchup:  row.Matchup,
		Minutes:  row.Minutes,
	}

	columns := []struct {
		field  string
		value  *string
		target *decimal.NullDecimal
	}{
		{"points", row.Points, &record.Points},
		{"rebounds", row.Rebounds, &record.Rebounds},
		{"assists", row.Assists, &record.Assists},
	}
	for _, col := range columns {
		if col.value == nil {
			continue
		}
		d, err := decimal.NewFromString(*col.value)
		if err != nil {
			return GameLogRecord{}, &models.MalformedRecordError{
				GameDate: row.GameDate,
				Field:    col.field,
				Reason:   fmt.Sprintf("not a number: %q", *col.value),
			}
		}
		*col.target = decimal.NewNullDecimal(d)
	}

	return record, nil
}

// ToGameLogRow converts a provider record into a mirror row. Null counts stay NULL.
func ToGameLogRow(rec GameLogRecord) repository.GameLogRow {
	return repository.GameLogRow{
		GameID:   rec.GameID,
		GameDate: rec.GameDate,
		Matchup:  rec.Matchup,
		Minutes:  rec.Minutes,
		Points:   nullText(rec.Points),
		Rebounds: nullText(rec.Rebounds),
		Assists:  nullText(rec.Assists),
	}
}

func nullText(v decimal.NullDecimal) *string {
	if !v.Valid {
		return nil
	}
	s := v.Decimal.String()
	return &s
}

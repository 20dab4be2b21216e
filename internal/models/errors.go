package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Pipeline error taxonomy
var (
	ErrInvalidQuery        = errors.New("invalid query")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrUpstreamUnavailable = errors.New("upstream data source unavailable")
	ErrNoGameData          = errors.New("no game data for season")
	ErrMalformedRecord     = errors.New("malformed game log record")
)

// ValidationError lists the query fields that failed validation
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid query: " + strings.Join(parts, "; ")
}

// Is matches ErrInvalidQuery
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// MalformedRecordError identifies a game log record with an unusable numeric field
type MalformedRecordError struct {
	GameDate string
	Field    string
	Reason   string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed game log record (game %q, field %s): %s", e.GameDate, e.Field, e.Reason)
}

// Is matches ErrMalformedRecord
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// PlayerNotFoundError carries the name that failed to resolve
type PlayerNotFoundError struct {
	Query string
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("player not found: %q", e.Query)
}

// Is matches ErrPlayerNotFound
func (e *PlayerNotFoundError) Is(target error) bool {
	return target == ErrPlayerNotFound
}

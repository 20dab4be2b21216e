package models

import (
	"fmt"
	"strings"
)

// StatCategory selects which box-score field(s) feed the features
type StatCategory string

const (
	StatPoints   StatCategory = "Points"
	StatRebounds StatCategory = "Rebounds"
	StatAssists  StatCategory = "Assists"
	StatPRA      StatCategory = "PRA"
)

// Direction is the side of the pick relative to the line
type Direction string

const (
	DirectionMore Direction = "MORE"
	DirectionLess Direction = "LESS"
)

// Role is the user-supplied player role
type Role string

const (
	RoleStar    Role = "Estrella"
	RoleStarter Role = "Titular normal"
	RoleBench   Role = "Jugador de rol"
)

// BlowoutRisk is the user-supplied risk that the game is decided early
type BlowoutRisk string

const (
	BlowoutLow    BlowoutRisk = "Bajo"
	BlowoutMedium BlowoutRisk = "Medio"
	BlowoutHigh   BlowoutRisk = "Alto"
)

// AllStatCategories lists the supported categories in display order
var AllStatCategories = []StatCategory{StatPoints, StatAssists, StatRebounds, StatPRA}

// StatCategoryList renders AllStatCategories for help and error text
func StatCategoryList() string {
	names := make([]string, len(AllStatCategories))
	for i, c := range AllStatCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Valid reports whether s is a known category
func (s StatCategory) Valid() bool {
	switch s {
	case StatPoints, StatRebounds, StatAssists, StatPRA:
		return true
	}
	return false
}

// Valid reports whether d is a known direction
func (d Direction) Valid() bool {
	return d == DirectionMore || d == DirectionLess
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleStar, RoleStarter, RoleBench:
		return true
	}
	return false
}

// Valid reports whether b is a known blowout risk
func (b BlowoutRisk) Valid() bool {
	switch b {
	case BlowoutLow, BlowoutMedium, BlowoutHigh:
		return true
	}
	return false
}

// ParseStatCategory parses a category name case-insensitively
func ParseStatCategory(s string) (StatCategory, error) {
	switch normalizeToken(s) {
	case "points", "pts":
		return StatPoints, nil
	case "rebounds", "reb":
		return StatRebounds, nil
	case "assists", "ast":
		return StatAssists, nil
	case "pra", "pts+reb+ast":
		return StatPRA, nil
	}
	return "", fmt.Errorf("%w: unknown stat category %q (want %s)", ErrInvalidQuery, s, StatCategoryList())
}

// ParseDirection parses MORE/LESS (OVER/UNDER are accepted as aliases)
func ParseDirection(s string) (Direction, error) {
	switch normalizeToken(s) {
	case "more", "over":
		return DirectionMore, nil
	case "less", "under":
		return DirectionLess, nil
	}
	return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidQuery, s)
}

// ParseRole parses a role label
func ParseRole(s string) (Role, error) {
	switch normalizeToken(s) {
	case "estrella", "star":
		return RoleStar, nil
	case "titular normal", "titular", "starter":
		return RoleStarter, nil
	case "jugador de rol", "rol", "role", "bench":
		return RoleBench, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidQuery, s)
}

// ParseBlowoutRisk parses a blowout risk label
func ParseBlowoutRisk(s string) (BlowoutRisk, error) {
	switch normalizeToken(s) {
	case "bajo", "low":
		return BlowoutLow, nil
	case "medio", "medium":
		return BlowoutMedium, nil
	case "alto", "high":
		return BlowoutHigh, nil
	}
	return "", fmt.Errorf("%w: unknown blowout risk %q", ErrInvalidQuery, s)
}

func normalizeToken(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

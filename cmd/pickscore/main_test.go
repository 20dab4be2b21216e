package main

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickscore/internal/models"
)

func TestScoreFlagsQuery(t *testing.T) {
	now := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

	t.Run("aliases and defaults", func(t *testing.T) {
		f := scoreFlags{player: " Jokic ", stat: "pts", line: 25.5, direction: "over", role: "star", blowout: "high"}
		q, err := f.query(0, "", now)
		require.NoError(t, err)

		assert.Equal(t, models.StatPoints, q.Stat)
		assert.Equal(t, models.DirectionMore, q.Direction)
		assert.Equal(t, models.RoleStar, q.Role)
		assert.Equal(t, models.BlowoutHigh, q.Blowout)
		assert.Equal(t, models.DefaultLookback, q.Lookback)
		assert.Equal(t, "2025-26", q.Season)
	})

	t.Run("configured defaults win over computed ones", func(t *testing.T) {
		f := scoreFlags{player: "Jokic", stat: "PRA", line: 50, direction: "LESS", role: "Jugador de rol", blowout: "Medio"}
		q, err := f.query(7, "2024-25", now)
		require.NoError(t, err)
		assert.Equal(t, 7, q.Lookback)
		assert.Equal(t, "2024-25", q.Season)
	})

	t.Run("unknown enumerations are rejected together", func(t *testing.T) {
		f := scoreFlags{player: "Jokic", stat: "steals", line: 2, direction: "sideways", role: "Estrella", blowout: "Bajo"}
		_, err := f.query(10, "", now)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrInvalidQuery)
		assert.Contains(t, err.Error(), "steals")
		assert.Contains(t, err.Error(), "sideways")
	})
}

func TestExitCodeFor(t *testing.T) {
	assert.Zero(t, exitCodeFor(models.OutcomeScored))
	assert.Zero(t, exitCodeFor(models.OutcomeNoGameData))
	assert.Equal(t, 2, exitCodeFor(models.OutcomeInvalidQuery))
	assert.Equal(t, 3, exitCodeFor(models.OutcomePlayerNotFound))
	assert.Equal(t, 4, exitCodeFor(models.OutcomeUpstreamUnavailable))
	assert.Equal(t, 5, exitCodeFor(models.OutcomeMalformedRecord))
	assert.Equal(t, 1, exitCodeFor(models.OutcomeInternal))
}

func TestRenderScoredEvaluation(t *testing.T) {
	eval := &models.Evaluation{
		Query: models.PickQuery{
			PlayerName: "jokic", Stat: models.StatPoints, Line: 25, Direction: models.DirectionMore,
			Lookback: 10, Role: models.RoleStar, Blowout: models.BlowoutLow, Season: "2025-26",
		},
		Outcome: models.OutcomeScored,
		Player:  &models.PlayerIdentity{ID: 203999, FullName: "Nikola Jokić", IsActive: true},
		Features: &models.FeatureSet{
			AvgN: 26.2, GamesUsed: 10, Hits5: 3, HitsWindow: 5,
			EstimatedMinutes: 30, MinutesDefaulted: true, Edge: 1.2,
		},
		Result: &models.ScoreResult{Score: 87, Probability: 62.95, Label: models.LabelGood},
	}

	var buf bytes.Buffer
	renderEvaluation(&buf, eval, nil)
	out := buf.String()

	assert.Contains(t, out, "Nikola Jokić")
	assert.Contains(t, out, "Points MORE 25.0 (2025-26)")
	assert.Contains(t, out, "26.2 over last 10 games")
	assert.Contains(t, out, "3 of last 5")
	assert.Contains(t, out, "30.0 (default)")
	assert.Contains(t, out, "+1.2")
	assert.Contains(t, out, "87.0")
	assert.Contains(t, out, "62.95%")
	assert.Contains(t, out, "PICK BUENO")
}

func TestRenderFailureOutcomes(t *testing.T) {
	tests := []struct {
		outcome models.Outcome
		err     error
		want    string
	}{
		{models.OutcomePlayerNotFound, models.ErrPlayerNotFound, `No player matches "Nobody"`},
		{models.OutcomeNoGameData, nil, "Nobody has no games in 2025-26"},
		{models.OutcomeUpstreamUnavailable, models.ErrUpstreamUnavailable, "unavailable"},
		{models.OutcomeMalformedRecord, errors.New("bad pts"), "bad pts"},
		{models.OutcomeInternal, errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			eval := &models.Evaluation{
				Query:   models.PickQuery{PlayerName: " Nobody ", Season: "2025-26"},
				Outcome: tt.outcome,
			}
			var buf bytes.Buffer
			renderEvaluation(&buf, eval, tt.err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestRenderScoreKeepsOneDecimal(t *testing.T) {
	eval := &models.Evaluation{
		Query:    models.PickQuery{PlayerName: "Jokic", Stat: models.StatPoints, Line: 25, Direction: models.DirectionMore, Season: "2025-26"},
		Outcome:  models.OutcomeScored,
		Features: &models.FeatureSet{AvgN: 25, GamesUsed: 10, Hits5: 2, HitsWindow: 5, EstimatedMinutes: 33.6},
		Result:   &models.ScoreResult{Score: 69.6, Probability: 56.86, Label: models.LabelFlex},
	}

	var buf bytes.Buffer
	renderEvaluation(&buf, eval, nil)

	assert.Contains(t, buf.String(), "69.6")
	assert.NotContains(t, buf.String(), "70")
	assert.Contains(t, buf.String(), "SOLO FLEX")
}

func TestInfiniteLineIsInvalidQuery(t *testing.T) {
	f := scoreFlags{player: "Jokic", stat: "Points", line: math.Inf(1), direction: "MORE", role: "Estrella", blowout: "Bajo"}
	q, err := f.query(10, "2025-26", time.Now())
	require.NoError(t, err)

	assert.False(t, q.Active())
	assert.ErrorIs(t, q.Validate(), models.ErrInvalidQuery)
}

func TestSigned(t *testing.T) {
	assert.Equal(t, "+1.2", signed(1.2))
	assert.Equal(t, "-0.5", signed(-0.5))
	assert.Equal(t, "0.0", signed(0))
	assert.Equal(t, "-Inf", signed(math.Inf(-1)))
}

func TestRoundNonFinite(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, "NaN", round(math.NaN(), 1))
		assert.Equal(t, "+Inf", round(math.Inf(1), 1))
	})
}

func TestMirrorCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"mirror"})
	require.NoError(t, err)
	assert.Equal(t, mirrorCmd, cmd)

	for _, name := range []string{"season", "registry", "player"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestMirrorRequiresTarget(t *testing.T) {
	mirrorRegistry, mirrorPlayers = false, nil

	err := mirrorCmd.RunE(mirrorCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to mirror")
}

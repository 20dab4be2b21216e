package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickscore/internal/logger"
	"github.com/yourusername/pickscore/internal/metrics"
	"github.com/yourusername/pickscore/internal/models"
)

// PlayerResolver maps a free-text name onto a player identity
type PlayerResolver interface {
	Resolve(ctx context.Context, name string) (models.PlayerIdentity, error)
}

// GameLogFetcher returns a player's most recent games for a season
type GameLogFetcher interface {
	Fetch(ctx context.Context, playerID int64, season string, n int) ([]models.GameLogEntry, error)
}

// FeatureExtractor derives scoring inputs from games sorted most recent first
type FeatureExtractor interface {
	Extract(games []models.GameLogEntry, stat models.StatCategory, line float64, direction models.Direction, lookback int) (*models.FeatureSet, error)
}

// Scorer turns features into a score
type Scorer interface {
	Score(fs models.FeatureSet, role models.Role, blowout models.BlowoutRisk, direction models.Direction) (models.ScoreResult, error)
}

// PickService runs one query through Validate, Resolve, Fetch, Extract and Score
type PickService struct {
	resolver  PlayerResolver
	fetcher   GameLogFetcher
	extractor FeatureExtractor
	scorer    Scorer
	logger    *logger.PickLogger
	now       func() time.Time
}

// NewPickService creates the pipeline from its stages
func NewPickService(resolver PlayerResolver, fetcher GameLogFetcher, extractor FeatureExtractor, scorer Scorer, log *logrus.Logger) *PickService {
	return &PickService{
		resolver:  resolver,
		fetcher:   fetcher,
		extractor: extractor,
		scorer:    scorer,
		logger:    logger.NewPickLogger(log),
		now:       time.Now,
	}
}

// Evaluate scores one query. The returned evaluation is never nil and its Outcome
// says how the run ended. The error is nil when a score was produced and when the
// player has no games in the season; every other outcome also returns its cause.
func (s *PickService) Evaluate(ctx context.Context, query models.PickQuery) (*models.Evaluation, error) {
	start := s.now()
	query = query.Normalized()

	eval := &models.Evaluation{
		QueryID:     uuid.New(),
		Query:       query,
		EvaluatedAt: start,
	}
	log := s.logger.ForQuery(eval.QueryID)
	log.LogQueryReceived(query.PlayerName, string(query.Stat), query.Line, string(query.Direction), query.Lookback, query.Season)

	err := s.run(ctx, query, eval, log)
	eval.Outcome = models.ClassifyError(err)
	elapsed := s.now().Sub(start)
	metrics.RecordQuery(string(query.Stat), string(eval.Outcome), elapsed.Seconds())

	switch eval.Outcome {
	case models.OutcomeScored:
		metrics.RecordPickScore(eval.Result.Score, string(eval.Result.Label))
		log.LogPickScored(eval.Player.FullName, string(query.Stat), query.Line, eval.Result.Score, eval.Result.Probability, string(eval.Result.Label), float64(elapsed.Milliseconds()))
		return eval, nil
	case models.OutcomeNoGameData:
		log.WithField("player_id", eval.Player.ID).Info("No games in season")
		return eval, nil
	default:
		log.LogPipelineFailure(string(eval.Outcome), eval.Outcome.Retryable(), err)
		return eval, err
	}
}

func (s *PickService) run(ctx context.Context, query models.PickQuery, eval *models.Evaluation, log *logger.PickLogger) error {
	if err := query.Validate(); err != nil {
		log.LogQueryRejected(err.Error())
		return err
	}

	player, err := s.resolver.Resolve(ctx, query.PlayerName)
	if err != nil {
		if models.ClassifyError(err) == models.OutcomePlayerNotFound {
			log.LogPlayerNotFound(query.PlayerName)
		}
		return err
	}
	eval.Player = &player
	log.LogPlayerResolved(query.PlayerName, player.ID, player.FullName, player.IsActive)

	window := query.FetchWindow()
	games, err := s.fetcher.Fetch(ctx, player.ID, query.Season, window)
	if err != nil {
		return err
	}
	log.LogGameLogFetched(player.ID, query.Season, window, len(games))
	if len(games) == 0 {
		return models.ErrNoGameData
	}
	eval.Games = games

	features, err := s.extractor.Extract(games, query.Stat, query.Line, query.Direction, query.Lookback)
	if err != nil {
		return err
	}
	eval.Features = features
	log.LogFeaturesExtracted(features.AvgN, features.Hits5, features.EstimatedMinutes, features.MinutesDefaulted, features.Edge)

	result, err := s.scorer.Score(*features, query.Role, query.Blowout, query.Direction)
	if err != nil {
		return err
	}
	eval.Result = &result
	return nil
}

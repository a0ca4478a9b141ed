package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/match"
	"github.com/crickpick/prediction-league/internal/domain/player"
	"github.com/crickpick/prediction-league/internal/domain/prediction"
)

// PredictionService gates and records pre-match picks.
type PredictionService struct {
	matchRepo      match.Repository
	playerRepo     player.Repository
	predictionRepo prediction.Repository
	now            func() time.Time
}

func NewPredictionService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	predictionRepo prediction.Repository,
) *PredictionService {
	return &PredictionService{
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		predictionRepo: predictionRepo,
		now:            time.Now,
	}
}

type SubmitPredictionInput struct {
	MatchID        string
	Username       string
	Winner         string
	TopScorer      string
	TopWicketTaker string
}

// Submit checks every gate in order: match known, player joined, match
// still open, before the cutoff, no prior pick, winner plays in the match.
func (s *PredictionService) Submit(ctx context.Context, input SubmitPredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	matchID := strings.TrimSpace(input.MatchID)
	username := strings.TrimSpace(input.Username)
	winner := strings.TrimSpace(input.Winner)
	topScorer := strings.TrimSpace(input.TopScorer)
	topWicketTaker := strings.TrimSpace(input.TopWicketTaker)

	if matchID == "" || username == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: match id and username are required", ErrInvalidInput)
	}
	if winner == "" || topScorer == "" || topWicketTaker == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: winner, top scorer and top wicket-taker are required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get match %s: %w", matchID, err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	if _, exists, err = s.playerRepo.GetByUsername(ctx, username); err != nil {
		return prediction.Prediction{}, fmt.Errorf("get player %s: %w", username, err)
	} else if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: player %s has not joined the game", ErrNotFound, username)
	}

	if m.IsCompleted() {
		return prediction.Prediction{}, fmt.Errorf("predict match %s: %w", matchID, prediction.ErrMatchClosed)
	}
	if now := s.now(); !now.Before(m.CutoffAt) {
		return prediction.Prediction{}, fmt.Errorf("predict match %s: %w", matchID, prediction.ErrPastCutoff)
	}
	if !m.Involves(winner) {
		return prediction.Prediction{}, fmt.Errorf("%w: %q does not play in match %s", ErrInvalidInput, winner, matchID)
	}

	p := prediction.Prediction{
		MatchID:        matchID,
		Username:       username,
		Winner:         winner,
		TopScorer:      topScorer,
		TopWicketTaker: topWicketTaker,
		SubmittedAt:    s.now(),
	}
	if err := s.predictionRepo.Put(ctx, p); err != nil {
		return prediction.Prediction{}, fmt.Errorf("store prediction for match %s: %w", matchID, err)
	}
	return p, nil
}

// Get returns the stored pick for one (match, user) pair. The repository
// treats absence as a normal state, not a failure; it is mapped to
// ErrNotFound here so callers render it as a plain 404.
func (s *PredictionService) Get(ctx context.Context, matchID, username string) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Get")
	defer span.End()

	p, exists, err := s.predictionRepo.Get(ctx, matchID, username)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get prediction match=%s user=%s: %w", matchID, username, err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: no prediction for match %s by %s", ErrNotFound, matchID, username)
	}
	return p, nil
}

func (s *PredictionService) ListByMatch(ctx context.Context, matchID string) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListByMatch")
	defer span.End()

	out, err := s.predictionRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list predictions for match %s: %w", matchID, err)
	}
	return out, nil
}

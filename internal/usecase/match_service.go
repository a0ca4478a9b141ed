package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/match"
)

// MatchService manages the season schedule.
type MatchService struct {
	matchRepo match.Repository
	now       func() time.Time
}

func NewMatchService(matchRepo match.Repository) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		now:       time.Now,
	}
}

type CreateMatchInput struct {
	ID          string
	Team1       string
	Team2       string
	ScheduledAt time.Time
	Venue       string
	IsPlayoff   bool
}

type UpdateMatchInput struct {
	Team1       string
	Team2       string
	ScheduledAt time.Time
	Venue       string
	IsPlayoff   bool
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	m, err := match.New(input.ID, input.Team1, input.Team2, input.ScheduledAt, input.Venue, input.IsPlayoff)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match %s: %w", m.ID, err)
	}
	return m, nil
}

// Update revalidates the schedule fields and recomputes the cutoff. An
// existing result is carried over untouched; results only ever enter
// through scoring.
func (s *MatchService) Update(ctx context.Context, matchID string, input UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

	existing, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match %s: %w", matchID, err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	next, err := match.New(matchID, input.Team1, input.Team2, input.ScheduledAt, input.Venue, input.IsPlayoff)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	next.Status = existing.Status
	next.Result = existing.Result
	if next.Result != nil && !next.Involves(next.Result.Winner) {
		return match.Match{}, fmt.Errorf("%w: recorded winner %q no longer plays in this match", ErrInvalidInput, next.Result.Winner)
	}

	if err := s.matchRepo.Update(ctx, next); err != nil {
		return match.Match{}, fmt.Errorf("update match %s: %w", matchID, err)
	}
	return next, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match %s: %w", matchID, err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	return m, nil
}

func (s *MatchService) List(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// ListUpcoming returns matches whose prediction window is still open.
func (s *MatchService) ListUpcoming(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListUpcoming")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	now := s.now()
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.IsCompleted() || !now.Before(m.CutoffAt) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

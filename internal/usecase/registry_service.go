package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/catalog"
	"github.com/crickpick/prediction-league/internal/domain/player"
	"github.com/crickpick/prediction-league/internal/platform/cache"
)

const teamStatsCacheKey = "views:teamstats"

// RegistryService manages game membership: joining, the one-time team
// switch, and supporter views.
type RegistryService struct {
	playerRepo player.Repository
	viewCache  *cache.Store
	now        func() time.Time
}

func NewRegistryService(playerRepo player.Repository, viewCache *cache.Store) *RegistryService {
	return &RegistryService{
		playerRepo: playerRepo,
		viewCache:  viewCache,
		now:        time.Now,
	}
}

// TeamStats aggregates the supporters of one franchise.
type TeamStats struct {
	Team            string `json:"team"`
	SupportersCount int    `json:"supportersCount"`
	TotalPoints     int    `json:"totalPoints"`
}

func (s *RegistryService) Join(ctx context.Context, username, team string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistryService.Join")
	defer span.End()

	username = strings.TrimSpace(username)
	team = strings.TrimSpace(team)
	if username == "" {
		return player.Player{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if !catalog.IsTeam(team) {
		return player.Player{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, team)
	}

	p := player.NewPlayer(username, team, s.now())
	if err := s.playerRepo.Create(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("join player %s: %w", username, err)
	}
	s.invalidateViews(ctx)
	return p, nil
}

func (s *RegistryService) SwitchTeam(ctx context.Context, username, newTeam string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistryService.SwitchTeam")
	defer span.End()

	newTeam = strings.TrimSpace(newTeam)
	if !catalog.IsTeam(newTeam) {
		return player.Player{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, newTeam)
	}

	p, exists, err := s.playerRepo.GetByUsername(ctx, username)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player %s: %w", username, err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, username)
	}

	if err := p.Switch(newTeam); err != nil {
		return player.Player{}, fmt.Errorf("switch team for %s: %w", username, err)
	}
	if err := s.playerRepo.Update(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("update player %s: %w", username, err)
	}
	s.invalidateViews(ctx)
	return p, nil
}

// invalidateViews drops cached leaderboard and stats views after any
// membership change, so reads never serve a player set older than the write.
func (s *RegistryService) invalidateViews(ctx context.Context) {
	if s.viewCache == nil {
		return
	}
	s.viewCache.DeletePrefix(ctx, "views:")
}

func (s *RegistryService) Get(ctx context.Context, username string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistryService.Get")
	defer span.End()

	p, exists, err := s.playerRepo.GetByUsername(ctx, username)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player %s: %w", username, err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, username)
	}
	return p, nil
}

// SupportersOf returns usernames currently supporting the team, sorted.
func (s *RegistryService) SupportersOf(ctx context.Context, team string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistryService.SupportersOf")
	defer span.End()

	team = strings.TrimSpace(team)
	if !catalog.IsTeam(team) {
		return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, team)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]string, 0, len(players))
	for _, p := range players {
		if p.CurrentTeam == team {
			out = append(out, p.Username)
		}
	}
	sort.Strings(out)
	return out, nil
}

// StatsByTeam aggregates supporter count and points for every catalog
// franchise, including ones nobody supports.
func (s *RegistryService) StatsByTeam(ctx context.Context) ([]TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistryService.StatsByTeam")
	defer span.End()

	if s.viewCache == nil {
		return s.buildStatsByTeam(ctx)
	}

	value, err := s.viewCache.GetOrLoad(ctx, teamStatsCacheKey, func(ctx context.Context) (any, error) {
		return s.buildStatsByTeam(ctx)
	})
	if err != nil {
		return nil, err
	}
	stats, ok := value.([]TeamStats)
	if !ok {
		return s.buildStatsByTeam(ctx)
	}
	return stats, nil
}

func (s *RegistryService) buildStatsByTeam(ctx context.Context) ([]TeamStats, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	byTeam := make(map[string]TeamStats)
	for _, team := range catalog.Teams() {
		byTeam[team] = TeamStats{Team: team}
	}
	for _, p := range players {
		stats, ok := byTeam[p.CurrentTeam]
		if !ok {
			continue
		}
		stats.SupportersCount++
		stats.TotalPoints += p.Points
		byTeam[p.CurrentTeam] = stats
	}

	out := make([]TeamStats, 0, len(byTeam))
	for _, team := range catalog.Teams() {
		out = append(out, byTeam[team])
	}
	return out, nil
}

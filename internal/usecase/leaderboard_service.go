package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/crickpick/prediction-league/internal/domain/player"
	"github.com/crickpick/prediction-league/internal/platform/cache"
)

const leaderboardCacheKey = "views:leaderboard"

// LeaderboardService ranks participants by total points.
type LeaderboardService struct {
	playerRepo player.Repository
	viewCache  *cache.Store
}

func NewLeaderboardService(playerRepo player.Repository, viewCache *cache.Store) *LeaderboardService {
	return &LeaderboardService{
		playerRepo: playerRepo,
		viewCache:  viewCache,
	}
}

// LeaderboardEntry is one ranked row. Tied players share a rank.
type LeaderboardEntry struct {
	Rank               int    `json:"rank"`
	Username           string `json:"username"`
	Team               string `json:"team"`
	Points             int    `json:"points"`
	PerfectPredictions int    `json:"perfectPredictions"`
	LoyaltyBonuses     int    `json:"loyaltyBonuses"`
}

// Leaderboard returns every participant ordered by points desc, with ties
// broken by join time then username so the order is reproducible.
func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	if s.viewCache == nil {
		return s.buildLeaderboard(ctx)
	}

	value, err := s.viewCache.GetOrLoad(ctx, leaderboardCacheKey, func(ctx context.Context) (any, error) {
		return s.buildLeaderboard(ctx)
	})
	if err != nil {
		return nil, err
	}
	entries, ok := value.([]LeaderboardEntry)
	if !ok {
		return s.buildLeaderboard(ctx)
	}
	return entries, nil
}

func (s *LeaderboardService) buildLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Points != players[j].Points {
			return players[i].Points > players[j].Points
		}
		if !players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].JoinedAt.Before(players[j].JoinedAt)
		}
		return players[i].Username < players[j].Username
	})

	entries := make([]LeaderboardEntry, 0, len(players))
	lastPoints := 0
	rank := 0
	for idx, p := range players {
		if idx == 0 || p.Points != lastPoints {
			rank = idx + 1
			lastPoints = p.Points
		}
		entries = append(entries, LeaderboardEntry{
			Rank:               rank,
			Username:           p.Username,
			Team:               p.CurrentTeam,
			Points:             p.Points,
			PerfectPredictions: p.PerfectPredictions,
			LoyaltyBonuses:     p.LoyaltyBonuses,
		})
	}
	return entries, nil
}

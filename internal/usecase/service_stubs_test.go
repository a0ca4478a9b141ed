package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/crickpick/prediction-league/internal/domain/match"
	"github.com/crickpick/prediction-league/internal/domain/player"
	"github.com/crickpick/prediction-league/internal/domain/prediction"
	"github.com/crickpick/prediction-league/internal/domain/roster"
	"github.com/crickpick/prediction-league/internal/domain/scoring"
)

type stubMatchRepo struct {
	matches map[string]match.Match
}

var _ match.Repository = (*stubMatchRepo)(nil)

func newStubMatchRepo() *stubMatchRepo {
	return &stubMatchRepo{matches: make(map[string]match.Match)}
}

func (r *stubMatchRepo) Create(_ context.Context, m match.Match) error {
	if _, exists := r.matches[m.ID]; exists {
		return match.ErrDuplicateID
	}
	r.matches[m.ID] = m
	return nil
}

func (r *stubMatchRepo) Update(_ context.Context, m match.Match) error {
	if _, exists := r.matches[m.ID]; !exists {
		return fmt.Errorf("match %s does not exist", m.ID)
	}
	r.matches[m.ID] = m
	return nil
}

func (r *stubMatchRepo) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	m, ok := r.matches[id]
	return m, ok, nil
}

func (r *stubMatchRepo) List(_ context.Context) ([]match.Match, error) {
	out := make([]match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubPlayerRepo struct {
	players map[string]player.Player
}

var _ player.Repository = (*stubPlayerRepo)(nil)

func newStubPlayerRepo() *stubPlayerRepo {
	return &stubPlayerRepo{players: make(map[string]player.Player)}
}

func (r *stubPlayerRepo) Create(_ context.Context, p player.Player) error {
	if _, exists := r.players[p.Username]; exists {
		return player.ErrAlreadyJoined
	}
	r.players[p.Username] = p
	return nil
}

func (r *stubPlayerRepo) Update(_ context.Context, p player.Player) error {
	if _, exists := r.players[p.Username]; !exists {
		return fmt.Errorf("player %s does not exist", p.Username)
	}
	r.players[p.Username] = p
	return nil
}

func (r *stubPlayerRepo) GetByUsername(_ context.Context, username string) (player.Player, bool, error) {
	p, ok := r.players[username]
	return p, ok, nil
}

func (r *stubPlayerRepo) List(_ context.Context) ([]player.Player, error) {
	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type stubPredictionRepo struct {
	byMatch map[string]map[string]prediction.Prediction
}

var _ prediction.Repository = (*stubPredictionRepo)(nil)

func newStubPredictionRepo() *stubPredictionRepo {
	return &stubPredictionRepo{byMatch: make(map[string]map[string]prediction.Prediction)}
}

func (r *stubPredictionRepo) Put(_ context.Context, p prediction.Prediction) error {
	byUser := r.byMatch[p.MatchID]
	if byUser == nil {
		byUser = make(map[string]prediction.Prediction)
		r.byMatch[p.MatchID] = byUser
	}
	if _, exists := byUser[p.Username]; exists {
		return prediction.ErrDuplicate
	}
	byUser[p.Username] = p
	return nil
}

func (r *stubPredictionRepo) Get(_ context.Context, matchID, username string) (prediction.Prediction, bool, error) {
	p, ok := r.byMatch[matchID][username]
	return p, ok, nil
}

func (r *stubPredictionRepo) ListByMatch(_ context.Context, matchID string) ([]prediction.Prediction, error) {
	byUser := r.byMatch[matchID]
	out := make([]prediction.Prediction, 0, len(byUser))
	for _, p := range byUser {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type stubRosterRepo struct {
	rosters map[string]roster.Roster
}

var _ roster.Repository = (*stubRosterRepo)(nil)

func newStubRosterRepo() *stubRosterRepo {
	return &stubRosterRepo{rosters: make(map[string]roster.Roster)}
}

func (r *stubRosterRepo) GetByTeam(_ context.Context, team string) (roster.Roster, bool, error) {
	rs, ok := r.rosters[team]
	return rs, ok, nil
}

func (r *stubRosterRepo) List(_ context.Context) ([]roster.Roster, error) {
	out := make([]roster.Roster, 0, len(r.rosters))
	for _, rs := range r.rosters {
		out = append(out, rs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Team < out[j].Team })
	return out, nil
}

// stubScoringRepo mimics the snapshot store's atomic commit semantics on
// top of the match and player stubs.
type stubScoringRepo struct {
	matchRepo  *stubMatchRepo
	playerRepo *stubPlayerRepo
}

var _ scoring.Repository = (*stubScoringRepo)(nil)

func (r *stubScoringRepo) CommitMatchResult(_ context.Context, m match.Match, changed []player.Player) error {
	stored, exists := r.matchRepo.matches[m.ID]
	if !exists {
		return fmt.Errorf("match %s does not exist", m.ID)
	}
	if stored.IsCompleted() {
		return match.ErrAlreadyScored
	}
	r.matchRepo.matches[m.ID] = m
	for _, p := range changed {
		r.playerRepo.players[p.Username] = p
	}
	return nil
}

func (r *stubScoringRepo) ReplacePlayers(_ context.Context, players []player.Player) error {
	next := make(map[string]player.Player, len(players))
	for _, p := range players {
		next[p.Username] = p
	}
	r.playerRepo.players = next
	return nil
}

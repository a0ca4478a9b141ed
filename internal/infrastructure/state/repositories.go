package state

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"

	"github.com/crickpick/prediction-league/internal/domain/match"
	"github.com/crickpick/prediction-league/internal/domain/player"
	"github.com/crickpick/prediction-league/internal/domain/prediction"
	"github.com/crickpick/prediction-league/internal/domain/roster"
)

// Typed repository views over the shared snapshot. Each satisfies its
// domain interface while the Store keeps a single lock and persist path.

type MatchRepository struct{ s *Store }

type PlayerRepository struct{ s *Store }

type PredictionRepository struct{ s *Store }

type RosterRepository struct{ s *Store }

var (
	_ match.Repository      = (*MatchRepository)(nil)
	_ player.Repository     = (*PlayerRepository)(nil)
	_ prediction.Repository = (*PredictionRepository)(nil)
	_ roster.Repository     = (*RosterRepository)(nil)
)

func (s *Store) Matches() *MatchRepository { return &MatchRepository{s: s} }

func (s *Store) Players() *PlayerRepository { return &PlayerRepository{s: s} }

func (s *Store) Predictions() *PredictionRepository { return &PredictionRepository{s: s} }

func (s *Store) Rosters() *RosterRepository { return &RosterRepository{s: s} }

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	return r.s.mutate(func(snap *snapshot) error {
		if _, exists := snap.matches[m.ID]; exists {
			return match.ErrDuplicateID
		}
		snap.matches[m.ID] = m
		return nil
	})
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	return r.s.mutate(func(snap *snapshot) error {
		if _, exists := snap.matches[m.ID]; !exists {
			return crerr.Newf("match %s does not exist", m.ID)
		}
		snap.matches[m.ID] = m
		return nil
	})
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.data.matches[id]
	return m, ok, nil
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]match.Match, 0, len(r.s.data.matches))
	for _, m := range r.s.data.matches {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	return r.s.mutate(func(snap *snapshot) error {
		if _, exists := snap.players[p.Username]; exists {
			return player.ErrAlreadyJoined
		}
		snap.players[p.Username] = p
		return nil
	})
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	return r.s.mutate(func(snap *snapshot) error {
		if _, exists := snap.players[p.Username]; !exists {
			return crerr.Newf("player %s does not exist", p.Username)
		}
		snap.players[p.Username] = p
		return nil
	})
}

func (r *PlayerRepository) GetByUsername(_ context.Context, username string) (player.Player, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.data.players[username]
	return p, ok, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]player.Player, 0, len(r.s.data.players))
	for _, p := range r.s.data.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *PredictionRepository) Put(_ context.Context, p prediction.Prediction) error {
	return r.s.mutate(func(snap *snapshot) error {
		byUser := snap.predictions[p.MatchID]
		if byUser == nil {
			byUser = make(map[string]prediction.Prediction)
			snap.predictions[p.MatchID] = byUser
		}
		if _, exists := byUser[p.Username]; exists {
			return prediction.ErrDuplicate
		}
		byUser[p.Username] = p
		return nil
	})
}

func (r *PredictionRepository) Get(_ context.Context, matchID, username string) (prediction.Prediction, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.data.predictions[matchID][username]
	return p, ok, nil
}

func (r *PredictionRepository) ListByMatch(_ context.Context, matchID string) ([]prediction.Prediction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byUser := r.s.data.predictions[matchID]
	out := make([]prediction.Prediction, 0, len(byUser))
	for _, p := range byUser {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *RosterRepository) GetByTeam(_ context.Context, team string) (roster.Roster, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rs, ok := r.s.data.rosters[team]
	return rs, ok, nil
}

func (r *RosterRepository) List(_ context.Context) ([]roster.Roster, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]roster.Roster, 0, len(r.s.data.rosters))
	for _, rs := range r.s.data.rosters {
		out = append(out, rs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Team < out[j].Team })
	return out, nil
}

// Package state implements the file-backed snapshot store. The whole game
// lives in one in-memory snapshot guarded by a single mutex; every mutation
// builds the next snapshot, persists it to disk, and only then swaps the
// pointer. A failed persist leaves memory and disk untouched.
package state

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"

	"github.com/crickpick/prediction-league/internal/domain/match"
	"github.com/crickpick/prediction-league/internal/domain/player"
	"github.com/crickpick/prediction-league/internal/domain/prediction"
	"github.com/crickpick/prediction-league/internal/domain/roster"
	"github.com/crickpick/prediction-league/internal/platform/logging"
)

const (
	matchesFile = "matches.json"
	gameFile    = "game.json"
	rostersFile = "rosters.json"
)

type snapshot struct {
	matches     map[string]match.Match
	players     map[string]player.Player
	predictions map[string]map[string]prediction.Prediction
	rosters     map[string]roster.Roster
}

// gamePayload is the on-disk shape of game.json.
type gamePayload struct {
	Players     map[string]player.Player                    `json:"players"`
	Predictions map[string]map[string]prediction.Prediction `json:"predictions"`
}

// Store holds the snapshot and the data directory it persists to.
type Store struct {
	mu     sync.RWMutex
	dir    string
	logger *logging.Logger
	data   *snapshot
}

// Open loads the snapshot files from dir, creating the directory if needed.
// Missing files mean empty state.
func Open(dir string, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "create data dir %s", dir)
	}

	snap := &snapshot{
		matches:     make(map[string]match.Match),
		players:     make(map[string]player.Player),
		predictions: make(map[string]map[string]prediction.Prediction),
		rosters:     make(map[string]roster.Roster),
	}

	if _, err := readJSONFile(filepath.Join(dir, matchesFile), &snap.matches); err != nil {
		return nil, err
	}
	var game gamePayload
	loaded, err := readJSONFile(filepath.Join(dir, gameFile), &game)
	if err != nil {
		return nil, err
	}
	if loaded {
		if game.Players != nil {
			snap.players = game.Players
		}
		if game.Predictions != nil {
			snap.predictions = game.Predictions
		}
	}
	if _, err := readJSONFile(filepath.Join(dir, rostersFile), &snap.rosters); err != nil {
		return nil, err
	}

	logger.Info("snapshot loaded",
		"dir", dir,
		"matches", len(snap.matches),
		"players", len(snap.players),
		"rosters", len(snap.rosters),
	)

	return &Store{dir: dir, logger: logger, data: snap}, nil
}

func readJSONFile(path string, v any) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, crerr.Wrapf(err, "read %s", path)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := sonic.Unmarshal(raw, v); err != nil {
		return false, crerr.Wrapf(err, "decode %s", path)
	}
	return true, nil
}

// mutate runs fn against a deep copy of the current snapshot, persists the
// copy, and swaps it in. Any error aborts with no visible change.
func (s *Store) mutate(fn func(*snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// persist rewrites all snapshot files in full, each via temp-file rename.
// The three writes run concurrently.
func (s *Store) persist(snap *snapshot) error {
	p := pool.New().WithErrors()
	p.Go(func() error {
		return s.writeJSONFile(matchesFile, snap.matches)
	})
	p.Go(func() error {
		return s.writeJSONFile(gameFile, gamePayload{Players: snap.players, Predictions: snap.predictions})
	})
	p.Go(func() error {
		return s.writeJSONFile(rostersFile, snap.rosters)
	})
	return p.Wait()
}

func (s *Store) writeJSONFile(name string, v any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	raw, err := sonic.Marshal(v)
	if err != nil {
		return crerr.Wrapf(err, "encode %s", name)
	}
	_, _ = buf.Write(raw)

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return crerr.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return crerr.Wrapf(err, "replace %s", path)
	}
	return nil
}

func (s *snapshot) clone() *snapshot {
	next := &snapshot{
		matches:     make(map[string]match.Match, len(s.matches)),
		players:     make(map[string]player.Player, len(s.players)),
		predictions: make(map[string]map[string]prediction.Prediction, len(s.predictions)),
		rosters:     make(map[string]roster.Roster, len(s.rosters)),
	}
	for id, m := range s.matches {
		next.matches[id] = m
	}
	for name, p := range s.players {
		next.players[name] = p
	}
	for matchID, byUser := range s.predictions {
		inner := make(map[string]prediction.Prediction, len(byUser))
		for name, pr := range byUser {
			inner[name] = pr
		}
		next.predictions[matchID] = inner
	}
	for team, r := range s.rosters {
		next.rosters[team] = r
	}
	return next
}

// CommitMatchResult stores the completed match together with every changed
// participant in one snapshot swap. Either all of it lands or none does.
func (s *Store) CommitMatchResult(_ context.Context, m match.Match, changed []player.Player) error {
	return s.mutate(func(snap *snapshot) error {
		stored, exists := snap.matches[m.ID]
		if !exists {
			return crerr.Newf("match %s does not exist", m.ID)
		}
		if stored.IsCompleted() {
			return match.ErrAlreadyScored
		}
		snap.matches[m.ID] = m
		for _, p := range changed {
			snap.players[p.Username] = p
		}
		return nil
	})
}

// ReplacePlayers swaps in a fully rebuilt participant set. Used by recounts.
func (s *Store) ReplacePlayers(_ context.Context, players []player.Player) error {
	return s.mutate(func(snap *snapshot) error {
		next := make(map[string]player.Player, len(players))
		for _, p := range players {
			next[p.Username] = p
		}
		snap.players = next
		return nil
	})
}

// ReplaceRosters swaps in a full squad catalog, e.g. after an import.
func (s *Store) ReplaceRosters(_ context.Context, rosters []roster.Roster) error {
	return s.mutate(func(snap *snapshot) error {
		next := make(map[string]roster.Roster, len(rosters))
		for _, r := range rosters {
			next[r.Team] = r
		}
		snap.rosters = next
		return nil
	})
}

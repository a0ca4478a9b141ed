package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/match"
	"github.com/crickpick/prediction-league/internal/domain/player"
	"github.com/crickpick/prediction-league/internal/domain/prediction"
	"github.com/crickpick/prediction-league/internal/domain/roster"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func testMatch(id string) match.Match {
	m, _ := match.New(id, "Mumbai Indians", "Chennai Super Kings",
		time.Date(2026, 4, 12, 19, 30, 0, 0, time.UTC), "Wankhede Stadium", false)
	return m
}

func TestMatchRepository_CreateRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Matches().Create(ctx, testMatch("m-001")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := s.Matches().Create(ctx, testMatch("m-001")); !errors.Is(err, match.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()

	if err := s.Matches().Create(ctx, testMatch("m-001")); err != nil {
		t.Fatalf("create match: %v", err)
	}
	joined := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := s.Players().Create(ctx, player.NewPlayer("riya", "Mumbai Indians", joined)); err != nil {
		t.Fatalf("create player: %v", err)
	}
	if err := s.Predictions().Put(ctx, prediction.Prediction{
		MatchID:        "m-001",
		Username:       "riya",
		Winner:         "Mumbai Indians",
		TopScorer:      "Rohit Sharma",
		TopWicketTaker: "Jasprit Bumrah",
		SubmittedAt:    joined,
	}); err != nil {
		t.Fatalf("put prediction: %v", err)
	}
	if err := s.ReplaceRosters(ctx, []roster.Roster{{
		Team:    "Mumbai Indians",
		Batsmen: []string{"Rohit Sharma"},
		Bowlers: []string{"Jasprit Bumrah"},
	}}); err != nil {
		t.Fatalf("replace rosters: %v", err)
	}

	reopened, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}

	if _, ok, _ := reopened.Matches().GetByID(ctx, "m-001"); !ok {
		t.Fatal("match lost across reopen")
	}
	p, ok, _ := reopened.Players().GetByUsername(ctx, "riya")
	if !ok {
		t.Fatal("player lost across reopen")
	}
	if !p.JoinedAt.Equal(joined) {
		t.Fatalf("joinedAt = %v, want %v", p.JoinedAt, joined)
	}
	pr, ok, _ := reopened.Predictions().Get(ctx, "m-001", "riya")
	if !ok {
		t.Fatal("prediction lost across reopen")
	}
	if pr.Winner != "Mumbai Indians" {
		t.Fatalf("winner = %q", pr.Winner)
	}
	rs, ok, _ := reopened.Rosters().GetByTeam(ctx, "Mumbai Indians")
	if !ok {
		t.Fatal("roster lost across reopen")
	}
	if !rs.Contains("Jasprit Bumrah") {
		t.Fatal("roster member lost across reopen")
	}
}

func TestPredictionRepository_PutRejectsSecondSubmission(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	p := prediction.Prediction{MatchID: "m-001", Username: "riya", Winner: "Mumbai Indians"}
	if err := s.Predictions().Put(ctx, p); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := s.Predictions().Put(ctx, p); !errors.Is(err, prediction.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCommitMatchResult_AtomicAndOnce(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	m := testMatch("m-001")
	if err := s.Matches().Create(ctx, m); err != nil {
		t.Fatalf("create match: %v", err)
	}
	if err := s.Players().Create(ctx, player.NewPlayer("riya", "Mumbai Indians", time.Now())); err != nil {
		t.Fatalf("create player: %v", err)
	}

	m.Status = match.StatusCompleted
	m.Result = &match.Result{Winner: "Mumbai Indians", TopScorer: "Rohit Sharma", TopWicketTaker: "Jasprit Bumrah"}
	scored := player.NewPlayer("riya", "Mumbai Indians", time.Now())
	scored.Points = 15

	if err := s.CommitMatchResult(ctx, m, []player.Player{scored}); err != nil {
		t.Fatalf("commit result: %v", err)
	}
	p, _, _ := s.Players().GetByUsername(ctx, "riya")
	if p.Points != 15 {
		t.Fatalf("points = %d, want 15", p.Points)
	}

	if err := s.CommitMatchResult(ctx, m, nil); !errors.Is(err, match.ErrAlreadyScored) {
		t.Fatalf("expected ErrAlreadyScored on second commit, got %v", err)
	}
}

func TestMatchRepository_ListOrdersBySchedule(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	later := testMatch("m-b")
	later.ScheduledAt = later.ScheduledAt.Add(24 * time.Hour)
	later.CutoffAt = match.CutoffFor(later.ScheduledAt)
	if err := s.Matches().Create(ctx, later); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Matches().Create(ctx, testMatch("m-a")); err != nil {
		t.Fatalf("create: %v", err)
	}

	matches, err := s.Matches().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matches) != 2 || matches[0].ID != "m-a" || matches[1].ID != "m-b" {
		t.Fatalf("unexpected order: %+v", matches)
	}
}

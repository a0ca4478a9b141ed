package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/match"
	"github.com/crickpick/prediction-league/internal/domain/player"
	"github.com/crickpick/prediction-league/internal/domain/prediction"
)

type predictionFixture struct {
	svc        *PredictionService
	matchRepo  *stubMatchRepo
	playerRepo *stubPlayerRepo
	cutoff     time.Time
}

func newPredictionFixture(t *testing.T) *predictionFixture {
	t.Helper()

	matchRepo := newStubMatchRepo()
	playerRepo := newStubPlayerRepo()
	svc := NewPredictionService(matchRepo, playerRepo, newStubPredictionRepo())

	m, err := match.New("m-001", "Mumbai Indians", "Chennai Super Kings",
		time.Date(2026, 4, 12, 19, 30, 0, 0, time.UTC), "Wankhede Stadium", false)
	if err != nil {
		t.Fatalf("build match: %v", err)
	}
	matchRepo.matches[m.ID] = m
	playerRepo.players["riya"] = player.NewPlayer("riya", "Mumbai Indians", m.ScheduledAt.Add(-72*time.Hour))

	return &predictionFixture{svc: svc, matchRepo: matchRepo, playerRepo: playerRepo, cutoff: m.CutoffAt}
}

func validSubmission() SubmitPredictionInput {
	return SubmitPredictionInput{
		MatchID:        "m-001",
		Username:       "riya",
		Winner:         "Mumbai Indians",
		TopScorer:      "Rohit Sharma",
		TopWicketTaker: "Jasprit Bumrah",
	}
}

func TestPredictionService_SubmitJustBeforeCutoff(t *testing.T) {
	t.Parallel()

	fx := newPredictionFixture(t)
	fx.svc.now = func() time.Time { return fx.cutoff.Add(-time.Second) }

	p, err := fx.svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("submit one second before cutoff: %v", err)
	}
	if p.Winner != "Mumbai Indians" {
		t.Fatalf("stored winner = %q", p.Winner)
	}
}

func TestPredictionService_SubmitAtCutoffRejected(t *testing.T) {
	t.Parallel()

	fx := newPredictionFixture(t)
	fx.svc.now = func() time.Time { return fx.cutoff }

	if _, err := fx.svc.Submit(context.Background(), validSubmission()); !errors.Is(err, prediction.ErrPastCutoff) {
		t.Fatalf("expected ErrPastCutoff at exact cutoff, got %v", err)
	}

	fx.svc.now = func() time.Time { return fx.cutoff.Add(time.Minute) }
	if _, err := fx.svc.Submit(context.Background(), validSubmission()); !errors.Is(err, prediction.ErrPastCutoff) {
		t.Fatalf("expected ErrPastCutoff after cutoff, got %v", err)
	}
}

func TestPredictionService_SubmitDuplicate(t *testing.T) {
	t.Parallel()

	fx := newPredictionFixture(t)
	fx.svc.now = func() time.Time { return fx.cutoff.Add(-time.Hour) }
	ctx := context.Background()

	if _, err := fx.svc.Submit(ctx, validSubmission()); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second := validSubmission()
	second.Winner = "Chennai Super Kings"
	if _, err := fx.svc.Submit(ctx, second); !errors.Is(err, prediction.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestPredictionService_SubmitGates(t *testing.T) {
	t.Parallel()

	fx := newPredictionFixture(t)
	fx.svc.now = func() time.Time { return fx.cutoff.Add(-time.Hour) }
	ctx := context.Background()

	unknownMatch := validSubmission()
	unknownMatch.MatchID = "ghost"
	if _, err := fx.svc.Submit(ctx, unknownMatch); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}

	notJoined := validSubmission()
	notJoined.Username = "stranger"
	if _, err := fx.svc.Submit(ctx, notJoined); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unjoined player, got %v", err)
	}

	badWinner := validSubmission()
	badWinner.Winner = "Gujarat Titans"
	if _, err := fx.svc.Submit(ctx, badWinner); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-playing winner, got %v", err)
	}

	m := fx.matchRepo.matches["m-001"]
	m.Status = match.StatusCompleted
	m.Result = &match.Result{Winner: "Mumbai Indians", TopScorer: "a", TopWicketTaker: "b"}
	fx.matchRepo.matches["m-001"] = m
	if _, err := fx.svc.Submit(ctx, validSubmission()); !errors.Is(err, prediction.ErrMatchClosed) {
		t.Fatalf("expected ErrMatchClosed, got %v", err)
	}
}

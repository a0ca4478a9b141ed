package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/match"
)

func scoreMatch(t *testing.T, fx *scoringFixture, matchID string, result match.Result) {
	t.Helper()
	if _, err := fx.svc.Score(context.Background(), matchID, result); err != nil {
		t.Fatalf("score %s: %v", matchID, err)
	}
}

func TestRecount_ReproducesIncrementalTotals(t *testing.T) {
	t.Parallel()

	fx := newScoringFixture(t, true)
	fx.addPlayer("riya", "Mumbai Indians")
	fx.addPlayer("dev", "Gujarat Titans")
	fx.addPrediction("riya", "Mumbai Indians", "Rohit Sharma", "Jasprit Bumrah")
	fx.addPrediction("dev", "Chennai Super Kings", "Rohit Sharma", "wrong")

	second, err := match.New("m-002", "Gujarat Titans", "Rajasthan Royals",
		time.Date(2026, 5, 22, 19, 30, 0, 0, time.UTC), "Narendra Modi Stadium", false)
	if err != nil {
		t.Fatalf("build match: %v", err)
	}
	fx.matchRepo.matches[second.ID] = second
	fx.addPredictionFor(second.ID, "dev", "Gujarat Titans", "Shubman Gill", "Rashid Khan")

	scoreMatch(t, fx, "m-001", fullResult)
	scoreMatch(t, fx, second.ID, match.Result{
		Winner:         "Gujarat Titans",
		TopScorer:      "Shubman Gill",
		TopWicketTaker: "Rashid Khan",
	})

	wantRiya := fx.playerRepo.players["riya"]
	wantDev := fx.playerRepo.players["dev"]

	result, err := fx.svc.Recount(context.Background(), RecountInput{MaxWorkers: 2})
	if err != nil {
		t.Fatalf("recount: %v", err)
	}
	if result.MatchCount != 2 {
		t.Fatalf("match count = %d, want 2", result.MatchCount)
	}
	if result.PredictionCount != 3 {
		t.Fatalf("prediction count = %d, want 3", result.PredictionCount)
	}

	gotRiya := fx.playerRepo.players["riya"]
	gotDev := fx.playerRepo.players["dev"]
	if gotRiya != wantRiya {
		t.Fatalf("riya after recount = %+v, want %+v", gotRiya, wantRiya)
	}
	if gotDev != wantDev {
		t.Fatalf("dev after recount = %+v, want %+v", gotDev, wantDev)
	}
}

func TestRecount_DryRunLeavesStateAlone(t *testing.T) {
	t.Parallel()

	fx := newScoringFixture(t, false)
	fx.addPlayer("riya", "Mumbai Indians")
	fx.addPrediction("riya", "Mumbai Indians", "Rohit Sharma", "Jasprit Bumrah")

	scoreMatch(t, fx, "m-001", fullResult)
	before := fx.playerRepo.players["riya"]

	// Corrupt the stored total, then dry-run: nothing may change.
	corrupted := before
	corrupted.Points = 999
	fx.playerRepo.players["riya"] = corrupted

	result, err := fx.svc.Recount(context.Background(), RecountInput{DryRun: true})
	if err != nil {
		t.Fatalf("dry run recount: %v", err)
	}
	if !result.DryRun {
		t.Fatal("result not flagged as dry run")
	}
	if got := fx.playerRepo.players["riya"].Points; got != 999 {
		t.Fatalf("dry run mutated state: points = %d", got)
	}

	// A real recount repairs the total.
	if _, err := fx.svc.Recount(context.Background(), RecountInput{}); err != nil {
		t.Fatalf("recount: %v", err)
	}
	if got := fx.playerRepo.players["riya"]; got != before {
		t.Fatalf("recount produced %+v, want %+v", got, before)
	}
}

func TestNormalizeRecountWorkerCount(t *testing.T) {
	t.Parallel()

	if got := normalizeRecountWorkerCount(0, defaultRecountWorkers, 10); got != defaultRecountWorkers {
		t.Fatalf("default workers = %d, want %d", got, defaultRecountWorkers)
	}
	if got := normalizeRecountWorkerCount(8, defaultRecountWorkers, 3); got != 3 {
		t.Fatalf("capped workers = %d, want 3", got)
	}
	if got := normalizeRecountWorkerCount(2, defaultRecountWorkers, 0); got != 2 {
		t.Fatalf("workers = %d, want 2", got)
	}
	if got := normalizeRecountWorkerCount(0, 9, 20); got != 9 {
		t.Fatalf("fallback workers = %d, want 9", got)
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/crickpick/prediction-league/internal/domain/match"
	"github.com/crickpick/prediction-league/internal/domain/player"
	"github.com/crickpick/prediction-league/internal/domain/prediction"
	"github.com/crickpick/prediction-league/internal/domain/roster"
	"github.com/crickpick/prediction-league/internal/domain/scoring"
	"github.com/crickpick/prediction-league/internal/platform/cache"
)

const defaultRecountWorkers = 4

// ScoringService applies match results and keeps player totals consistent.
type ScoringService struct {
	matchRepo      match.Repository
	playerRepo     player.Repository
	predictionRepo prediction.Repository
	rosterRepo     roster.Repository
	scoringRepo    scoring.Repository
	viewCache      *cache.Store
	recountWorkers int
	now            func() time.Time
}

func NewScoringService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	predictionRepo prediction.Repository,
	rosterRepo roster.Repository,
	scoringRepo scoring.Repository,
	viewCache *cache.Store,
) *ScoringService {
	return &ScoringService{
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		predictionRepo: predictionRepo,
		rosterRepo:     rosterRepo,
		scoringRepo:    scoringRepo,
		viewCache:      viewCache,
		recountWorkers: defaultRecountWorkers,
		now:            time.Now,
	}
}

// SetRecountWorkers overrides the pool size used when a recount request does
// not ask for one. Values below one are ignored.
func (s *ScoringService) SetRecountWorkers(n int) {
	if n > 0 {
		s.recountWorkers = n
	}
}

// ScoreMatchOutcome summarizes one scoring run.
type ScoreMatchOutcome struct {
	MatchID    string              `json:"matchId"`
	Multiplier int                 `json:"multiplier"`
	Scored     int                 `json:"scored"`
	Breakdowns []scoring.Breakdown `json:"breakdowns"`
}

// Score records the result for a match and awards points to every
// predictor in one atomic commit. A match can be scored exactly once.
func (s *ScoringService) Score(ctx context.Context, matchID string, result match.Result) (ScoreMatchOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Score")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	result.Winner = strings.TrimSpace(result.Winner)
	result.TopScorer = strings.TrimSpace(result.TopScorer)
	result.TopWicketTaker = strings.TrimSpace(result.TopWicketTaker)
	if matchID == "" {
		return ScoreMatchOutcome{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if result.Winner == "" || result.TopScorer == "" || result.TopWicketTaker == "" {
		return ScoreMatchOutcome{}, fmt.Errorf("%w: winner, top scorer and top wicket-taker are required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return ScoreMatchOutcome{}, fmt.Errorf("get match %s: %w", matchID, err)
	}
	if !exists {
		return ScoreMatchOutcome{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if m.IsCompleted() {
		return ScoreMatchOutcome{}, fmt.Errorf("score match %s: %w", matchID, match.ErrAlreadyScored)
	}
	if !m.Involves(result.Winner) {
		return ScoreMatchOutcome{}, fmt.Errorf("%w: winner %q does not play in match %s", ErrInvalidInput, result.Winner, matchID)
	}
	if err := s.validateResultNames(ctx, m, result); err != nil {
		return ScoreMatchOutcome{}, err
	}

	predictions, err := s.predictionRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return ScoreMatchOutcome{}, fmt.Errorf("list predictions for match %s: %w", matchID, err)
	}

	changed := make([]player.Player, 0, len(predictions))
	breakdowns := make([]scoring.Breakdown, 0, len(predictions))
	for _, pred := range predictions {
		p, exists, err := s.playerRepo.GetByUsername(ctx, pred.Username)
		if err != nil {
			return ScoreMatchOutcome{}, fmt.Errorf("get player %s: %w", pred.Username, err)
		}
		if !exists {
			continue
		}

		b := scorePrediction(m, result, pred, p.CurrentTeam)
		applyBreakdown(&p, b)
		changed = append(changed, p)
		breakdowns = append(breakdowns, b)
	}

	completed := m
	completed.Status = match.StatusCompleted
	completed.Result = &result
	if err := s.scoringRepo.CommitMatchResult(ctx, completed, changed); err != nil {
		return ScoreMatchOutcome{}, fmt.Errorf("commit result for match %s: %w", matchID, err)
	}
	s.invalidateViews(ctx)

	return ScoreMatchOutcome{
		MatchID:    matchID,
		Multiplier: m.Multiplier(),
		Scored:     len(breakdowns),
		Breakdowns: breakdowns,
	}, nil
}

// validateResultNames checks the named cricketers against the squads of the
// two sides. Squads are optional; with no roster data the names pass as-is.
func (s *ScoringService) validateResultNames(ctx context.Context, m match.Match, result match.Result) error {
	rosters := make([]roster.Roster, 0, 2)
	for _, team := range []string{m.Team1, m.Team2} {
		r, exists, err := s.rosterRepo.GetByTeam(ctx, team)
		if err != nil {
			return fmt.Errorf("get roster for %s: %w", team, err)
		}
		if exists && !r.IsEmpty() {
			rosters = append(rosters, r)
		}
	}
	if len(rosters) < 2 {
		return nil
	}

	for _, name := range []string{result.TopScorer, result.TopWicketTaker} {
		found := false
		for _, r := range rosters {
			if r.Contains(name) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q is not in either squad for match %s", ErrInvalidInput, name, m.ID)
		}
	}
	return nil
}

// scorePrediction computes the points one prediction earns against a result.
// currentTeam is the predictor's team at scoring time; loyalty rewards a
// correctly predicted win by the team they support now.
func scorePrediction(m match.Match, result match.Result, pred prediction.Prediction, currentTeam string) scoring.Breakdown {
	multiplier := m.Multiplier()
	b := scoring.Breakdown{Username: pred.Username}

	b.WinnerCorrect = pred.Winner == result.Winner
	b.ScorerCorrect = pred.TopScorer == result.TopScorer
	b.WicketsCorrect = pred.TopWicketTaker == result.TopWicketTaker

	if b.WinnerCorrect {
		b.Points += scoring.PointsWinner * multiplier
		if currentTeam == result.Winner {
			b.Points += scoring.PointsLoyaltyBonus * multiplier
			b.LoyaltyBonus = true
		}
	}
	if b.ScorerCorrect {
		b.Points += scoring.PointsTopScorer * multiplier
	}
	if b.WicketsCorrect {
		b.Points += scoring.PointsWicketTaker * multiplier
	}
	if b.WinnerCorrect && b.ScorerCorrect && b.WicketsCorrect {
		b.Points += scoring.PointsPerfectBonus * multiplier
		b.Perfect = true
	}

	return b
}

func applyBreakdown(p *player.Player, b scoring.Breakdown) {
	p.Points += b.Points
	if b.Perfect {
		p.PerfectPredictions++
	}
	if b.LoyaltyBonus {
		p.LoyaltyBonuses++
	}
}

func (s *ScoringService) invalidateViews(ctx context.Context) {
	if s.viewCache == nil {
		return
	}
	s.viewCache.DeletePrefix(ctx, "views:")
}

type RecountInput struct {
	MaxWorkers int
	// DryRun computes totals without committing them.
	DryRun bool
}

type RecountResult struct {
	MatchCount      int  `json:"match_count"`
	PredictionCount int  `json:"prediction_count"`
	PlayerCount     int  `json:"player_count"`
	WorkerCount     int  `json:"worker_count"`
	DryRun          bool `json:"dry_run"`
}

// Recount rebuilds every player's points and counters from scratch across
// all completed matches. Per-match scoring runs on a worker pool; the
// aggregation is additive, so worker order does not affect the outcome.
func (s *ScoringService) Recount(ctx context.Context, input RecountInput) (RecountResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Recount")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return RecountResult{}, fmt.Errorf("list players: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return RecountResult{}, fmt.Errorf("list matches: %w", err)
	}

	completed := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.IsCompleted() {
			completed = append(completed, m)
		}
	}

	rebuilt := make(map[string]player.Player, len(players))
	currentTeam := make(map[string]string, len(players))
	for _, p := range players {
		p.Points = 0
		p.PerfectPredictions = 0
		p.LoyaltyBonuses = 0
		rebuilt[p.Username] = p
		currentTeam[p.Username] = p.CurrentTeam
	}

	workerCount := normalizeRecountWorkerCount(input.MaxWorkers, s.recountWorkers, len(completed))
	result := RecountResult{
		MatchCount:  len(completed),
		PlayerCount: len(players),
		WorkerCount: workerCount,
		DryRun:      input.DryRun,
	}
	if len(completed) == 0 {
		if !input.DryRun {
			if err := s.commitRecount(ctx, rebuilt); err != nil {
				return RecountResult{}, err
			}
		}
		return result, nil
	}

	type matchBreakdowns struct {
		breakdowns []scoring.Breakdown
		err        error
	}
	results := make(chan matchBreakdowns, len(completed))

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecountResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, m := range completed {
		m := m
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			predictions, err := s.predictionRepo.ListByMatch(ctx, m.ID)
			if err != nil {
				results <- matchBreakdowns{err: fmt.Errorf("list predictions for match %s: %w", m.ID, err)}
				return
			}

			out := make([]scoring.Breakdown, 0, len(predictions))
			for _, pred := range predictions {
				team, known := currentTeam[pred.Username]
				if !known {
					continue
				}
				out = append(out, scorePrediction(m, *m.Result, pred, team))
			}
			results <- matchBreakdowns{breakdowns: out}
		}); err != nil {
			workers.Done()
			return RecountResult{}, fmt.Errorf("submit match to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		if row.err != nil {
			return RecountResult{}, row.err
		}
		for _, b := range row.breakdowns {
			p := rebuilt[b.Username]
			applyBreakdown(&p, b)
			rebuilt[b.Username] = p
			result.PredictionCount++
		}
	}

	if !input.DryRun {
		if err := s.commitRecount(ctx, rebuilt); err != nil {
			return RecountResult{}, err
		}
	}
	return result, nil
}

func (s *ScoringService) commitRecount(ctx context.Context, rebuilt map[string]player.Player) error {
	players := make([]player.Player, 0, len(rebuilt))
	for _, p := range rebuilt {
		players = append(players, p)
	}
	if err := s.scoringRepo.ReplacePlayers(ctx, players); err != nil {
		return fmt.Errorf("replace players after recount: %w", err)
	}
	s.invalidateViews(ctx)
	return nil
}

func normalizeRecountWorkerCount(requested, fallback, tasks int) int {
	count := requested
	if count <= 0 {
		count = fallback
	}
	if tasks > 0 && count > tasks {
		count = tasks
	}
	if count < 1 {
		count = 1
	}
	return count
}

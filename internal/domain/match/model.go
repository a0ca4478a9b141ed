package match

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crickpick/prediction-league/internal/domain/catalog"
)

const (
	StatusUpcoming  = "UPCOMING"
	StatusCompleted = "COMPLETED"
)

// CutoffLead is how long before the scheduled start predictions close.
const CutoffLead = 5 * time.Minute

var (
	ErrDuplicateID   = errors.New("duplicate match id")
	ErrInvalidTeams  = errors.New("invalid match teams")
	ErrAlreadyScored = errors.New("match already scored")
)

// Result holds the admin-entered outcome of a completed match.
type Result struct {
	Winner         string `json:"winner"`
	TopScorer      string `json:"topScorer"`
	TopWicketTaker string `json:"topWicketTaker"`
}

// Match is one scheduled game between two catalog franchises.
type Match struct {
	ID          string    `json:"id"`
	Team1       string    `json:"team1"`
	Team2       string    `json:"team2"`
	ScheduledAt time.Time `json:"scheduledAt"`
	CutoffAt    time.Time `json:"cutoffAt"`
	Venue       string    `json:"venue"`
	IsPlayoff   bool      `json:"isPlayoff"`
	Status      string    `json:"status"`
	Result      *Result   `json:"result,omitempty"`
}

// CutoffFor derives the prediction cutoff from a scheduled start time.
func CutoffFor(scheduledAt time.Time) time.Time {
	return scheduledAt.Add(-CutoffLead)
}

// New builds a validated upcoming match with its cutoff derived.
func New(id, team1, team2 string, scheduledAt time.Time, venue string, isPlayoff bool) (Match, error) {
	m := Match{
		ID:          strings.TrimSpace(id),
		Team1:       strings.TrimSpace(team1),
		Team2:       strings.TrimSpace(team2),
		ScheduledAt: scheduledAt,
		CutoffAt:    CutoffFor(scheduledAt),
		Venue:       strings.TrimSpace(venue),
		IsPlayoff:   isPlayoff,
		Status:      StatusUpcoming,
	}
	if err := m.Validate(); err != nil {
		return Match{}, err
	}
	return m, nil
}

// Validate checks structural invariants that hold for every stored match.
func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.Venue == "" {
		return fmt.Errorf("venue is required")
	}
	if m.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled time is required")
	}
	if !catalog.IsTeam(m.Team1) {
		return fmt.Errorf("%w: unknown team %q", ErrInvalidTeams, m.Team1)
	}
	if !catalog.IsTeam(m.Team2) {
		return fmt.Errorf("%w: unknown team %q", ErrInvalidTeams, m.Team2)
	}
	if m.Team1 == m.Team2 {
		return fmt.Errorf("%w: a team cannot play itself", ErrInvalidTeams)
	}
	return nil
}

// Involves reports whether the given franchise plays in this match.
func (m Match) Involves(team string) bool {
	return team == m.Team1 || team == m.Team2
}

// IsCompleted reports whether a result has been recorded.
func (m Match) IsCompleted() bool {
	return m.Status == StatusCompleted && m.Result != nil
}

// Multiplier is the scoring multiplier for this match.
func (m Match) Multiplier() int {
	if m.IsPlayoff {
		return 2
	}
	return 1
}

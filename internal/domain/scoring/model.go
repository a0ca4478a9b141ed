// Package scoring defines the point schedule and the commit contract for
// applying match results.
package scoring

// Base point values. Playoff matches double every component.
const (
	PointsWinner       = 10
	PointsLoyaltyBonus = 5
	PointsTopScorer    = 5
	PointsWicketTaker  = 5
	PointsPerfectBonus = 10
)

// Breakdown is the outcome of scoring one prediction.
type Breakdown struct {
	Username       string `json:"username"`
	Points         int    `json:"points"`
	WinnerCorrect  bool   `json:"winnerCorrect"`
	ScorerCorrect  bool   `json:"scorerCorrect"`
	WicketsCorrect bool   `json:"wicketsCorrect"`
	Perfect        bool   `json:"perfect"`
	LoyaltyBonus   bool   `json:"loyaltyBonus"`
}

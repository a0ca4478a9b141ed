// Package prediction models pre-match picks submitted by participants.
package prediction

import (
	"errors"
	"time"
)

var (
	ErrDuplicate   = errors.New("prediction already submitted")
	ErrPastCutoff  = errors.New("prediction window closed")
	ErrMatchClosed = errors.New("match already completed")
)

// Prediction is one participant's picks for one match. Immutable once stored.
type Prediction struct {
	MatchID        string    `json:"matchId"`
	Username       string    `json:"username"`
	Winner         string    `json:"winner"`
	TopScorer      string    `json:"topScorer"`
	TopWicketTaker string    `json:"topWicketTaker"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

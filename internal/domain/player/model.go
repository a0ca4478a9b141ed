// Package player models a registered game participant.
package player

import (
	"errors"
	"time"
)

var (
	ErrAlreadyJoined     = errors.New("player already joined")
	ErrAlreadyUsedSwitch = errors.New("team switch already used")
	ErrSameTeam          = errors.New("already supporting this team")
)

// Player is one participant's standing in the game. Username doubles as the id.
type Player struct {
	Username           string    `json:"username"`
	CurrentTeam        string    `json:"currentTeam"`
	OriginalTeam       string    `json:"originalTeam"`
	Points             int       `json:"points"`
	PerfectPredictions int       `json:"perfectPredictions"`
	LoyaltyBonuses     int       `json:"loyaltyBonuses"`
	HasSwitched        bool      `json:"hasSwitched"`
	JoinedAt           time.Time `json:"joinedAt"`
}

// NewPlayer returns a fresh participant supporting the given franchise.
func NewPlayer(username, team string, joinedAt time.Time) Player {
	return Player{
		Username:     username,
		CurrentTeam:  team,
		OriginalTeam: team,
		JoinedAt:     joinedAt,
	}
}

// Switch moves the player to a new franchise. OriginalTeam is never touched
// and the one-shot latch flips permanently.
func (p *Player) Switch(newTeam string) error {
	if p.HasSwitched {
		return ErrAlreadyUsedSwitch
	}
	if newTeam == p.CurrentTeam {
		return ErrSameTeam
	}
	p.CurrentTeam = newTeam
	p.HasSwitched = true
	return nil
}

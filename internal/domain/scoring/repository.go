package scoring

import (
	"context"

	"github.com/crickpick/prediction-league/internal/domain/match"
	"github.com/crickpick/prediction-league/internal/domain/player"
)

// Repository applies scoring outcomes to durable state.
type Repository interface {
	// CommitMatchResult stores the completed match and every changed
	// participant atomically.
	CommitMatchResult(ctx context.Context, m match.Match, changed []player.Player) error

	// ReplacePlayers swaps in a fully rebuilt participant set.
	ReplacePlayers(ctx context.Context, players []player.Player) error
}

package prediction

import "context"

// Repository exposes prediction storage operations.
type Repository interface {
	Put(ctx context.Context, p Prediction) error
	Get(ctx context.Context, matchID, username string) (Prediction, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Prediction, error)
}

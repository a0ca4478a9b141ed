package roster

import "context"

// Repository exposes squad read operations.
type Repository interface {
	GetByTeam(ctx context.Context, team string) (Roster, bool, error)
	List(ctx context.Context) ([]Roster, error)
}

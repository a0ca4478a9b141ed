package player

import "context"

// Repository exposes participant storage operations.
type Repository interface {
	Create(ctx context.Context, p Player) error
	Update(ctx context.Context, p Player) error
	GetByUsername(ctx context.Context, username string) (Player, bool, error)
	List(ctx context.Context) ([]Player, error)
}

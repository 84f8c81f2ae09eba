package season

import "context"

// Repository exposes season persistence operations.
type Repository interface {
	List(ctx context.Context) ([]Season, error)
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	Upsert(ctx context.Context, item Season) error
	Archive(ctx context.Context, seasonID string) error
}

package tournament

import "context"

// Repository stores the singleton tournament record.
type Repository interface {
	Get(ctx context.Context) (Tournament, bool, error)
	Upsert(ctx context.Context, t Tournament) error
}

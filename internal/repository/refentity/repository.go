package refentity

import (
	"context"

	"refdata/internal/domain"
)

// Repository is the server-side persistence contract for reference
// entities. Absent records are reported as (nil, nil); deletes of absent
// ids succeed.
type Repository interface {
	List(ctx context.Context, collection string) ([]domain.Entity, error)
	Get(ctx context.Context, collection, id string) (*domain.Entity, error)
	Upsert(ctx context.Context, collection string, e domain.Entity) (*domain.Entity, error)
	Delete(ctx context.Context, collection, id string) error
	// Reorder rewrites positions to the zero-based index of each id, in
	// one transaction.
	Reorder(ctx context.Context, collection string, ids []string) error
}

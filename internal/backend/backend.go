// Package backend defines the transport contract the ordered entity store
// writes through, and selects which implementation serves the process.
package backend

import "context"

// Record is one raw backend row: an id plus an untyped payload. The store
// owns coercing Data into an entity; the backend promises nothing about its
// schema.
type Record struct {
	ID   string
	Data map[string]any
}

// Backend is the persistence contract both transports satisfy. Absent items
// are reported as (nil, nil), never as errors; deletes are no-op-safe.
type Backend interface {
	// FetchCollection returns every record in the named collection, in the
	// backend's natural order. That order is the tie-break for records
	// sharing a position, so it must be deterministic across calls.
	FetchCollection(ctx context.Context, collection string) ([]Record, error)

	// FetchItem returns one record, or nil if the id is absent.
	FetchItem(ctx context.Context, collection, id string) (*Record, error)

	// CreateItem persists a record the caller just minted an id for.
	CreateItem(ctx context.Context, collection string, rec Record) error

	// UpdateItem persists a record under its existing id.
	UpdateItem(ctx context.Context, collection string, rec Record) error

	// DeleteItem removes a record; deleting an absent id is not an error.
	DeleteItem(ctx context.Context, collection, id string) error

	// BulkReorder persists the full collection in the given order. The
	// local transport writes records one by one, so a failure partway
	// leaves earlier records updated; the remote transport hands the
	// whole list to the service in one request.
	BulkReorder(ctx context.Context, collection string, ordered []Record) error

	// Close releases the transport's resources.
	Close() error
}

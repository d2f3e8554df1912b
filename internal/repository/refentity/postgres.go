package refentity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"refdata/internal/domain"
	"refdata/internal/timestamp"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by the ref_entities table.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context, collection string) ([]domain.Entity, error) {
	const q = `
SELECT id, title, COALESCE(description, ''), position, COALESCE(parent_id, ''), created_at, updated_at
FROM ref_entities
WHERE collection = $1
ORDER BY position ASC NULLS LAST, seq ASC
`
	rows, err := r.pool.Query(ctx, q, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Get(ctx context.Context, collection, id string) (*domain.Entity, error) {
	const q = `
SELECT id, title, COALESCE(description, ''), position, COALESCE(parent_id, ''), created_at, updated_at
FROM ref_entities
WHERE collection = $1 AND id = $2
`
	row := r.pool.QueryRow(ctx, q, collection, id)
	e, err := scanEntity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, collection string, e domain.Entity) (*domain.Entity, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	const q = `
INSERT INTO ref_entities (collection, id, title, description, position, parent_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
ON CONFLICT (collection, id) DO UPDATE
SET title = EXCLUDED.title,
    description = EXCLUDED.description,
    position = EXCLUDED.position,
    parent_id = EXCLUDED.parent_id,
    updated_at = EXCLUDED.updated_at
RETURNING created_at, updated_at
`
	createdAt := parseOrNow(e.CreatedAt)
	updatedAt := parseOrNow(e.UpdatedAt)

	var outCreated, outUpdated time.Time
	err := r.pool.QueryRow(ctx, q, collection, e.ID, e.Title, e.Description, e.Position, e.ParentID, createdAt, updatedAt).
		Scan(&outCreated, &outUpdated)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = timestamp.Canonical(outCreated)
	e.UpdatedAt = timestamp.Canonical(outUpdated)
	return &e, nil
}

func (r *postgresRepo) Delete(ctx context.Context, collection, id string) error {
	const q = `DELETE FROM ref_entities WHERE collection = $1 AND id = $2`
	_, err := r.pool.Exec(ctx, q, collection, id)
	return err
}

// Reorder assigns contiguous positions inside one transaction, so clients
// of the remote API observe either the old or the new ordering.
func (r *postgresRepo) Reorder(ctx context.Context, collection string, ids []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `UPDATE ref_entities SET position = $3, updated_at = now() WHERE collection = $1 AND id = $2`
	for i, id := range ids {
		if _, err := tx.Exec(ctx, q, collection, id, i); err != nil {
			return fmt.Errorf("reposition %s/%s: %w", collection, id, err)
		}
	}
	return tx.Commit(ctx)
}

func scanEntity(row pgx.Row) (domain.Entity, error) {
	var (
		e         domain.Entity
		position  *int
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &position, &e.ParentID, &createdAt, &updatedAt); err != nil {
		return domain.Entity{}, err
	}
	e.Position = position
	e.CreatedAt = timestamp.Canonical(createdAt)
	e.UpdatedAt = timestamp.Canonical(updatedAt)
	return e, nil
}

func parseOrNow(canonical string) time.Time {
	if canonical == "" {
		return time.Now().UTC()
	}
	t, err := time.Parse(timestamp.Layout, canonical)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}

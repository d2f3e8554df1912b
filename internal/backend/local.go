package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Local is the embedded transport: one SQLite table of JSON payloads keyed
// by (collection, id). A monotonically assigned seq column preserves
// insertion order, which is the tie-break order for collection fetches.
type Local struct {
	db *sql.DB
}

const localSchema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       TEXT NOT NULL,
	seq        INTEGER,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS idx_records_collection ON records(collection, seq);
`

// OpenLocal creates or opens the embedded store at path.
func OpenLocal(path string) (*Local, error) {
	if path == "" {
		path = "refdata.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under interleaved writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA synchronous = NORMAL`,
		`PRAGMA busy_timeout = 5000`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	if _, err := db.Exec(localSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Local{db: db}, nil
}

// Close closes the underlying database.
func (l *Local) Close() error {
	return l.db.Close()
}

func (l *Local) FetchCollection(ctx context.Context, collection string) ([]Record, error) {
	const q = `SELECT id, data FROM records WHERE collection = ? ORDER BY seq ASC`
	rows, err := l.db.QueryContext(ctx, q, collection)
	if err != nil {
		return nil, fmt.Errorf("fetch collection %s: %w", collection, err)
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		result = append(result, Record{ID: id, Data: decodePayload(payload)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection %s: %w", collection, err)
	}
	return result, nil
}

func (l *Local) FetchItem(ctx context.Context, collection, id string) (*Record, error) {
	const q = `SELECT data FROM records WHERE collection = ? AND id = ?`
	var payload string
	err := l.db.QueryRowContext(ctx, q, collection, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", collection, id, err)
	}
	return &Record{ID: id, Data: decodePayload(payload)}, nil
}

func (l *Local) CreateItem(ctx context.Context, collection string, rec Record) error {
	return l.upsert(ctx, collection, rec)
}

func (l *Local) UpdateItem(ctx context.Context, collection string, rec Record) error {
	return l.upsert(ctx, collection, rec)
}

func (l *Local) upsert(ctx context.Context, collection string, rec Record) error {
	payload, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, rec.ID, err)
	}
	const q = `
INSERT INTO records (collection, id, data, seq)
VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM records WHERE collection = ?))
ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data
`
	if _, err := l.db.ExecContext(ctx, q, collection, rec.ID, string(payload), collection); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", collection, rec.ID, err)
	}
	return nil
}

func (l *Local) DeleteItem(ctx context.Context, collection, id string) error {
	const q = `DELETE FROM records WHERE collection = ? AND id = ?`
	if _, err := l.db.ExecContext(ctx, q, collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// BulkReorder writes each record in turn. The writes are sequential and
// independent: a failure on record k leaves records before it updated and
// the rest untouched, and the error reports how far the pass got.
func (l *Local) BulkReorder(ctx context.Context, collection string, ordered []Record) error {
	for i, rec := range ordered {
		if err := l.upsert(ctx, collection, rec); err != nil {
			return fmt.Errorf("reorder %s stopped at %d/%d: %w", collection, i, len(ordered), err)
		}
	}
	return nil
}

// decodePayload is lenient: a corrupt payload becomes an empty map and the
// record is left for the store's defensive filtering to discard.
func decodePayload(payload string) map[string]any {
	data := map[string]any{}
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return map[string]any{}
	}
	return data
}

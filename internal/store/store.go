// Package store implements the ordered reference-entity store: one generic
// CRUD-plus-ordering surface per entity kind, over whichever backend the
// process resolved at startup.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"refdata/internal/backend"
	"refdata/internal/domain"
	"refdata/internal/identifier"
	"refdata/internal/timestamp"
)

// Store manages one entity kind. Reads degrade (a transport failure yields
// an empty list or nil entity, logged); writes always surface their error,
// because the caller has to know a mutation did not take effect.
type Store struct {
	kind   domain.Kind
	be     backend.Backend
	ids    *identifier.Generator
	logger zerolog.Logger

	now func() time.Time
}

// New builds a Store for one kind over an already-resolved backend.
func New(kind domain.Kind, be backend.Backend, ids *identifier.Generator, logger zerolog.Logger) *Store {
	return &Store{
		kind:   kind,
		be:     be,
		ids:    ids,
		logger: logger.With().Str("collection", kind.Collection).Logger(),
		now:    time.Now,
	}
}

// List returns every entity in the collection, sorted by position ascending
// with unpositioned entities last; entities sharing a position keep the
// backend's order. The result is recomputed on every call. Records without
// an id or a title are dropped rather than trusted, and a transport failure
// yields an empty list so a listing view never crashes on a broken read.
func (s *Store) List(ctx context.Context) []domain.Entity {
	recs, err := s.be.FetchCollection(ctx, s.kind.Collection)
	if err != nil {
		s.logger.Error().Err(err).Msg("list failed")
		return []domain.Entity{}
	}

	entities := make([]domain.Entity, 0, len(recs))
	for _, rec := range recs {
		e, ok := s.entityFromRecord(rec)
		if !ok {
			continue
		}
		entities = append(entities, e)
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].PositionOf() < entities[j].PositionOf()
	})
	return entities
}

// Get returns the entity with the given id, or nil if it does not exist.
// Transport failures are logged and reported as nil, matching the read-path
// policy of List.
func (s *Store) Get(ctx context.Context, id string) *domain.Entity {
	rec, err := s.be.FetchItem(ctx, s.kind.Collection, id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("get failed")
		return nil
	}
	if rec == nil {
		return nil
	}
	e, ok := s.entityFromRecord(*rec)
	if !ok {
		return nil
	}
	return &e
}

// Save persists a partial entity. Without an id it is a create: the
// generator assigns one and createdAt is stamped. With an id it is an
// update: identity is preserved and a caller-supplied createdAt is honored,
// falling back to now when absent. Either way updatedAt is refreshed, the
// description defaults to empty, and the position stays nil unless the
// caller set one. The returned entity is the locally materialized record;
// the store never re-reads after a write.
func (s *Store) Save(ctx context.Context, partial domain.Entity) (domain.Entity, error) {
	if strings.TrimSpace(partial.Title) == "" {
		return domain.Entity{}, domain.ErrBlankTitle
	}

	now := s.nowCanonical()
	e := partial
	e.UpdatedAt = now
	if !s.kind.HasParent {
		e.ParentID = ""
	}

	creating := e.ID == ""
	if creating {
		e.ID = s.ids.New(s.kind.Collection)
		e.CreatedAt = now
	} else if e.CreatedAt == "" {
		e.CreatedAt = now
	}

	rec := s.recordFromEntity(e)
	var err error
	if creating {
		err = s.be.CreateItem(ctx, s.kind.Collection, rec)
	} else {
		err = s.be.UpdateItem(ctx, s.kind.Collection, rec)
	}
	if err != nil {
		return domain.Entity{}, fmt.Errorf("save %s/%s: %w", s.kind.Collection, e.ID, err)
	}
	return e, nil
}

// Delete removes the entity with the given id. Deleting an id that does not
// exist is not an error; only backend-reported failures propagate.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.be.DeleteItem(ctx, s.kind.Collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", s.kind.Collection, id, err)
	}
	return nil
}

// Reorder rewrites every entity's position to its zero-based index in the
// given sequence and refreshes updatedAt, then hands the full list to the
// backend. The local transport writes records one at a time, so callers
// must treat a failure as at-least-partial-effect, not all-or-nothing.
func (s *Store) Reorder(ctx context.Context, ordered []domain.Entity) error {
	now := s.nowCanonical()
	recs := make([]backend.Record, 0, len(ordered))
	for i, e := range ordered {
		e.Position = domain.Pos(i)
		e.UpdatedAt = now
		recs = append(recs, s.recordFromEntity(e))
	}
	if err := s.be.BulkReorder(ctx, s.kind.Collection, recs); err != nil {
		return fmt.Errorf("reorder %s: %w", s.kind.Collection, err)
	}
	return nil
}

// Kind returns the kind descriptor this store manages.
func (s *Store) Kind() domain.Kind {
	return s.kind
}

func (s *Store) nowCanonical() string {
	return timestamp.Canonical(s.now())
}

// entityFromRecord coerces an untyped backend record into an entity. The
// backend is not a trusted schema source: wrong-typed fields degrade to
// zero values, and records without an id or a title are rejected.
func (s *Store) entityFromRecord(rec backend.Record) (domain.Entity, bool) {
	id := rec.ID
	if id == "" {
		id, _ = rec.Data["id"].(string)
	}
	title, _ := rec.Data["title"].(string)
	if id == "" || title == "" {
		return domain.Entity{}, false
	}

	e := domain.Entity{
		ID:        id,
		Title:     title,
		CreatedAt: timestamp.Normalize(rec.Data["createdAt"]),
		UpdatedAt: timestamp.Normalize(rec.Data["updatedAt"]),
	}
	if desc, ok := rec.Data["description"].(string); ok {
		e.Description = desc
	}
	if pos, ok := numericPosition(rec.Data["position"]); ok {
		e.Position = domain.Pos(pos)
	}
	if s.kind.HasParent {
		e.ParentID, _ = rec.Data["parentId"].(string)
	}
	return e, true
}

func (s *Store) recordFromEntity(e domain.Entity) backend.Record {
	data := map[string]any{
		"id":          e.ID,
		"title":       e.Title,
		"description": e.Description,
		"position":    nil,
		"createdAt":   e.CreatedAt,
		"updatedAt":   e.UpdatedAt,
	}
	if e.Position != nil {
		data["position"] = *e.Position
	}
	if s.kind.HasParent && e.ParentID != "" {
		data["parentId"] = e.ParentID
	}
	return backend.Record{ID: e.ID, Data: data}
}

func numericPosition(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

package refentity

import (
	"context"
	"fmt"
	"strings"

	"refdata/internal/domain"
	"refdata/internal/repository/refentity"
	"refdata/internal/timestamp"
)

// Service applies the caller-facing rules of the reference-data API:
// collection names must map to a known kind, titles must not be blank, and
// timestamps are stamped server-side.
type Service struct {
	repo refentity.Repository
}

func New(repo refentity.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, collection string) ([]domain.Entity, error) {
	if _, ok := domain.KindByCollection(collection); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCollection, collection)
	}
	return s.repo.List(ctx, collection)
}

func (s *Service) Get(ctx context.Context, collection, id string) (*domain.Entity, error) {
	if _, ok := domain.KindByCollection(collection); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCollection, collection)
	}
	return s.repo.Get(ctx, collection, id)
}

// Save upserts an entity. An empty id means the service mints one; a
// client-supplied id is accepted as-is, since local-first clients generate
// ids before they reach the API.
func (s *Service) Save(ctx context.Context, collection string, e domain.Entity) (*domain.Entity, error) {
	kind, ok := domain.KindByCollection(collection)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCollection, collection)
	}
	if strings.TrimSpace(e.Title) == "" {
		return nil, domain.ErrBlankTitle
	}
	if !kind.HasParent {
		e.ParentID = ""
	}

	now := timestamp.Now()
	e.UpdatedAt = now
	if e.CreatedAt == "" {
		e.CreatedAt = now
	}
	return s.repo.Upsert(ctx, collection, e)
}

func (s *Service) Delete(ctx context.Context, collection, id string) error {
	if _, ok := domain.KindByCollection(collection); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCollection, collection)
	}
	return s.repo.Delete(ctx, collection, id)
}

func (s *Service) Reorder(ctx context.Context, collection string, ids []string) error {
	if _, ok := domain.KindByCollection(collection); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCollection, collection)
	}
	return s.repo.Reorder(ctx, collection, ids)
}

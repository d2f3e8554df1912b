package refentity

import (
	"context"
	"errors"
	"testing"

	"refdata/internal/domain"
)

type recordingRepo struct {
	calls    int
	upserted *domain.Entity
}

func (r *recordingRepo) List(context.Context, string) ([]domain.Entity, error) {
	r.calls++
	return nil, nil
}

func (r *recordingRepo) Get(context.Context, string, string) (*domain.Entity, error) {
	r.calls++
	return nil, nil
}

func (r *recordingRepo) Upsert(_ context.Context, _ string, e domain.Entity) (*domain.Entity, error) {
	r.calls++
	r.upserted = &e
	return &e, nil
}

func (r *recordingRepo) Delete(context.Context, string, string) error {
	r.calls++
	return nil
}

func (r *recordingRepo) Reorder(context.Context, string, []string) error {
	r.calls++
	return nil
}

func TestService_UnknownCollectionRejectedBeforeRepo(t *testing.T) {
	repo := &recordingRepo{}
	svc := New(repo)
	ctx := context.Background()

	if _, err := svc.List(ctx, "unicorns"); !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("list: expected ErrUnknownCollection, got %v", err)
	}
	if _, err := svc.Get(ctx, "unicorns", "x"); !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("get: expected ErrUnknownCollection, got %v", err)
	}
	if _, err := svc.Save(ctx, "unicorns", domain.Entity{Title: "X"}); !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("save: expected ErrUnknownCollection, got %v", err)
	}
	if err := svc.Delete(ctx, "unicorns", "x"); !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("delete: expected ErrUnknownCollection, got %v", err)
	}
	if err := svc.Reorder(ctx, "unicorns", []string{"x"}); !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("reorder: expected ErrUnknownCollection, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("repo reached %d times", repo.calls)
	}
}

func TestService_SaveBlankTitleRejectedBeforeRepo(t *testing.T) {
	repo := &recordingRepo{}
	svc := New(repo)

	if _, err := svc.Save(context.Background(), "statuses", domain.Entity{Title: " \t"}); !errors.Is(err, domain.ErrBlankTitle) {
		t.Fatalf("expected ErrBlankTitle, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("repo reached %d times", repo.calls)
	}
}

func TestService_SaveStampsTimestamps(t *testing.T) {
	repo := &recordingRepo{}
	svc := New(repo)

	saved, err := svc.Save(context.Background(), "statuses", domain.Entity{Title: "New"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.CreatedAt == "" || saved.UpdatedAt == "" {
		t.Fatalf("timestamps not stamped: %+v", saved)
	}

	// Updates keep the caller's createdAt and refresh updatedAt.
	updated, err := svc.Save(context.Background(), "statuses", domain.Entity{
		ID:        "st-1",
		Title:     "New",
		CreatedAt: "2023-01-02T03:04:05.000Z",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CreatedAt != "2023-01-02T03:04:05.000Z" {
		t.Fatalf("createdAt not preserved: %+v", updated)
	}
	if updated.UpdatedAt == updated.CreatedAt {
		t.Fatalf("updatedAt not refreshed: %+v", updated)
	}
}

func TestService_SaveStripsParentForNonParentKinds(t *testing.T) {
	repo := &recordingRepo{}
	svc := New(repo)

	if _, err := svc.Save(context.Background(), "statuses", domain.Entity{Title: "New", ParentID: "x"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if repo.upserted.ParentID != "" {
		t.Fatalf("parent kept for non-parent kind: %+v", repo.upserted)
	}

	if _, err := svc.Save(context.Background(), "categories", domain.Entity{Title: "SaaS", ParentID: "root"}); err != nil {
		t.Fatalf("save category: %v", err)
	}
	if repo.upserted.ParentID != "root" {
		t.Fatalf("category parent dropped: %+v", repo.upserted)
	}
}

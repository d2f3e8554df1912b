package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"refdata/internal/domain"
)

func TestRegistry_CoversAllKindsOverOneBackend(t *testing.T) {
	be := newFakeBackend()
	reg := NewRegistry(be, zerolog.Nop())

	for _, kind := range domain.Kinds() {
		s, ok := reg.ForCollection(kind.Collection)
		if !ok {
			t.Fatalf("no store for %s", kind.Collection)
		}
		if s.Kind().Collection != kind.Collection {
			t.Fatalf("store kind mismatch: %+v", s.Kind())
		}
	}
	if _, ok := reg.ForCollection("unicorns"); ok {
		t.Fatal("expected miss for unknown collection")
	}

	if reg.Categories().Kind() != domain.KindCategory ||
		reg.VCs().Kind() != domain.KindVC ||
		reg.Departments().Kind() != domain.KindDepartment ||
		reg.Statuses().Kind() != domain.KindStatus ||
		reg.EngagementLevels().Kind() != domain.KindEngagementLevel ||
		reg.BizDevPhases().Kind() != domain.KindBizDevPhase {
		t.Fatal("accessor returned wrong kind")
	}
}

func TestRegistry_StoresShareOneIdGenerator(t *testing.T) {
	be := newFakeBackend()
	reg := NewRegistry(be, zerolog.Nop())

	a, err := reg.Statuses().Save(context.Background(), domain.Entity{Title: "A"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := reg.Departments().Save(context.Background(), domain.Entity{Title: "B"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if a.ID == "" || b.ID == "" {
		t.Fatal("missing ids")
	}
}

package store

import (
	"github.com/rs/zerolog"

	"refdata/internal/backend"
	"refdata/internal/domain"
	"refdata/internal/identifier"
)

// Registry holds one Store per entity kind, all over the same resolved
// backend and sharing one id generator.
type Registry struct {
	be     backend.Backend
	stores map[string]*Store
}

// NewRegistry instantiates the six kind stores.
func NewRegistry(be backend.Backend, logger zerolog.Logger) *Registry {
	ids := identifier.NewGenerator()
	stores := make(map[string]*Store, len(domain.Kinds()))
	for _, kind := range domain.Kinds() {
		stores[kind.Collection] = New(kind, be, ids, logger)
	}
	return &Registry{be: be, stores: stores}
}

// ForCollection returns the store managing the named collection.
func (r *Registry) ForCollection(collection string) (*Store, bool) {
	s, ok := r.stores[collection]
	return s, ok
}

func (r *Registry) Categories() *Store       { return r.stores[domain.KindCategory.Collection] }
func (r *Registry) VCs() *Store              { return r.stores[domain.KindVC.Collection] }
func (r *Registry) Departments() *Store      { return r.stores[domain.KindDepartment.Collection] }
func (r *Registry) Statuses() *Store         { return r.stores[domain.KindStatus.Collection] }
func (r *Registry) EngagementLevels() *Store { return r.stores[domain.KindEngagementLevel.Collection] }
func (r *Registry) BizDevPhases() *Store     { return r.stores[domain.KindBizDevPhase.Collection] }

// Close releases the underlying backend.
func (r *Registry) Close() error {
	return r.be.Close()
}

// ParentChoices lists the top-level entities of a parent-bearing kind,
// excluding the entity being edited. It backs parent-selection flows; only
// one level of nesting is modeled.
func ParentChoices(entities []domain.Entity, editingID string) []domain.Entity {
	choices := make([]domain.Entity, 0, len(entities))
	for _, e := range entities {
		if e.TopLevel() && e.ID != editingID {
			choices = append(choices, e)
		}
	}
	return choices
}

package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/lotbook/backend/internal/domain/partner"
	"github.com/lotbook/backend/internal/domain/shared"
)

// Registry is the in-memory partner.Registry
type Registry struct {
	store *Store
}

// NewRegistry creates a registry over the store
func NewRegistry(store *Store) *Registry {
	return &Registry{store: store}
}

func (r *Registry) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	party, ok := r.store.parties[id]
	return ok && party.Active, nil
}

func (r *Registry) FindByID(ctx context.Context, id uuid.UUID) (*partner.Party, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	party, ok := r.store.parties[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneParty(party), nil
}

func (r *Registry) FindByKind(ctx context.Context, kind partner.PartyKind) ([]partner.Party, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]partner.Party, 0)
	for _, party := range r.store.parties {
		if party.Kind == kind && party.Active {
			out = append(out, *cloneParty(party))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

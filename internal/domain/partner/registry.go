package partner

import (
	"context"

	"github.com/google/uuid"
)

// Registry resolves counterparty identifiers. It is an external collaborator
// of the engine: party CRUD lives elsewhere, the engine only asks whether an
// id denotes a known, active party and fetches display summaries.
type Registry interface {
	// Exists reports whether the id denotes a known, active party
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// FindByID returns the party for display purposes
	FindByID(ctx context.Context, id uuid.UUID) (*Party, error)
	// FindByKind lists active parties of one kind (aggregation input)
	FindByKind(ctx context.Context, kind PartyKind) ([]Party, error)
}

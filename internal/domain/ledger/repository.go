package ledger

import (
	"context"

	"github.com/google/uuid"
)

// EntryRepository is the persistence contract for ledger entries. The ledger
// is append-only: Save inserts new entries, CancelByTransaction flips the
// active flag, nothing is ever hard-deleted.
type EntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]Entry, error)
	FindByParty(ctx context.Context, partyID uuid.UUID) ([]Entry, error)
	Save(ctx context.Context, entry *Entry) error
	CancelByTransaction(ctx context.Context, transactionID uuid.UUID) error
}

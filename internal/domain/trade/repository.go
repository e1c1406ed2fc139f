package trade

import (
	"context"

	"github.com/google/uuid"
)

// TransactionRepository is the persistence contract for the Transaction
// aggregate. Implementations load and save the full aggregate (header,
// lines, allocations) as one unit.
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Save(ctx context.Context, transaction *Transaction) error
}

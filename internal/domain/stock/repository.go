package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LotRepository is the persistence contract for lots.
//
// FindActiveByProductForUpdate must acquire row locks on the returned lots
// (SELECT ... FOR UPDATE semantics) so that two overlapping allocations for
// the same product cannot both succeed past what is available. It is only
// meaningful inside a transaction scope.
type LotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Lot, error)
	FindActiveByProduct(ctx context.Context, productID uuid.UUID) ([]Lot, error)
	FindActiveByProductForUpdate(ctx context.Context, productID uuid.UUID) ([]Lot, error)
	TotalAvailable(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
	Save(ctx context.Context, lot *Lot) error
	SaveAll(ctx context.Context, lots []*Lot) error
}

package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotbook/backend/internal/domain/shared"
)

// Lot represents a timestamped quantity of stock for one product.
// Lots are consumed oldest-first and are never hard-deleted while they
// still hold stock; a fully consumed lot is deactivated and can be
// reactivated by a reversal.
type Lot struct {
	shared.BaseEntity
	ProductID       uuid.UUID
	AmountRemaining decimal.Decimal
	UnitCost        *decimal.Decimal // acquisition cost per unit (optional)
	UnitPrice       *decimal.Decimal // default sale price per unit (optional)
	Active          bool
}

// NewLot creates a new lot for a product
func NewLot(productID uuid.UUID, amount decimal.Decimal, unitCost, unitPrice *decimal.Decimal) (*Lot, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Lot amount must be positive")
	}
	return &Lot{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		AmountRemaining: amount,
		UnitCost:        unitCost,
		UnitPrice:       unitPrice,
		Active:          true,
	}, nil
}

// HasStock returns true if the lot still holds consumable stock
func (l *Lot) HasStock() bool {
	return l.Active && l.AmountRemaining.GreaterThan(decimal.Zero)
}

// Consume decrements the remaining amount. It fails when amount exceeds
// what is left; the lot is deactivated when it reaches exactly zero.
func (l *Lot) Consume(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Consumed amount must be positive")
	}
	if amount.GreaterThan(l.AmountRemaining) {
		return shared.NewDomainErrorf(shared.CodeInsufficientStock,
			"Lot %s holds %s, cannot consume %s", l.ID, l.AmountRemaining, amount)
	}

	l.AmountRemaining = l.AmountRemaining.Sub(amount)
	if l.AmountRemaining.IsZero() {
		l.Active = false
	}
	l.UpdatedAt = time.Now()
	return nil
}

// Restore increments the remaining amount and reactivates a depleted lot.
// Used by transaction reversal only.
func (l *Lot) Restore(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Restored amount must be positive")
	}

	l.AmountRemaining = l.AmountRemaining.Add(amount)
	if !l.Active && l.AmountRemaining.GreaterThan(decimal.Zero) {
		l.Active = true
	}
	l.UpdatedAt = time.Now()
	return nil
}

// TotalAvailable sums the remaining amount over active lots
func TotalAvailable(lots []Lot) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range lots {
		if lot.HasStock() {
			total = total.Add(lot.AmountRemaining)
		}
	}
	return total
}

// LatestUnitPrice returns the unit price of the most recently created active
// lot that carries one, or nil when no active lot has a price.
func LatestUnitPrice(lots []Lot) *decimal.Decimal {
	var latest *Lot
	for i := range lots {
		lot := &lots[i]
		if !lot.HasStock() || lot.UnitPrice == nil {
			continue
		}
		if latest == nil || lot.CreatedAt.After(latest.CreatedAt) {
			latest = lot
		}
	}
	if latest == nil {
		return nil
	}
	price := *latest.UnitPrice
	return &price
}

package purchase

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotbook/backend/internal/domain/shared"
)

// PurchaseLog records an incoming raw-material intake from a supplier.
// Recording one creates a stock lot for the material and supplier-side
// ledger entries keyed by the log's id, so payables can be reconstructed
// per intake.
type PurchaseLog struct {
	shared.BaseEntity
	SupplierID uuid.UUID
	MaterialID uuid.UUID
	Amount     decimal.Decimal
	UnitCost   decimal.Decimal
	Comment    string
}

// NewPurchaseLog creates a purchase log for a supplier intake
func NewPurchaseLog(supplierID, materialID uuid.UUID, amount, unitCost decimal.Decimal, comment string) (*PurchaseLog, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Supplier ID cannot be empty")
	}
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Material ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Purchase amount must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unit cost cannot be negative")
	}
	return &PurchaseLog{
		BaseEntity: shared.NewBaseEntity(),
		SupplierID: supplierID,
		MaterialID: materialID,
		Amount:     amount,
		UnitCost:   unitCost,
		Comment:    comment,
	}, nil
}

// TotalCost is the monetary value of the intake
func (p *PurchaseLog) TotalCost() decimal.Decimal {
	return p.Amount.Mul(p.UnitCost)
}

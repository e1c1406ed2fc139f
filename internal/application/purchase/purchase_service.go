package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lotbook/backend/internal/application/uow"
	"github.com/lotbook/backend/internal/domain/ledger"
	"github.com/lotbook/backend/internal/domain/partner"
	"github.com/lotbook/backend/internal/domain/purchase"
	"github.com/lotbook/backend/internal/domain/shared"
	"github.com/lotbook/backend/internal/domain/stock"
)

var (
	overpayEpsilon = decimal.NewFromFloat(0.01)
	debtEpsilon    = decimal.NewFromFloat(0.005)
)

// RecordPurchaseRequest is the input for recording a supplier intake.
// UnitPrice optionally sets the default sale price on the created lot.
type RecordPurchaseRequest struct {
	SupplierID uuid.UUID        `json:"supplier_id"`
	MaterialID uuid.UUID        `json:"material_id"`
	Amount     decimal.Decimal  `json:"amount"`
	UnitCost   decimal.Decimal  `json:"unit_cost"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	Paid       decimal.Decimal  `json:"paid"`
	Method     string           `json:"method,omitempty"`
	Comment    string           `json:"comment,omitempty"`
}

// PurchaseView is the read model of a recorded intake
type PurchaseView struct {
	ID         uuid.UUID       `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	MaterialID uuid.UUID       `json:"material_id"`
	Amount     decimal.Decimal `json:"amount"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Paid       decimal.Decimal `json:"paid"`
	LotID      uuid.UUID       `json:"lot_id"`
	Comment    string          `json:"comment,omitempty"`
}

// PurchaseService records supplier intakes: each one creates a stock lot and
// books the supplier-side debt and payment in the ledger, atomically.
type PurchaseService struct {
	scope    uow.TransactionScope
	registry partner.Registry
	houseID  uuid.UUID
	logger   *zap.Logger
}

// NewPurchaseService creates a purchase service. houseID identifies the
// owning business party; supplier debts are booked from it.
func NewPurchaseService(scope uow.TransactionScope, registry partner.Registry, houseID uuid.UUID, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{
		scope:    scope,
		registry: registry,
		houseID:  houseID,
		logger:   logger,
	}
}

// RecordPurchase books an intake: it creates the purchase log and its stock
// lot, then writes the supplier payable (house owes supplier) and any payment
// made on the spot, all keyed by the log's id.
func (s *PurchaseService) RecordPurchase(ctx context.Context, req RecordPurchaseRequest) (*PurchaseView, error) {
	if req.Paid.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Paid amount cannot be negative")
	}

	exists, err := s.registry.Exists(ctx, req.SupplierID)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}
	if !exists {
		return nil, shared.NewDomainErrorf(shared.CodePartyNotFound, "Supplier %s is not registered", req.SupplierID)
	}

	log, err := purchase.NewPurchaseLog(req.SupplierID, req.MaterialID, req.Amount, req.UnitCost, req.Comment)
	if err != nil {
		return nil, err
	}
	if req.Paid.GreaterThan(log.TotalCost().Add(overpayEpsilon)) {
		return nil, shared.NewDomainErrorf(shared.CodeOverpaymentRejected,
			"Paid %s exceeds intake cost %s", req.Paid, log.TotalCost())
	}

	unitCost := req.UnitCost
	lot, err := stock.NewLot(req.MaterialID, req.Amount, &unitCost, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := repos.PurchaseLogs().Save(ctx, log); err != nil {
			return err
		}
		if err := repos.Lots().Save(ctx, lot); err != nil {
			return err
		}

		// The payment is written before the residual debt: upfront payments
		// are already baked into the debt amount and must not net against it
		// a second time.
		if req.Paid.GreaterThan(decimal.Zero) {
			payment, err := ledger.NewPayment(req.Paid, s.houseID, log.SupplierID)
			if err != nil {
				return err
			}
			payment.ForPurchaseLog(log.ID).WithMethod(req.Method)
			if err := repos.Ledger().Save(ctx, payment); err != nil {
				return err
			}
		}

		if due := log.TotalCost().Sub(req.Paid); due.GreaterThan(debtEpsilon) {
			debt, err := ledger.NewDebt(due, s.houseID, log.SupplierID)
			if err != nil {
				return err
			}
			debt.ForPurchaseLog(log.ID)
			if err := repos.Ledger().Save(ctx, debt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase recorded",
		zap.String("purchase_log_id", log.ID.String()),
		zap.String("supplier_id", log.SupplierID.String()),
		zap.String("material_id", log.MaterialID.String()),
		zap.String("total_cost", log.TotalCost().String()),
		zap.String("paid", req.Paid.String()))

	return &PurchaseView{
		ID:         log.ID,
		CreatedAt:  log.CreatedAt,
		SupplierID: log.SupplierID,
		MaterialID: log.MaterialID,
		Amount:     log.Amount,
		UnitCost:   log.UnitCost,
		TotalCost:  log.TotalCost(),
		Paid:       req.Paid,
		LotID:      lot.ID,
		Comment:    log.Comment,
	}, nil
}

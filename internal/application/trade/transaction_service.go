package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lotbook/backend/internal/application/uow"
	"github.com/lotbook/backend/internal/domain/ledger"
	"github.com/lotbook/backend/internal/domain/partner"
	"github.com/lotbook/backend/internal/domain/shared"
	"github.com/lotbook/backend/internal/domain/stock"
	"github.com/lotbook/backend/internal/domain/trade"
)

var (
	// A payment may exceed the derived total by at most one cent before it
	// is rejected as an overpayment.
	overpayEpsilon = decimal.NewFromFloat(0.01)
	// Residuals at or below half a cent are treated as settled and produce
	// no debt entry.
	debtEpsilon = decimal.NewFromFloat(0.005)
)

// TransactionService coordinates sale creation, reversal and reads. All
// multi-step mutations run through the transaction scope so stock, the
// transaction aggregate and the ledger commit or roll back together.
type TransactionService struct {
	scope        uow.TransactionScope
	transactions trade.TransactionRepository
	entries      ledger.EntryRepository
	registry     partner.Registry
	houseID      uuid.UUID
	logger       *zap.Logger
}

// NewTransactionService creates a transaction service. houseID identifies
// the owning business party; client debts and payments are booked against it.
func NewTransactionService(
	scope uow.TransactionScope,
	transactions trade.TransactionRepository,
	entries ledger.EntryRepository,
	registry partner.Registry,
	houseID uuid.UUID,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		scope:        scope,
		transactions: transactions,
		entries:      entries,
		registry:     registry,
		houseID:      houseID,
		logger:       logger,
	}
}

// Create records a sale: it allocates stock oldest-first for every requested
// line, derives the total from the charged prices, and books the payment and
// any residual debt in the ledger. The whole operation is atomic; any failure
// leaves no trace.
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionView, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Transaction requires at least one line")
	}
	if req.Paid.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Paid amount cannot be negative")
	}

	exists, err := s.registry.Exists(ctx, req.PartyID)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}
	if !exists {
		return nil, shared.NewDomainErrorf(shared.CodePartyNotFound, "Party %s is not registered", req.PartyID)
	}

	var (
		tx      *trade.Transaction
		written []ledger.Entry
	)
	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		tx, err = trade.NewTransaction(req.PartyID, req.Comment)
		if err != nil {
			return err
		}

		for _, lineReq := range req.Lines {
			if err := s.allocateLine(ctx, repos, tx, lineReq); err != nil {
				return err
			}
		}

		if err := tx.FinalizeTotal(); err != nil {
			return err
		}
		if req.Paid.GreaterThan(tx.TotalAmount.Add(overpayEpsilon)) {
			return shared.NewDomainErrorf(shared.CodeOverpaymentRejected,
				"Paid %s exceeds total %s", req.Paid, tx.TotalAmount)
		}

		if err := repos.Transactions().Save(ctx, tx); err != nil {
			return err
		}

		// Payment before debt: an upfront payment is already reflected in
		// the residual debt amount and must not net against it again.
		if req.Paid.GreaterThan(decimal.Zero) {
			payment, err := ledger.NewPayment(req.Paid, tx.PartyID, s.houseID)
			if err != nil {
				return err
			}
			payment.ForTransaction(tx.ID).WithMethod(req.Method)
			if err := repos.Ledger().Save(ctx, payment); err != nil {
				return err
			}
			written = append(written, *payment)
		}

		if due := tx.TotalAmount.Sub(req.Paid); due.GreaterThan(debtEpsilon) {
			debt, err := ledger.NewDebt(due, tx.PartyID, s.houseID)
			if err != nil {
				return err
			}
			debt.ForTransaction(tx.ID)
			if err := repos.Ledger().Save(ctx, debt); err != nil {
				return err
			}
			written = append(written, *debt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transaction created",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("party_id", tx.PartyID.String()),
		zap.String("total", tx.TotalAmount.String()),
		zap.String("paid", req.Paid.String()),
		zap.Int("lines", len(tx.Lines)))

	party, err := s.registry.FindByID(ctx, tx.PartyID)
	if err != nil && !shared.IsCode(err, shared.CodeNotFound) {
		return nil, err
	}
	view := ToTransactionView(tx, party, written)
	return &view, nil
}

// allocateLine resolves the charged price for one requested product, plans a
// FIFO allocation against the row-locked lots and records the consumptions on
// the transaction.
func (s *TransactionService) allocateLine(ctx context.Context, repos uow.Repositories, tx *trade.Transaction, req LineRequest) error {
	lots, err := repos.Lots().FindActiveByProductForUpdate(ctx, req.ProductID)
	if err != nil {
		return err
	}

	available := stock.TotalAvailable(lots)
	if available.LessThan(req.Amount) {
		return shared.NewDomainErrorf(shared.CodeInsufficientStock,
			"Product %s has %s available, requested %s", req.ProductID, available, req.Amount)
	}

	unitPrice := req.UnitPrice
	if unitPrice == nil {
		unitPrice = stock.LatestUnitPrice(lots)
	}
	if unitPrice == nil {
		return shared.NewDomainErrorf(shared.CodeNoPriceAvailable,
			"Product %s has no priced lot and no price was given", req.ProductID)
	}

	line, err := tx.AddLine(req.ProductID, req.Amount, *unitPrice)
	if err != nil {
		return err
	}

	plan, err := stock.PlanFIFO(req.Amount, lots)
	if err != nil {
		return err
	}
	if !plan.FullyAllocated {
		// Availability was checked above; a shortfall here means the lot
		// set changed underneath us.
		return shared.NewDomainErrorf(shared.CodeAllocationViolation,
			"Product %s allocation short by %s", req.ProductID, plan.Shortfall)
	}

	mutable := make([]*stock.Lot, len(lots))
	for i := range lots {
		mutable[i] = &lots[i]
	}
	if err := stock.ApplyPlan(mutable, plan); err != nil {
		return err
	}

	for _, c := range plan.Consumptions {
		if err := tx.RecordAllocation(line.ID, c.LotID, c.Amount); err != nil {
			return err
		}
	}
	return repos.Lots().SaveAll(ctx, mutable)
}

// Revert undoes a transaction: every allocated amount is restored to its
// originating lot, the transaction's ledger entries are cancelled and the
// transaction moves to its terminal REVERSED state. A second revert of the
// same transaction fails without touching anything.
func (s *TransactionService) Revert(ctx context.Context, transactionID uuid.UUID) (*TransactionView, error) {
	var tx *trade.Transaction
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		tx, err = repos.Transactions().FindByID(ctx, transactionID)
		if err != nil {
			if shared.IsCode(err, shared.CodeNotFound) {
				return shared.NewDomainErrorf(shared.CodeTransactionNotFound, "Transaction %s not found", transactionID)
			}
			return err
		}

		restorable := tx.ActiveAllocations()
		if err := tx.Reverse(); err != nil {
			return err
		}

		restored := make([]*stock.Lot, 0, len(restorable))
		for _, alloc := range restorable {
			lot, err := repos.Lots().FindByIDForUpdate(ctx, alloc.LotID)
			if err != nil {
				return err
			}
			if err := lot.Restore(alloc.Amount); err != nil {
				return err
			}
			restored = append(restored, lot)
		}
		if err := repos.Lots().SaveAll(ctx, restored); err != nil {
			return err
		}

		if err := repos.Ledger().CancelByTransaction(ctx, tx.ID); err != nil {
			return err
		}
		return repos.Transactions().Save(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transaction reversed",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("party_id", tx.PartyID.String()))

	return s.Get(ctx, transactionID)
}

// Get returns the fully composed transaction view, including its ledger
// entries netted into a finance summary.
func (s *TransactionService) Get(ctx context.Context, transactionID uuid.UUID) (*TransactionView, error) {
	tx, err := s.transactions.FindByID(ctx, transactionID)
	if err != nil {
		if shared.IsCode(err, shared.CodeNotFound) {
			return nil, shared.NewDomainErrorf(shared.CodeTransactionNotFound, "Transaction %s not found", transactionID)
		}
		return nil, err
	}

	entries, err := s.entries.FindByTransaction(ctx, tx.ID)
	if err != nil {
		return nil, err
	}

	party, err := s.registry.FindByID(ctx, tx.PartyID)
	if err != nil && !shared.IsCode(err, shared.CodeNotFound) {
		return nil, err
	}

	view := ToTransactionView(tx, party, entries)
	return &view, nil
}

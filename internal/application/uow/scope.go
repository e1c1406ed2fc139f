package uow

import (
	"context"

	"github.com/lotbook/backend/internal/domain/ledger"
	"github.com/lotbook/backend/internal/domain/purchase"
	"github.com/lotbook/backend/internal/domain/stock"
	"github.com/lotbook/backend/internal/domain/trade"
)

// TransactionScope is the engine's atomic unit of work. Every multi-step
// mutation (sale creation, reversal, purchase intake) runs through Execute:
// all repository operations inside the function share one database
// transaction and commit or roll back together. No intermediate state is
// observable to other callers.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to the repositories participating in the
// current transaction. All of them share the same underlying transaction.
type Repositories interface {
	Lots() stock.LotRepository
	Transactions() trade.TransactionRepository
	Ledger() ledger.EntryRepository
	PurchaseLogs() purchase.PurchaseLogRepository
}

package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/lotbook/backend/internal/application/uow"
	"github.com/lotbook/backend/internal/domain/ledger"
	"github.com/lotbook/backend/internal/domain/purchase"
	"github.com/lotbook/backend/internal/domain/stock"
	"github.com/lotbook/backend/internal/domain/trade"
)

// GormTransactionScope implements uow.TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos uow.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// gormRepositories provides access to all repositories within a transaction
type gormRepositories struct {
	tx *gorm.DB
}

// Lots returns the lot repository scoped to the current transaction
func (r *gormRepositories) Lots() stock.LotRepository {
	return NewGormLotRepository(r.tx)
}

// Transactions returns the transaction repository scoped to the current transaction
func (r *gormRepositories) Transactions() trade.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// Ledger returns the ledger repository scoped to the current transaction
func (r *gormRepositories) Ledger() ledger.EntryRepository {
	return NewGormEntryRepository(r.tx)
}

// PurchaseLogs returns the purchase log repository scoped to the current transaction
func (r *gormRepositories) PurchaseLogs() purchase.PurchaseLogRepository {
	return NewGormPurchaseLogRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ uow.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormRepositories implements Repositories
var _ uow.Repositories = (*gormRepositories)(nil)

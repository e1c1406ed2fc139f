package memory

import (
	"context"

	"github.com/lotbook/backend/internal/application/uow"
	"github.com/lotbook/backend/internal/domain/ledger"
	"github.com/lotbook/backend/internal/domain/purchase"
	"github.com/lotbook/backend/internal/domain/stock"
	"github.com/lotbook/backend/internal/domain/trade"
)

// Scope implements uow.TransactionScope over the in-memory store. Execute
// takes the store's write lock for the whole unit of work, snapshots the
// state, and restores the snapshot when the function fails. That gives the
// same guarantee a database transaction does: no partial state survives a
// failure, and no other caller observes intermediate state.
type Scope struct {
	store *Store
}

// NewScope creates a transaction scope over the store
func NewScope(store *Store) *Scope {
	return &Scope{store: store}
}

// Execute runs fn atomically against the store
func (s *Scope) Execute(ctx context.Context, fn func(repos uow.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	snap := s.store.take()
	repos := &txRepositories{
		lots:         &LotRepository{base{store: s.store, inTx: true}},
		transactions: &TransactionRepository{base{store: s.store, inTx: true}},
		entries:      &EntryRepository{base{store: s.store, inTx: true}},
		purchaseLogs: &PurchaseLogRepository{base{store: s.store, inTx: true}},
	}

	if err := fn(repos); err != nil {
		s.store.restore(snap)
		return err
	}
	return nil
}

// txRepositories bundles the in-transaction repositories
type txRepositories struct {
	lots         *LotRepository
	transactions *TransactionRepository
	entries      *EntryRepository
	purchaseLogs *PurchaseLogRepository
}

func (r *txRepositories) Lots() stock.LotRepository { return r.lots }

func (r *txRepositories) Transactions() trade.TransactionRepository { return r.transactions }

func (r *txRepositories) Ledger() ledger.EntryRepository { return r.entries }

func (r *txRepositories) PurchaseLogs() purchase.PurchaseLogRepository { return r.purchaseLogs }

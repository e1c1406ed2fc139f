package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotbook/backend/internal/domain/ledger"
	"github.com/lotbook/backend/internal/domain/purchase"
	"github.com/lotbook/backend/internal/domain/shared"
	"github.com/lotbook/backend/internal/domain/stock"
	"github.com/lotbook/backend/internal/domain/trade"
)

// base holds the store reference shared by all repositories. Repositories
// created by the scope run with inTx set: the scope already holds the write
// lock, so they must not lock again.
type base struct {
	store *Store
	inTx  bool
}

func (b base) rlock() {
	if !b.inTx {
		b.store.mu.RLock()
	}
}

func (b base) runlock() {
	if !b.inTx {
		b.store.mu.RUnlock()
	}
}

func (b base) lock() {
	if !b.inTx {
		b.store.mu.Lock()
	}
}

func (b base) unlock() {
	if !b.inTx {
		b.store.mu.Unlock()
	}
}

// LotRepository is the in-memory stock.LotRepository
type LotRepository struct{ base }

// NewLotRepository creates a standalone lot repository over the store
func NewLotRepository(store *Store) *LotRepository {
	return &LotRepository{base{store: store}}
}

func (r *LotRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Lot, error) {
	r.rlock()
	defer r.runlock()
	lot, ok := r.store.lots[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneLot(lot), nil
}

// FindByIDForUpdate behaves like FindByID. Inside a scope the store's write
// lock already excludes every other writer, which is the strongest possible
// row lock.
func (r *LotRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*stock.Lot, error) {
	return r.FindByID(ctx, id)
}

func (r *LotRepository) FindActiveByProduct(ctx context.Context, productID uuid.UUID) ([]stock.Lot, error) {
	r.rlock()
	defer r.runlock()
	out := make([]stock.Lot, 0)
	for _, lot := range r.store.lots {
		if lot.ProductID == productID && lot.Active {
			out = append(out, *cloneLot(lot))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *LotRepository) FindActiveByProductForUpdate(ctx context.Context, productID uuid.UUID) ([]stock.Lot, error) {
	return r.FindActiveByProduct(ctx, productID)
}

func (r *LotRepository) TotalAvailable(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	lots, err := r.FindActiveByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.TotalAvailable(lots), nil
}

func (r *LotRepository) Save(ctx context.Context, lot *stock.Lot) error {
	r.lock()
	defer r.unlock()
	r.store.lots[lot.ID] = cloneLot(lot)
	return nil
}

func (r *LotRepository) SaveAll(ctx context.Context, lots []*stock.Lot) error {
	r.lock()
	defer r.unlock()
	for _, lot := range lots {
		r.store.lots[lot.ID] = cloneLot(lot)
	}
	return nil
}

// TransactionRepository is the in-memory trade.TransactionRepository
type TransactionRepository struct{ base }

// NewTransactionRepository creates a standalone transaction repository
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{base{store: store}}
}

func (r *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Transaction, error) {
	r.rlock()
	defer r.runlock()
	tx, ok := r.store.transactions[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneTransaction(tx), nil
}

func (r *TransactionRepository) Save(ctx context.Context, tx *trade.Transaction) error {
	r.lock()
	defer r.unlock()
	r.store.transactions[tx.ID] = cloneTransaction(tx)
	return nil
}

// EntryRepository is the in-memory ledger.EntryRepository
type EntryRepository struct{ base }

// NewEntryRepository creates a standalone ledger repository
func NewEntryRepository(store *Store) *EntryRepository {
	return &EntryRepository{base{store: store}}
}

func (r *EntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	r.rlock()
	defer r.runlock()
	entry, ok := r.store.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneEntry(entry), nil
}

func (r *EntryRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]ledger.Entry, error) {
	return r.filter(func(e *ledger.Entry) bool {
		return e.TransactionID != nil && *e.TransactionID == transactionID
	})
}

func (r *EntryRepository) FindByParty(ctx context.Context, partyID uuid.UUID) ([]ledger.Entry, error) {
	return r.filter(func(e *ledger.Entry) bool {
		return e.FromParty == partyID || e.ToParty == partyID
	})
}

// filter walks entries in append order
func (r *EntryRepository) filter(match func(*ledger.Entry) bool) ([]ledger.Entry, error) {
	r.rlock()
	defer r.runlock()
	out := make([]ledger.Entry, 0)
	for _, id := range r.store.entryOrder {
		entry := r.store.entries[id]
		if match(entry) {
			out = append(out, *cloneEntry(entry))
		}
	}
	return out, nil
}

func (r *EntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	r.lock()
	defer r.unlock()
	if _, exists := r.store.entries[entry.ID]; !exists {
		r.store.entryOrder = append(r.store.entryOrder, entry.ID)
	}
	r.store.entries[entry.ID] = cloneEntry(entry)
	return nil
}

func (r *EntryRepository) CancelByTransaction(ctx context.Context, transactionID uuid.UUID) error {
	r.lock()
	defer r.unlock()
	for _, entry := range r.store.entries {
		if entry.TransactionID != nil && *entry.TransactionID == transactionID {
			entry.Cancel()
		}
	}
	return nil
}

// PurchaseLogRepository is the in-memory purchase.PurchaseLogRepository
type PurchaseLogRepository struct{ base }

// NewPurchaseLogRepository creates a standalone purchase log repository
func NewPurchaseLogRepository(store *Store) *PurchaseLogRepository {
	return &PurchaseLogRepository{base{store: store}}
}

func (r *PurchaseLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseLog, error) {
	r.rlock()
	defer r.runlock()
	log, ok := r.store.purchaseLogs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return clonePurchaseLog(log), nil
}

func (r *PurchaseLogRepository) Save(ctx context.Context, log *purchase.PurchaseLog) error {
	r.lock()
	defer r.unlock()
	r.store.purchaseLogs[log.ID] = clonePurchaseLog(log)
	return nil
}

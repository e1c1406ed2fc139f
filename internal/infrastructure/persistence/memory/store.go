// Package memory provides an in-memory implementation of the persistence
// contracts. It backs tests and local development: repositories hand out deep
// copies so callers cannot mutate stored state in place, and the transaction
// scope snapshots the whole store so a failed unit of work rolls back exactly
// like a database transaction would.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lotbook/backend/internal/domain/ledger"
	"github.com/lotbook/backend/internal/domain/partner"
	"github.com/lotbook/backend/internal/domain/purchase"
	"github.com/lotbook/backend/internal/domain/stock"
	"github.com/lotbook/backend/internal/domain/trade"
)

// Store is the shared in-memory state. All access goes through the
// repositories and the scope; the mutex serializes writers the way row locks
// would in a real database.
type Store struct {
	mu           sync.RWMutex
	lots         map[uuid.UUID]*stock.Lot
	transactions map[uuid.UUID]*trade.Transaction
	entries      map[uuid.UUID]*ledger.Entry
	entryOrder   []uuid.UUID // preserves ledger append order
	purchaseLogs map[uuid.UUID]*purchase.PurchaseLog
	parties      map[uuid.UUID]*partner.Party
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		lots:         make(map[uuid.UUID]*stock.Lot),
		transactions: make(map[uuid.UUID]*trade.Transaction),
		entries:      make(map[uuid.UUID]*ledger.Entry),
		entryOrder:   make([]uuid.UUID, 0),
		purchaseLogs: make(map[uuid.UUID]*purchase.PurchaseLog),
		parties:      make(map[uuid.UUID]*partner.Party),
	}
}

// SeedParty registers a party directly, bypassing the repositories. Intended
// for tests and development fixtures.
func (s *Store) SeedParty(p *partner.Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parties[p.ID] = cloneParty(p)
}

// SeedLot stores a lot directly. Intended for tests and development fixtures.
func (s *Store) SeedLot(l *stock.Lot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lots[l.ID] = cloneLot(l)
}

// snapshot captures the full store state for rollback
type snapshot struct {
	lots         map[uuid.UUID]*stock.Lot
	transactions map[uuid.UUID]*trade.Transaction
	entries      map[uuid.UUID]*ledger.Entry
	entryOrder   []uuid.UUID
	purchaseLogs map[uuid.UUID]*purchase.PurchaseLog
}

// take must be called with the write lock held
func (s *Store) take() *snapshot {
	snap := &snapshot{
		lots:         make(map[uuid.UUID]*stock.Lot, len(s.lots)),
		transactions: make(map[uuid.UUID]*trade.Transaction, len(s.transactions)),
		entries:      make(map[uuid.UUID]*ledger.Entry, len(s.entries)),
		entryOrder:   append([]uuid.UUID(nil), s.entryOrder...),
		purchaseLogs: make(map[uuid.UUID]*purchase.PurchaseLog, len(s.purchaseLogs)),
	}
	for id, l := range s.lots {
		snap.lots[id] = cloneLot(l)
	}
	for id, t := range s.transactions {
		snap.transactions[id] = cloneTransaction(t)
	}
	for id, e := range s.entries {
		snap.entries[id] = cloneEntry(e)
	}
	for id, p := range s.purchaseLogs {
		snap.purchaseLogs[id] = clonePurchaseLog(p)
	}
	return snap
}

// restore must be called with the write lock held
func (s *Store) restore(snap *snapshot) {
	s.lots = snap.lots
	s.transactions = snap.transactions
	s.entries = snap.entries
	s.entryOrder = snap.entryOrder
	s.purchaseLogs = snap.purchaseLogs
}

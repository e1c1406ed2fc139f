package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotbook/backend/internal/domain/shared"
)

// EntryKind distinguishes the two ledger record kinds
type EntryKind string

const (
	EntryKindDebt    EntryKind = "DEBT"
	EntryKindPayment EntryKind = "PAYMENT"
)

// IsValid checks if the kind is a valid EntryKind
func (k EntryKind) IsValid() bool {
	return k == EntryKindDebt || k == EntryKindPayment
}

// String returns the string representation
func (k EntryKind) String() string {
	return string(k)
}

// Entry is an append-only ledger record. Debts record an amount owed from
// one party to another; payments record an amount transferred. An entry is
// optionally tied to the transaction or purchase log that produced it, and
// is only ever mutated through Cancel (soft-invalidation by reversal).
type Entry struct {
	shared.BaseEntity
	Kind          EntryKind
	Amount        decimal.Decimal // always > 0; direction comes from the parties
	FromParty     uuid.UUID
	ToParty       uuid.UUID
	TransactionID *uuid.UUID
	PurchaseLogID *uuid.UUID
	Method        string // payment-method tag (cash, transfer, ...)
	Active        bool
}

func newEntry(kind EntryKind, amount decimal.Decimal, fromParty, toParty uuid.UUID) (*Entry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Ledger amount must be positive")
	}
	if fromParty == uuid.Nil || toParty == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Ledger entry requires both parties")
	}
	if fromParty == toParty {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Ledger entry parties must differ")
	}
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       kind,
		Amount:     amount,
		FromParty:  fromParty,
		ToParty:    toParty,
		Active:     true,
	}, nil
}

// NewDebt creates a debt entry: fromParty owes toParty the amount
func NewDebt(amount decimal.Decimal, fromParty, toParty uuid.UUID) (*Entry, error) {
	return newEntry(EntryKindDebt, amount, fromParty, toParty)
}

// NewPayment creates a payment entry: fromParty paid toParty the amount
func NewPayment(amount decimal.Decimal, fromParty, toParty uuid.UUID) (*Entry, error) {
	return newEntry(EntryKindPayment, amount, fromParty, toParty)
}

// ForTransaction ties the entry to the transaction that produced it
func (e *Entry) ForTransaction(transactionID uuid.UUID) *Entry {
	e.TransactionID = &transactionID
	return e
}

// ForPurchaseLog ties the entry to the purchase log that produced it
func (e *Entry) ForPurchaseLog(purchaseLogID uuid.UUID) *Entry {
	e.PurchaseLogID = &purchaseLogID
	return e
}

// WithMethod tags the entry with a payment method
func (e *Entry) WithMethod(method string) *Entry {
	e.Method = method
	return e
}

// Cancel soft-invalidates the entry. Cancelled entries stay in the ledger
// for history but are excluded from every balance computation.
func (e *Entry) Cancel() {
	e.Active = false
	e.UpdatedAt = time.Now()
}

// IsDebt returns true for debt entries
func (e *Entry) IsDebt() bool {
	return e.Kind == EntryKindDebt
}

// IsPayment returns true for payment entries
func (e *Entry) IsPayment() bool {
	return e.Kind == EntryKindPayment
}

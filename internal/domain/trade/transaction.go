package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotbook/backend/internal/domain/shared"
)

// TransactionStatus represents the lifecycle state of a transaction
type TransactionStatus string

const (
	TransactionStatusActive   TransactionStatus = "ACTIVE"
	TransactionStatusReversed TransactionStatus = "REVERSED" // terminal
)

// IsValid checks if the status is a valid TransactionStatus
func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusActive || s == TransactionStatusReversed
}

// String returns the string representation of TransactionStatus
func (s TransactionStatus) String() string {
	return string(s)
}

// Allocation records how much of a line was satisfied from a specific lot.
// Allocations are flagged inactive once a reversal has restored them, so a
// transaction can never be restored twice.
type Allocation struct {
	ID        uuid.UUID
	LineID    uuid.UUID
	LotID     uuid.UUID
	Amount    decimal.Decimal
	Active    bool
	CreatedAt time.Time
}

// Line is one distinct product in a transaction. The charged unit price is
// resolved at creation time from the request (or the latest lot price) and
// is deliberately independent of which lots end up satisfying the line.
type Line struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	ProductID     uuid.UUID
	Amount        decimal.Decimal // requested quantity
	UnitPrice     decimal.Decimal // charged price per unit
	Allocations   []Allocation
	CreatedAt     time.Time
}

// AllocatedTotal sums the active allocation amounts of the line
func (l *Line) AllocatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range l.Allocations {
		if a.Active {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// Contribution is the line's monetary contribution to the transaction total
func (l *Line) Contribution() decimal.Decimal {
	return l.Amount.Mul(l.UnitPrice)
}

// Transaction is the aggregate root for one sale. It owns its lines and
// their allocations; ledger entries reference it by id only.
type Transaction struct {
	shared.BaseEntity
	PartyID     uuid.UUID
	Lines       []Line
	TotalAmount decimal.Decimal // derived from the lines, never set by callers
	Comment     string
	Status      TransactionStatus
	ReversedAt  *time.Time
}

// NewTransaction creates a transaction header with a zero total. The total
// is derived once lines and allocations are recorded, via FinalizeTotal.
func NewTransaction(partyID uuid.UUID, comment string) (*Transaction, error) {
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Party ID cannot be empty")
	}
	return &Transaction{
		BaseEntity:  shared.NewBaseEntity(),
		PartyID:     partyID,
		Lines:       make([]Line, 0),
		TotalAmount: decimal.Zero,
		Comment:     comment,
		Status:      TransactionStatusActive,
	}, nil
}

// AddLine adds a line for a distinct product with its resolved unit price
func (t *Transaction) AddLine(productID uuid.UUID, amount, unitPrice decimal.Decimal) (*Line, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Line amount must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unit price cannot be negative")
	}
	for _, line := range t.Lines {
		if line.ProductID == productID {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Duplicate product in transaction lines")
		}
	}

	t.Lines = append(t.Lines, Line{
		ID:            uuid.New(),
		TransactionID: t.ID,
		ProductID:     productID,
		Amount:        amount,
		UnitPrice:     unitPrice,
		Allocations:   make([]Allocation, 0),
		CreatedAt:     time.Now(),
	})
	t.UpdatedAt = time.Now()
	return &t.Lines[len(t.Lines)-1], nil
}

// RecordAllocation attaches a lot consumption to a line
func (t *Transaction) RecordAllocation(lineID, lotID uuid.UUID, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Allocation amount must be positive")
	}
	line := t.findLine(lineID)
	if line == nil {
		return shared.NewDomainErrorf(shared.CodeAllocationViolation, "Line %s not found on transaction", lineID)
	}

	line.Allocations = append(line.Allocations, Allocation{
		ID:        uuid.New(),
		LineID:    lineID,
		LotID:     lotID,
		Amount:    amount,
		Active:    true,
		CreatedAt: time.Now(),
	})
	t.UpdatedAt = time.Now()
	return nil
}

// FinalizeTotal verifies every line is fully allocated and derives the
// transaction total from the lines' requested amounts and charged prices.
func (t *Transaction) FinalizeTotal() error {
	total := decimal.Zero
	for i := range t.Lines {
		line := &t.Lines[i]
		if !line.AllocatedTotal().Equal(line.Amount) {
			return shared.NewDomainErrorf(shared.CodeAllocationViolation,
				"Line %s allocated %s of requested %s", line.ID, line.AllocatedTotal(), line.Amount)
		}
		total = total.Add(line.Contribution())
	}
	t.TotalAmount = total
	t.UpdatedAt = time.Now()
	return nil
}

// Reverse transitions the transaction to its terminal REVERSED state and
// deactivates all allocations. Restoring the lots and cancelling the ledger
// entries is coordinated by the application service within the same unit of
// work.
func (t *Transaction) Reverse() error {
	if t.Status == TransactionStatusReversed {
		return shared.NewDomainError(shared.CodeAlreadyReversed, "Transaction has already been reversed")
	}

	now := time.Now()
	for i := range t.Lines {
		for j := range t.Lines[i].Allocations {
			t.Lines[i].Allocations[j].Active = false
		}
	}
	t.Status = TransactionStatusReversed
	t.ReversedAt = &now
	t.UpdatedAt = now
	return nil
}

// IsReversed returns true once the transaction reached its terminal state
func (t *Transaction) IsReversed() bool {
	return t.Status == TransactionStatusReversed
}

// ActiveAllocations returns every allocation that has not been reversed yet
func (t *Transaction) ActiveAllocations() []Allocation {
	out := make([]Allocation, 0)
	for _, line := range t.Lines {
		for _, a := range line.Allocations {
			if a.Active {
				out = append(out, a)
			}
		}
	}
	return out
}

func (t *Transaction) findLine(lineID uuid.UUID) *Line {
	for i := range t.Lines {
		if t.Lines[i].ID == lineID {
			return &t.Lines[i]
		}
	}
	return nil
}

package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotbook/backend/internal/domain/ledger"
	"github.com/lotbook/backend/internal/domain/partner"
	"github.com/lotbook/backend/internal/domain/trade"
)

// LineRequest is one requested product in a sale. UnitPrice overrides the
// default price; when nil the most recently created active lot's price is
// charged.
type LineRequest struct {
	ProductID uuid.UUID        `json:"product_id"`
	Amount    decimal.Decimal  `json:"amount"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateTransactionRequest is the input for creating a sale
type CreateTransactionRequest struct {
	PartyID uuid.UUID       `json:"party_id"`
	Lines   []LineRequest   `json:"lines"`
	Paid    decimal.Decimal `json:"paid"`
	Method  string          `json:"method,omitempty"`
	Comment string          `json:"comment,omitempty"`
}

// AllocationView shows one lot consumption of a line
type AllocationView struct {
	ID     uuid.UUID       `json:"id"`
	LotID  uuid.UUID       `json:"lot_id"`
	Amount decimal.Decimal `json:"amount"`
	Active bool            `json:"active"`
}

// LineView shows one line with its allocations
type LineView struct {
	ID          uuid.UUID        `json:"id"`
	ProductID   uuid.UUID        `json:"product_id"`
	Amount      decimal.Decimal  `json:"amount"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Total       decimal.Decimal  `json:"total"`
	Allocations []AllocationView `json:"allocations"`
}

// PartySummary is the counterparty display info on a view
type PartySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Kind string    `json:"kind"`
}

// TransactionView is the fully composed read model of a transaction
type TransactionView struct {
	ID          uuid.UUID             `json:"id"`
	CreatedAt   time.Time             `json:"created_at"`
	ReversedAt  *time.Time            `json:"reversed_at,omitempty"`
	Status      string                `json:"status"`
	Comment     string                `json:"comment,omitempty"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	Party       PartySummary          `json:"party"`
	Lines       []LineView            `json:"lines"`
	Finance     ledger.FinanceSummary `json:"finance"`
}

// ToTransactionView composes the read model from the aggregate, its ledger
// entries and the resolved counterparty.
func ToTransactionView(tx *trade.Transaction, party *partner.Party, entries []ledger.Entry) TransactionView {
	lines := make([]LineView, len(tx.Lines))
	for i, line := range tx.Lines {
		allocations := make([]AllocationView, len(line.Allocations))
		for j, a := range line.Allocations {
			allocations[j] = AllocationView{
				ID:     a.ID,
				LotID:  a.LotID,
				Amount: a.Amount,
				Active: a.Active,
			}
		}
		lines[i] = LineView{
			ID:          line.ID,
			ProductID:   line.ProductID,
			Amount:      line.Amount,
			UnitPrice:   line.UnitPrice,
			Total:       line.Contribution(),
			Allocations: allocations,
		}
	}

	summary := PartySummary{ID: tx.PartyID}
	if party != nil {
		summary.Name = party.Name
		summary.Kind = party.Kind.String()
	}

	return TransactionView{
		ID:          tx.ID,
		CreatedAt:   tx.CreatedAt,
		ReversedAt:  tx.ReversedAt,
		Status:      tx.Status.String(),
		Comment:     tx.Comment,
		TotalAmount: tx.TotalAmount,
		Party:       summary,
		Lines:       lines,
		Finance:     ledger.TransactionFinance(entries),
	}
}

package memory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotbook/backend/internal/domain/ledger"
	"github.com/lotbook/backend/internal/domain/partner"
	"github.com/lotbook/backend/internal/domain/purchase"
	"github.com/lotbook/backend/internal/domain/stock"
	"github.com/lotbook/backend/internal/domain/trade"
)

// Deep copies keep stored state isolated from callers, the same way rows
// read from a database are detached from it.

func cloneDecimalPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func cloneUUIDPtr(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneLot(l *stock.Lot) *stock.Lot {
	c := *l
	c.UnitCost = cloneDecimalPtr(l.UnitCost)
	c.UnitPrice = cloneDecimalPtr(l.UnitPrice)
	return &c
}

func cloneTransaction(t *trade.Transaction) *trade.Transaction {
	c := *t
	if t.ReversedAt != nil {
		at := *t.ReversedAt
		c.ReversedAt = &at
	}
	c.Lines = make([]trade.Line, len(t.Lines))
	for i, line := range t.Lines {
		cl := line
		cl.Allocations = append([]trade.Allocation(nil), line.Allocations...)
		c.Lines[i] = cl
	}
	return &c
}

func cloneEntry(e *ledger.Entry) *ledger.Entry {
	c := *e
	c.TransactionID = cloneUUIDPtr(e.TransactionID)
	c.PurchaseLogID = cloneUUIDPtr(e.PurchaseLogID)
	return &c
}

func clonePurchaseLog(p *purchase.PurchaseLog) *purchase.PurchaseLog {
	c := *p
	return &c
}

func cloneParty(p *partner.Party) *partner.Party {
	c := *p
	return &c
}

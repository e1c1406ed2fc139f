package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotbook/backend/internal/domain/shared/valueobject"
)

// Balance computation nets debts against payments per counterparty. The
// temporal rule is deliberate and exact: a payment reduces a debt only when
// it was created strictly AFTER the bucket's earliest debt. A payment made
// at or before debt creation is an upfront payment already baked into the
// debt's net amount, and subtracting it again would double-count it.

// FinanceSummary is the per-transaction finance view {debt, paid, due}
type FinanceSummary struct {
	Debt valueobject.Money `json:"debt"`
	Paid valueobject.Money `json:"paid"`
	Due  valueobject.Money `json:"due"`
}

// bucket accumulates the entries sharing one netting key
type bucket struct {
	debtTotal    decimal.Decimal
	earliestDebt time.Time
	hasDebt      bool
	payments     []Entry
}

func (b *bucket) addDebt(e Entry) {
	b.debtTotal = b.debtTotal.Add(e.Amount)
	if !b.hasDebt || e.CreatedAt.Before(b.earliestDebt) {
		b.earliestDebt = e.CreatedAt
	}
	b.hasDebt = true
}

// outstanding nets the bucket's payments against its debts. Payments are
// signed by the caller: negative amounts reduce the debt, positive add back.
func (b *bucket) outstanding(sign func(Entry) decimal.Decimal) decimal.Decimal {
	if !b.hasDebt {
		return decimal.Zero
	}
	out := b.debtTotal
	for _, p := range b.payments {
		if p.CreatedAt.After(b.earliestDebt) {
			out = out.Add(sign(p))
		}
	}
	return out
}

// ClientReceivable computes the outstanding amount a client owes the house.
// Debts are grouped by transaction (a generic per-client group when no
// transaction is attached); each group is floored at zero so an overpaid
// transaction never offsets another one.
func ClientReceivable(clientID uuid.UUID, entries []Entry) decimal.Decimal {
	buckets := make(map[uuid.UUID]*bucket)
	get := func(key uuid.UUID) *bucket {
		b, ok := buckets[key]
		if !ok {
			b = &bucket{debtTotal: decimal.Zero}
			buckets[key] = b
		}
		return b
	}

	for _, e := range entries {
		if !e.Active {
			continue
		}
		key := uuid.Nil
		if e.TransactionID != nil {
			key = *e.TransactionID
		}
		switch {
		case e.IsDebt() && e.FromParty == clientID:
			get(key).addDebt(e)
		case e.IsPayment() && e.FromParty == clientID:
			b := get(key)
			b.payments = append(b.payments, e)
		}
	}

	total := decimal.Zero
	for _, b := range buckets {
		out := b.outstanding(func(p Entry) decimal.Decimal { return p.Amount.Neg() })
		if out.GreaterThan(decimal.Zero) {
			total = total.Add(out)
		}
	}
	return total
}

// SupplierPayable computes the outstanding amount the house owes a supplier.
// Debts and payments are bucketed by purchase log (a generic per-supplier
// bucket when none is attached). Supplier-bound payments subtract,
// supplier-originated refunds add back; only buckets with positive
// outstanding contribute.
func SupplierPayable(supplierID uuid.UUID, entries []Entry) decimal.Decimal {
	buckets := make(map[uuid.UUID]*bucket)
	get := func(key uuid.UUID) *bucket {
		b, ok := buckets[key]
		if !ok {
			b = &bucket{debtTotal: decimal.Zero}
			buckets[key] = b
		}
		return b
	}

	for _, e := range entries {
		if !e.Active {
			continue
		}
		key := uuid.Nil
		if e.PurchaseLogID != nil {
			key = *e.PurchaseLogID
		}
		switch {
		case e.IsDebt() && e.ToParty == supplierID:
			get(key).addDebt(e)
		case e.IsPayment() && (e.ToParty == supplierID || e.FromParty == supplierID):
			b := get(key)
			b.payments = append(b.payments, e)
		}
	}

	total := decimal.Zero
	for _, b := range buckets {
		out := b.outstanding(func(p Entry) decimal.Decimal {
			if p.ToParty == supplierID {
				return p.Amount.Neg() // house paid the supplier
			}
			return p.Amount // supplier refunded the house
		})
		if out.GreaterThan(decimal.Zero) {
			total = total.Add(out)
		}
	}
	return total
}

// TransactionFinance computes the {debt, paid, due} summary over one
// transaction's ledger entries, applying the same temporal netting as the
// aggregate computations.
func TransactionFinance(entries []Entry) FinanceSummary {
	b := &bucket{debtTotal: decimal.Zero}
	paid := valueobject.Zero()

	for _, e := range entries {
		if !e.Active {
			continue
		}
		if e.IsDebt() {
			b.addDebt(e)
		} else {
			b.payments = append(b.payments, e)
			paid = paid.MustAdd(valueobject.NewDefaultMoney(e.Amount))
		}
	}

	due := valueobject.NewDefaultMoney(b.outstanding(func(p Entry) decimal.Decimal { return p.Amount.Neg() }))
	if due.IsNegative() {
		due = valueobject.Zero()
	}
	return FinanceSummary{
		Debt: valueobject.NewDefaultMoney(b.debtTotal),
		Paid: paid,
		Due:  due,
	}
}

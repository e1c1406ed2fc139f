package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func debtAt(t *testing.T, amount string, from, to uuid.UUID, at time.Time) Entry {
	t.Helper()
	e, err := NewDebt(dec(amount), from, to)
	require.NoError(t, err)
	e.CreatedAt = at
	return *e
}

func paymentAt(t *testing.T, amount string, from, to uuid.UUID, at time.Time) Entry {
	t.Helper()
	e, err := NewPayment(dec(amount), from, to)
	require.NoError(t, err)
	e.CreatedAt = at
	return *e
}

func TestClientReceivable(t *testing.T) {
	client := uuid.New()
	house := uuid.New()
	txID := uuid.New()
	t1 := time.Now()

	t.Run("payment strictly after the debt reduces it", func(t *testing.T) {
		debt := debtAt(t, "100", client, house, t1)
		debt.TransactionID = &txID
		pay := paymentAt(t, "40", client, house, t1.Add(time.Second))
		pay.TransactionID = &txID

		out := ClientReceivable(client, []Entry{debt, pay})
		assert.True(t, out.Equal(dec("60")))
	})

	t.Run("payment before the debt is already netted into it", func(t *testing.T) {
		debt := debtAt(t, "100", client, house, t1)
		debt.TransactionID = &txID
		pay := paymentAt(t, "40", client, house, t1.Add(-time.Second))
		pay.TransactionID = &txID

		out := ClientReceivable(client, []Entry{debt, pay})
		assert.True(t, out.Equal(dec("100")))
	})

	t.Run("payment at exactly the debt timestamp does not net", func(t *testing.T) {
		// The boundary is strict: only strictly-after payments count.
		debt := debtAt(t, "100", client, house, t1)
		debt.TransactionID = &txID
		pay := paymentAt(t, "40", client, house, t1)
		pay.TransactionID = &txID

		out := ClientReceivable(client, []Entry{debt, pay})
		assert.True(t, out.Equal(dec("100")))
	})

	t.Run("overpaid transaction does not offset another", func(t *testing.T) {
		otherTx := uuid.New()
		debt1 := debtAt(t, "100", client, house, t1)
		debt1.TransactionID = &txID
		pay1 := paymentAt(t, "150", client, house, t1.Add(time.Second))
		pay1.TransactionID = &txID
		debt2 := debtAt(t, "80", client, house, t1)
		debt2.TransactionID = &otherTx

		out := ClientReceivable(client, []Entry{debt1, pay1, debt2})
		assert.True(t, out.Equal(dec("80")))
	})

	t.Run("cancelled entries are excluded", func(t *testing.T) {
		debt := debtAt(t, "100", client, house, t1)
		debt.TransactionID = &txID
		debt.Cancel()

		out := ClientReceivable(client, []Entry{debt})
		assert.True(t, out.IsZero())
	})

	t.Run("other clients' entries are ignored", func(t *testing.T) {
		other := uuid.New()
		debt := debtAt(t, "100", other, house, t1)

		out := ClientReceivable(client, []Entry{debt})
		assert.True(t, out.IsZero())
	})
}

func TestSupplierPayable(t *testing.T) {
	supplier := uuid.New()
	house := uuid.New()
	logID := uuid.New()
	t1 := time.Now()

	t.Run("payment after the debt reduces the bucket", func(t *testing.T) {
		debt := debtAt(t, "200", house, supplier, t1)
		debt.PurchaseLogID = &logID
		pay := paymentAt(t, "50", house, supplier, t1.Add(time.Minute))
		pay.PurchaseLogID = &logID

		out := SupplierPayable(supplier, []Entry{debt, pay})
		assert.True(t, out.Equal(dec("150")))
	})

	t.Run("upfront payment is not double-subtracted", func(t *testing.T) {
		debt := debtAt(t, "200", house, supplier, t1)
		debt.PurchaseLogID = &logID
		pay := paymentAt(t, "50", house, supplier, t1.Add(-time.Minute))
		pay.PurchaseLogID = &logID

		out := SupplierPayable(supplier, []Entry{debt, pay})
		assert.True(t, out.Equal(dec("200")))
	})

	t.Run("supplier refund adds back", func(t *testing.T) {
		debt := debtAt(t, "200", house, supplier, t1)
		debt.PurchaseLogID = &logID
		pay := paymentAt(t, "100", house, supplier, t1.Add(time.Minute))
		pay.PurchaseLogID = &logID
		refund := paymentAt(t, "30", supplier, house, t1.Add(2*time.Minute))
		refund.PurchaseLogID = &logID

		out := SupplierPayable(supplier, []Entry{debt, pay, refund})
		assert.True(t, out.Equal(dec("130")))
	})

	t.Run("negative buckets are ignored, not offset", func(t *testing.T) {
		otherLog := uuid.New()
		debt1 := debtAt(t, "100", house, supplier, t1)
		debt1.PurchaseLogID = &logID
		pay1 := paymentAt(t, "150", house, supplier, t1.Add(time.Minute))
		pay1.PurchaseLogID = &logID
		debt2 := debtAt(t, "80", house, supplier, t1)
		debt2.PurchaseLogID = &otherLog

		out := SupplierPayable(supplier, []Entry{debt1, pay1, debt2})
		assert.True(t, out.Equal(dec("80")))
	})

	t.Run("entries without a purchase log share the generic bucket", func(t *testing.T) {
		debt := debtAt(t, "100", house, supplier, t1)
		pay := paymentAt(t, "40", house, supplier, t1.Add(time.Minute))

		out := SupplierPayable(supplier, []Entry{debt, pay})
		assert.True(t, out.Equal(dec("60")))
	})
}

func TestTransactionFinance(t *testing.T) {
	client := uuid.New()
	house := uuid.New()
	t1 := time.Now()

	t.Run("summarizes debt, paid and due", func(t *testing.T) {
		debt := debtAt(t, "120", client, house, t1)
		pay := paymentAt(t, "50", client, house, t1.Add(time.Second))

		fin := TransactionFinance([]Entry{debt, pay})

		assert.True(t, fin.Debt.Amount().Equal(dec("120")))
		assert.True(t, fin.Paid.Amount().Equal(dec("50")))
		assert.True(t, fin.Due.Amount().Equal(dec("70")))
	})

	t.Run("upfront payment counts as paid but not as due reduction", func(t *testing.T) {
		debt := debtAt(t, "120", client, house, t1)
		pay := paymentAt(t, "50", client, house, t1.Add(-time.Second))

		fin := TransactionFinance([]Entry{debt, pay})

		assert.True(t, fin.Paid.Amount().Equal(dec("50")))
		assert.True(t, fin.Due.Amount().Equal(dec("120")))
	})

	t.Run("due is floored at zero", func(t *testing.T) {
		debt := debtAt(t, "50", client, house, t1)
		pay := paymentAt(t, "80", client, house, t1.Add(time.Second))

		fin := TransactionFinance([]Entry{debt, pay})
		assert.True(t, fin.Due.Amount().IsZero())
	})
}

func TestEntry(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := NewDebt(decimal.Zero, a, b)
		assert.Error(t, err)
	})

	t.Run("rejects identical parties", func(t *testing.T) {
		_, err := NewPayment(dec("10"), a, a)
		assert.Error(t, err)
	})

	t.Run("cancel flips the active flag only", func(t *testing.T) {
		e, err := NewDebt(dec("10"), a, b)
		require.NoError(t, err)

		e.Cancel()

		assert.False(t, e.Active)
		assert.True(t, e.Amount.Equal(dec("10")))
	})
}

package stock

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotbook/backend/internal/domain/shared"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func TestNewLot(t *testing.T) {
	productID := uuid.New()

	t.Run("creates an active lot", func(t *testing.T) {
		lot, err := NewLot(productID, dec("10"), decPtr("4"), decPtr("6"))

		require.NoError(t, err)
		assert.True(t, lot.Active)
		assert.True(t, lot.AmountRemaining.Equal(dec("10")))
		assert.Equal(t, productID, lot.ProductID)
	})

	t.Run("rejects empty product", func(t *testing.T) {
		_, err := NewLot(uuid.Nil, dec("10"), nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewLot(productID, decimal.Zero, nil, nil)
		assert.Error(t, err)
	})
}

func TestLot_Consume(t *testing.T) {
	t.Run("decrements remaining amount", func(t *testing.T) {
		lot, _ := NewLot(uuid.New(), dec("10"), nil, nil)

		err := lot.Consume(dec("3"))

		require.NoError(t, err)
		assert.True(t, lot.AmountRemaining.Equal(dec("7")))
		assert.True(t, lot.Active)
	})

	t.Run("deactivates at exactly zero", func(t *testing.T) {
		lot, _ := NewLot(uuid.New(), dec("5"), nil, nil)

		err := lot.Consume(dec("5"))

		require.NoError(t, err)
		assert.True(t, lot.AmountRemaining.IsZero())
		assert.False(t, lot.Active)
		assert.False(t, lot.HasStock())
	})

	t.Run("fails when amount exceeds remaining", func(t *testing.T) {
		lot, _ := NewLot(uuid.New(), dec("5"), nil, nil)

		err := lot.Consume(dec("6"))

		assert.True(t, shared.IsCode(err, shared.CodeInsufficientStock))
		assert.True(t, lot.AmountRemaining.Equal(dec("5")))
	})
}

func TestLot_Restore(t *testing.T) {
	t.Run("reactivates a depleted lot", func(t *testing.T) {
		lot, _ := NewLot(uuid.New(), dec("5"), nil, nil)
		require.NoError(t, lot.Consume(dec("5")))
		require.False(t, lot.Active)

		err := lot.Restore(dec("5"))

		require.NoError(t, err)
		assert.True(t, lot.Active)
		assert.True(t, lot.AmountRemaining.Equal(dec("5")))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		lot, _ := NewLot(uuid.New(), dec("5"), nil, nil)
		assert.Error(t, lot.Restore(decimal.Zero))
	})
}

func TestTotalAvailable(t *testing.T) {
	productID := uuid.New()
	a, _ := NewLot(productID, dec("5"), nil, nil)
	b, _ := NewLot(productID, dec("3"), nil, nil)
	depleted, _ := NewLot(productID, dec("2"), nil, nil)
	require.NoError(t, depleted.Consume(dec("2")))

	total := TotalAvailable([]Lot{*a, *b, *depleted})

	assert.True(t, total.Equal(dec("8")))
}

func TestLatestUnitPrice(t *testing.T) {
	productID := uuid.New()

	t.Run("returns the most recently created active price", func(t *testing.T) {
		older, _ := NewLot(productID, dec("5"), nil, decPtr("10"))
		older.CreatedAt = time.Now().Add(-time.Hour)
		newer, _ := NewLot(productID, dec("5"), nil, decPtr("12"))

		price := LatestUnitPrice([]Lot{*older, *newer})

		require.NotNil(t, price)
		assert.True(t, price.Equal(dec("12")))
	})

	t.Run("skips lots without a price", func(t *testing.T) {
		priced, _ := NewLot(productID, dec("5"), nil, decPtr("10"))
		priced.CreatedAt = time.Now().Add(-time.Hour)
		unpriced, _ := NewLot(productID, dec("5"), nil, nil)

		price := LatestUnitPrice([]Lot{*priced, *unpriced})

		require.NotNil(t, price)
		assert.True(t, price.Equal(dec("10")))
	})

	t.Run("skips depleted lots", func(t *testing.T) {
		old, _ := NewLot(productID, dec("5"), nil, decPtr("10"))
		old.CreatedAt = time.Now().Add(-time.Hour)
		depleted, _ := NewLot(productID, dec("5"), nil, decPtr("99"))
		require.NoError(t, depleted.Consume(dec("5")))

		price := LatestUnitPrice([]Lot{*old, *depleted})

		require.NotNil(t, price)
		assert.True(t, price.Equal(dec("10")))
	})

	t.Run("returns nil when nothing is priced", func(t *testing.T) {
		unpriced, _ := NewLot(productID, dec("5"), nil, nil)
		assert.Nil(t, LatestUnitPrice([]Lot{*unpriced}))
	})
}

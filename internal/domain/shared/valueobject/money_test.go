package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), DefaultCurrency)
		require.NoError(t, err)
		assert.Equal(t, DefaultCurrency, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewDefaultMoney(t *testing.T) {
	m := NewDefaultMoney(decimal.NewFromFloat(50.00))
	assert.Equal(t, DefaultCurrency, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestZero(t *testing.T) {
	z := Zero()
	assert.True(t, z.IsZero())
	assert.Equal(t, DefaultCurrency, z.Currency())
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds amounts of the same currency", func(t *testing.T) {
		a := NewDefaultMoney(decimal.NewFromFloat(70))
		b := NewDefaultMoney(decimal.NewFromFloat(50))
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(120)))
	})

	t.Run("rejects mismatched currencies", func(t *testing.T) {
		a := NewDefaultMoney(decimal.NewFromFloat(70))
		b, err := NewMoney(decimal.NewFromFloat(50), "EUR")
		require.NoError(t, err)
		_, err = a.Add(b)
		assert.Error(t, err)
	})

	t.Run("MustAdd panics on mismatched currencies", func(t *testing.T) {
		a := NewDefaultMoney(decimal.NewFromFloat(70))
		b, err := NewMoney(decimal.NewFromFloat(50), "EUR")
		require.NoError(t, err)
		assert.Panics(t, func() { a.MustAdd(b) })
	})
}

func TestMoney_Subtract(t *testing.T) {
	t.Run("subtracts amounts of the same currency", func(t *testing.T) {
		a := NewDefaultMoney(decimal.NewFromFloat(120))
		b := NewDefaultMoney(decimal.NewFromFloat(50))
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromFloat(70)))
	})

	t.Run("result below zero is negative", func(t *testing.T) {
		a := NewDefaultMoney(decimal.NewFromFloat(50))
		b := NewDefaultMoney(decimal.NewFromFloat(120))
		diff := a.MustSubtract(b)
		assert.True(t, diff.IsNegative())
	})

	t.Run("rejects mismatched currencies", func(t *testing.T) {
		a := NewDefaultMoney(decimal.NewFromFloat(120))
		b, err := NewMoney(decimal.NewFromFloat(50), "EUR")
		require.NoError(t, err)
		_, err = a.Subtract(b)
		assert.Error(t, err)
	})
}

func TestMoney_Equals(t *testing.T) {
	a := NewDefaultMoney(decimal.NewFromFloat(42))
	b := NewDefaultMoney(decimal.NewFromFloat(42.00))
	c := NewDefaultMoney(decimal.NewFromFloat(43))
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestMoney_String(t *testing.T) {
	m := NewDefaultMoney(decimal.NewFromFloat(1234.5))
	assert.Equal(t, "1234.50 USD", m.String())
}

func TestMoney_MarshalJSON(t *testing.T) {
	m := NewDefaultMoney(decimal.NewFromFloat(99.99))
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"99.99","currency":"USD"}`, string(data))
}

package finance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apppurchase "github.com/lotbook/backend/internal/application/purchase"
	apptrade "github.com/lotbook/backend/internal/application/trade"
	"github.com/lotbook/backend/internal/domain/partner"
	"github.com/lotbook/backend/internal/domain/shared"
	"github.com/lotbook/backend/internal/domain/stock"
	"github.com/lotbook/backend/internal/infrastructure/persistence/memory"
)

type fixture struct {
	store     *memory.Store
	balances  *BalanceService
	sales     *apptrade.TransactionService
	purchases *apppurchase.PurchaseService
	houseID   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	registry := memory.NewRegistry(store)
	scope := memory.NewScope(store)
	entries := memory.NewEntryRepository(store)
	logger := zap.NewNop()

	house, err := partner.NewParty(partner.PartyKindUser, "House")
	require.NoError(t, err)
	store.SeedParty(house)

	return &fixture{
		store:    store,
		balances: NewBalanceService(entries, registry, logger),
		sales: apptrade.NewTransactionService(
			scope, memory.NewTransactionRepository(store), entries, registry, house.ID, logger),
		purchases: apppurchase.NewPurchaseService(scope, registry, house.ID, logger),
		houseID:   house.ID,
	}
}

func (f *fixture) addParty(t *testing.T, kind partner.PartyKind, name string) *partner.Party {
	t.Helper()
	p, err := partner.NewParty(kind, name)
	require.NoError(t, err)
	f.store.SeedParty(p)
	return p
}

func (f *fixture) stockProduct(t *testing.T, amount, price string) uuid.UUID {
	t.Helper()
	productID := uuid.New()
	p := dec(price)
	lot, err := stock.NewLot(productID, dec(amount), nil, &p)
	require.NoError(t, err)
	f.store.SeedLot(lot)
	return productID
}

func (f *fixture) sell(t *testing.T, clientID, productID uuid.UUID, amount, paid string) uuid.UUID {
	t.Helper()
	view, err := f.sales.Create(context.Background(), apptrade.CreateTransactionRequest{
		PartyID: clientID,
		Lines:   []apptrade.LineRequest{{ProductID: productID, Amount: dec(amount)}},
		Paid:    dec(paid),
	})
	require.NoError(t, err)
	return view.ID
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestBalanceService_AggregateReceivables(t *testing.T) {
	ctx := context.Background()

	t.Run("sums outstanding per client and skips settled ones", func(t *testing.T) {
		f := newFixture(t)
		alice := f.addParty(t, partner.PartyKindClient, "Alice")
		bob := f.addParty(t, partner.PartyKindClient, "Bob")
		carol := f.addParty(t, partner.PartyKindClient, "Carol")
		product := f.stockProduct(t, "100", "10")

		f.sell(t, alice.ID, product, "5", "20") // owes 30
		f.sell(t, bob.ID, product, "3", "30")   // settled
		f.sell(t, carol.ID, product, "4", "0")  // owes 40

		report, err := f.balances.AggregateReceivables(ctx)
		require.NoError(t, err)
		require.Len(t, report.Balances, 2)
		assert.Equal(t, "Alice", report.Balances[0].Name)
		assert.True(t, report.Balances[0].Outstanding.Equal(dec("30")))
		assert.Equal(t, "Carol", report.Balances[1].Name)
		assert.True(t, report.Balances[1].Outstanding.Equal(dec("40")))
		assert.True(t, report.Total.Equal(dec("70")))
	})

	t.Run("reversed sales drop out of the aggregate", func(t *testing.T) {
		f := newFixture(t)
		client := f.addParty(t, partner.PartyKindClient, "Alice")
		product := f.stockProduct(t, "100", "10")

		txID := f.sell(t, client.ID, product, "5", "0")

		report, err := f.balances.AggregateReceivables(ctx)
		require.NoError(t, err)
		require.Len(t, report.Balances, 1)
		assert.True(t, report.Total.Equal(dec("50")))

		_, err = f.sales.Revert(ctx, txID)
		require.NoError(t, err)

		report, err = f.balances.AggregateReceivables(ctx)
		require.NoError(t, err)
		assert.Empty(t, report.Balances)
		assert.True(t, report.Total.IsZero())
	})
}

func TestBalanceService_AggregatePayables(t *testing.T) {
	ctx := context.Background()

	t.Run("sums outstanding per supplier", func(t *testing.T) {
		f := newFixture(t)
		supplier := f.addParty(t, partner.PartyKindSupplier, "Raw Goods Co")
		paidOff := f.addParty(t, partner.PartyKindSupplier, "Settled Supplies")

		_, err := f.purchases.RecordPurchase(ctx, apppurchase.RecordPurchaseRequest{
			SupplierID: supplier.ID,
			MaterialID: uuid.New(),
			Amount:     dec("10"),
			UnitCost:   dec("8"),
			Paid:       dec("30"),
		})
		require.NoError(t, err)

		_, err = f.purchases.RecordPurchase(ctx, apppurchase.RecordPurchaseRequest{
			SupplierID: paidOff.ID,
			MaterialID: uuid.New(),
			Amount:     dec("5"),
			UnitCost:   dec("4"),
			Paid:       dec("20"),
		})
		require.NoError(t, err)

		report, err := f.balances.AggregatePayables(ctx)
		require.NoError(t, err)
		require.Len(t, report.Balances, 1)
		assert.Equal(t, supplier.ID, report.Balances[0].PartyID)
		assert.True(t, report.Balances[0].Outstanding.Equal(dec("50")))
		assert.True(t, report.Total.Equal(dec("50")))
	})
}

func TestBalanceService_PerParty(t *testing.T) {
	ctx := context.Background()

	t.Run("receivable for one client", func(t *testing.T) {
		f := newFixture(t)
		client := f.addParty(t, partner.PartyKindClient, "Alice")
		product := f.stockProduct(t, "100", "10")
		f.sell(t, client.ID, product, "5", "20")

		out, err := f.balances.ReceivableFor(ctx, client.ID)
		require.NoError(t, err)
		assert.True(t, out.Equal(dec("30")))
	})

	t.Run("unknown party", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.balances.ReceivableFor(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodePartyNotFound))
	})
}

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lotbook/backend/internal/domain/shared"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func lotColumns() []string {
	return []string{"id", "created_at", "updated_at", "product_id", "amount_remaining", "unit_cost", "unit_price", "active"}
}

func TestGormLotRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the lot", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormLotRepository(db)

		id := uuid.New()
		productID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT \* FROM "lots" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows(lotColumns()).
				AddRow(id, now, now, productID, "5", "10", "15", true))

		lot, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, lot.ID)
		assert.Equal(t, productID, lot.ProductID)
		assert.Equal(t, "5", lot.AmountRemaining.String())
		require.NotNil(t, lot.UnitPrice)
		assert.Equal(t, "15", lot.UnitPrice.String())
		assert.True(t, lot.Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormLotRepository(db)

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "lots" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(ctx, id)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLotRepository_FindActiveByProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("orders lots by creation time", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormLotRepository(db)

		productID := uuid.New()
		older := uuid.New()
		newer := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT \* FROM "lots" WHERE product_id = \$1 AND active = TRUE ORDER BY created_at ASC`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows(lotColumns()).
				AddRow(older, now.Add(-2*time.Hour), now, productID, "5", nil, "10", true).
				AddRow(newer, now.Add(-time.Hour), now, productID, "5", nil, "12", true))

		lots, err := repo.FindActiveByProduct(ctx, productID)
		require.NoError(t, err)
		require.Len(t, lots, 2)
		assert.Equal(t, older, lots[0].ID)
		assert.Equal(t, newer, lots[1].ID)
		assert.Nil(t, lots[0].UnitCost)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLotRepository_TotalAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("sums remaining stock", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormLotRepository(db)

		productID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_remaining\), 0\) FROM "lots" WHERE product_id = \$1 AND active = TRUE`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("12.5"))

		total, err := repo.TotalAvailable(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, "12.5", total.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lotbook/backend/internal/domain/shared"
	"github.com/lotbook/backend/internal/domain/stock"
)

// GormLotRepository implements stock.LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// FindByID finds a lot by its ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Lot, error) {
	var lot stock.Lot
	if err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindByIDForUpdate finds a lot by its ID holding a row lock until the
// surrounding transaction ends.
func (r *GormLotRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*stock.Lot, error) {
	var lot stock.Lot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindActiveByProduct finds a product's active lots in creation order
func (r *GormLotRepository) FindActiveByProduct(ctx context.Context, productID uuid.UUID) ([]stock.Lot, error) {
	var lots []stock.Lot
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND active = TRUE", productID).
		Order("created_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindActiveByProductForUpdate finds a product's active lots holding row
// locks, so two overlapping allocations for the same product serialize.
func (r *GormLotRepository) FindActiveByProductForUpdate(ctx context.Context, productID uuid.UUID) ([]stock.Lot, error) {
	var lots []stock.Lot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND active = TRUE", productID).
		Order("created_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// TotalAvailable sums the remaining amount over a product's active lots
func (r *GormLotRepository) TotalAvailable(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&stock.Lot{}).
		Where("product_id = ? AND active = TRUE", productID).
		Select("COALESCE(SUM(amount_remaining), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Save creates or updates a lot
func (r *GormLotRepository) Save(ctx context.Context, lot *stock.Lot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

// SaveAll creates or updates multiple lots
func (r *GormLotRepository) SaveAll(ctx context.Context, lots []*stock.Lot) error {
	if len(lots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&lots).Error
}

// Ensure GormLotRepository implements LotRepository
var _ stock.LotRepository = (*GormLotRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotbook/backend/internal/domain/purchase"
	"github.com/lotbook/backend/internal/domain/shared"
)

// GormPurchaseLogRepository implements purchase.PurchaseLogRepository using GORM
type GormPurchaseLogRepository struct {
	db *gorm.DB
}

// NewGormPurchaseLogRepository creates a new GormPurchaseLogRepository
func NewGormPurchaseLogRepository(db *gorm.DB) *GormPurchaseLogRepository {
	return &GormPurchaseLogRepository{db: db}
}

// FindByID finds a purchase log by its ID
func (r *GormPurchaseLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseLog, error) {
	var log purchase.PurchaseLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// Save creates or updates a purchase log
func (r *GormPurchaseLogRepository) Save(ctx context.Context, log *purchase.PurchaseLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// Ensure GormPurchaseLogRepository implements PurchaseLogRepository
var _ purchase.PurchaseLogRepository = (*GormPurchaseLogRepository)(nil)

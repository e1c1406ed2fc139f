package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotbook/backend/internal/domain/shared"
	"github.com/lotbook/backend/internal/domain/trade"
)

// GormTransactionRepository implements trade.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID loads the full aggregate: the transaction, its lines and their
// allocations.
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Transaction, error) {
	var tx trade.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Lines.Allocations").
		First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// Save persists the full aggregate. Lines and allocations are append-only;
// reversal only flips allocation flags, so upserts cover every mutation the
// domain performs.
func (r *GormTransactionRepository) Save(ctx context.Context, tx *trade.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		if err := db.Omit("Lines").Save(tx).Error; err != nil {
			return err
		}
		for i := range tx.Lines {
			line := &tx.Lines[i]
			if err := db.Omit("Allocations").Save(line).Error; err != nil {
				return err
			}
			for j := range line.Allocations {
				if err := db.Save(&line.Allocations[j]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ trade.TransactionRepository = (*GormTransactionRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotbook/backend/internal/domain/ledger"
	"github.com/lotbook/backend/internal/domain/shared"
)

// GormEntryRepository implements ledger.EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var entry ledger.Entry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByTransaction finds a transaction's entries in append order
func (r *GormEntryRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByParty finds every entry a party participates in, in append order
func (r *GormEntryRepository) FindByParty(ctx context.Context, partyID uuid.UUID) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	if err := r.db.WithContext(ctx).
		Where("from_party = ? OR to_party = ?", partyID, partyID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save inserts or updates an entry
func (r *GormEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// CancelByTransaction soft-invalidates every entry tied to the transaction
func (r *GormEntryRepository) CancelByTransaction(ctx context.Context, transactionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&ledger.Entry{}).
		Where("transaction_id = ?", transactionID).
		Updates(map[string]any{"active": false, "updated_at": time.Now()}).Error
}

// Ensure GormEntryRepository implements EntryRepository
var _ ledger.EntryRepository = (*GormEntryRepository)(nil)

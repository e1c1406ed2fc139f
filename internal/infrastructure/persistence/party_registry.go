package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lotbook/backend/internal/domain/partner"
	"github.com/lotbook/backend/internal/domain/shared"
)

// GormPartyRegistry implements partner.Registry using GORM
type GormPartyRegistry struct {
	db *gorm.DB
}

// NewGormPartyRegistry creates a new GormPartyRegistry
func NewGormPartyRegistry(db *gorm.DB) *GormPartyRegistry {
	return &GormPartyRegistry{db: db}
}

// Exists reports whether the id denotes a known, active party
func (r *GormPartyRegistry) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Party{}).
		Where("id = ? AND active = TRUE", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByID finds a party by its ID
func (r *GormPartyRegistry) FindByID(ctx context.Context, id uuid.UUID) (*partner.Party, error) {
	var party partner.Party
	if err := r.db.WithContext(ctx).First(&party, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &party, nil
}

// FindByKind lists the active parties of one kind, ordered by name
func (r *GormPartyRegistry) FindByKind(ctx context.Context, kind partner.PartyKind) ([]partner.Party, error) {
	var parties []partner.Party
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND active = TRUE", kind).
		Order("name ASC").
		Find(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

// Save creates or updates a party. Party management lives outside the engine;
// this exists for provisioning and fixtures.
func (r *GormPartyRegistry) Save(ctx context.Context, party *partner.Party) error {
	return r.db.WithContext(ctx).Save(party).Error
}

// Ensure GormPartyRegistry implements Registry
var _ partner.Registry = (*GormPartyRegistry)(nil)

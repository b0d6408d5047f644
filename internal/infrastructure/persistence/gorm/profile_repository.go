package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cocinero/v1/internal/domain/profile"
	"github.com/cocinero/v1/internal/ports/outbound"
)

// ProfileRepository implements the profile repository interface using GORM.
// The profile is a single fixed row.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) outbound.ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get returns the stored profile, or nil when none was ever saved
func (r *ProfileRepository) Get(ctx context.Context) (*profile.Profile, error) {
	var model ProfileModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", profileRowID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	p := ModelToProfile(&model)
	return &p, nil
}

// Save upserts the profile row
func (r *ProfileRepository) Save(ctx context.Context, p profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(ProfileToModel(p)).Error
}

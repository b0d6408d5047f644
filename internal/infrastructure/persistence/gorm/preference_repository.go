package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cocinero/v1/internal/domain/preference"
	"github.com/cocinero/v1/internal/ports/outbound"
)

// PreferenceRepository implements the preference repository interface using GORM
type PreferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *gorm.DB) outbound.PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// FindByPair finds the record for one (original, alternative) pair
func (r *PreferenceRepository) FindByPair(ctx context.Context, originalID, alternativeID string) (*preference.Record, error) {
	var model PreferenceModel
	result := r.db.WithContext(ctx).
		First(&model, "original_id = ? AND alternative_id = ?", originalID, alternativeID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	record := ModelToPreference(&model)
	return &record, nil
}

// FindByOriginal returns all records for alternatives of one ingredient
func (r *PreferenceRepository) FindByOriginal(ctx context.Context, originalID string) ([]preference.Record, error) {
	var models []PreferenceModel
	result := r.db.WithContext(ctx).
		Where("original_id = ?", originalID).
		Order("alternative_id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	records := make([]preference.Record, len(models))
	for i := range models {
		records[i] = ModelToPreference(&models[i])
	}
	return records, nil
}

// Save upserts a preference record
func (r *PreferenceRepository) Save(ctx context.Context, record preference.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(PreferenceToModel(record)).Error
}

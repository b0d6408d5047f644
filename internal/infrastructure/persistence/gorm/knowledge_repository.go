package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cocinero/v1/internal/domain/knowledge"
	"github.com/cocinero/v1/internal/ports/outbound"
)

// KnowledgeRepository implements the knowledge repository interface using GORM
type KnowledgeRepository struct {
	db *gorm.DB
}

// NewKnowledgeRepository creates a new knowledge repository
func NewKnowledgeRepository(db *gorm.DB) outbound.KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

// FindByID finds a knowledge entry by ID
func (r *KnowledgeRepository) FindByID(ctx context.Context, id string) (*knowledge.Entry, error) {
	var model KnowledgeEntryModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	entry := ModelToKnowledgeEntry(&model)
	return &entry, nil
}

// FindByType returns all entries of one type
func (r *KnowledgeRepository) FindByType(ctx context.Context, entryType knowledge.EntryType) ([]knowledge.Entry, error) {
	var models []KnowledgeEntryModel
	result := r.db.WithContext(ctx).
		Where("type = ?", string(entryType)).
		Order("created_at").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	entries := make([]knowledge.Entry, len(models))
	for i := range models {
		entries[i] = ModelToKnowledgeEntry(&models[i])
	}
	return entries, nil
}

// FindAll returns every knowledge entry
func (r *KnowledgeRepository) FindAll(ctx context.Context) ([]knowledge.Entry, error) {
	var models []KnowledgeEntryModel
	result := r.db.WithContext(ctx).Order("created_at").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	entries := make([]knowledge.Entry, len(models))
	for i := range models {
		entries[i] = ModelToKnowledgeEntry(&models[i])
	}
	return entries, nil
}

// Save upserts a knowledge entry
func (r *KnowledgeRepository) Save(ctx context.Context, entry knowledge.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(KnowledgeEntryToModel(entry)).Error
}

// Delete removes a knowledge entry by ID
func (r *KnowledgeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&KnowledgeEntryModel{}, "id = ?", id).Error
}

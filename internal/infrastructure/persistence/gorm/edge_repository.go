package gorm

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/ports/outbound"
)

// SubstitutionEdgeRepository implements the substitution edge repository using GORM
type SubstitutionEdgeRepository struct {
	db *gorm.DB
}

// NewSubstitutionEdgeRepository creates a new substitution edge repository
func NewSubstitutionEdgeRepository(db *gorm.DB) outbound.SubstitutionEdgeRepository {
	return &SubstitutionEdgeRepository{db: db}
}

// FindByOriginal returns all edges out of the given ingredient
func (r *SubstitutionEdgeRepository) FindByOriginal(ctx context.Context, originalID string) ([]catalog.SubstitutionEdge, error) {
	var models []SubstitutionEdgeModel
	result := r.db.WithContext(ctx).
		Where("original_id = ?", originalID).
		Order("alternative_id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	edges := make([]catalog.SubstitutionEdge, len(models))
	for i := range models {
		edges[i] = ModelToSubstitutionEdge(&models[i])
	}
	return edges, nil
}

// FindByDietaryTag returns all edges carrying the given dietary tag.
// Tags are stored as a JSON array, so membership is checked after load.
func (r *SubstitutionEdgeRepository) FindByDietaryTag(ctx context.Context, tag string) ([]catalog.SubstitutionEdge, error) {
	var models []SubstitutionEdgeModel
	result := r.db.WithContext(ctx).
		Where("dietary_tags LIKE ?", "%"+tag+"%").
		Order("original_id, alternative_id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	var edges []catalog.SubstitutionEdge
	for i := range models {
		edge := ModelToSubstitutionEdge(&models[i])
		if edge.HasDietaryTag(tag) {
			edges = append(edges, edge)
		}
	}
	return edges, nil
}

// Save upserts a substitution edge
func (r *SubstitutionEdgeRepository) Save(ctx context.Context, edge catalog.SubstitutionEdge) error {
	if err := edge.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(SubstitutionEdgeToModel(edge)).Error
}

// AdaptationEdgeRepository implements the adaptation edge repository using GORM
type AdaptationEdgeRepository struct {
	db *gorm.DB
}

// NewAdaptationEdgeRepository creates a new adaptation edge repository
func NewAdaptationEdgeRepository(db *gorm.DB) outbound.AdaptationEdgeRepository {
	return &AdaptationEdgeRepository{db: db}
}

// FindByOriginal returns all edges out of the given appliance
func (r *AdaptationEdgeRepository) FindByOriginal(ctx context.Context, originalID string) ([]catalog.AdaptationEdge, error) {
	var models []AdaptationEdgeModel
	result := r.db.WithContext(ctx).
		Where("original_id = ?", originalID).
		Order("alternative_id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	edges := make([]catalog.AdaptationEdge, len(models))
	for i := range models {
		edges[i] = ModelToAdaptationEdge(&models[i])
	}
	return edges, nil
}

// Save upserts an adaptation edge
func (r *AdaptationEdgeRepository) Save(ctx context.Context, edge catalog.AdaptationEdge) error {
	if err := edge.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(AdaptationEdgeToModel(edge)).Error
}

// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/ports/outbound"
)

// IngredientRepository implements the ingredient repository interface using GORM
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) outbound.IngredientRepository {
	return &IngredientRepository{db: db}
}

// FindByID finds an ingredient by ID
func (r *IngredientRepository) FindByID(ctx context.Context, id string) (*catalog.Ingredient, error) {
	var model IngredientModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	item := ModelToIngredient(&model)
	return &item, nil
}

// FindAll returns every catalog ingredient
func (r *IngredientRepository) FindAll(ctx context.Context) ([]catalog.Ingredient, error) {
	var models []IngredientModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	items := make([]catalog.Ingredient, len(models))
	for i := range models {
		items[i] = ModelToIngredient(&models[i])
	}
	return items, nil
}

// Save upserts an ingredient
func (r *IngredientRepository) Save(ctx context.Context, item catalog.Ingredient) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(IngredientToModel(item)).Error
}

// ApplianceRepository implements the appliance repository interface using GORM
type ApplianceRepository struct {
	db *gorm.DB
}

// NewApplianceRepository creates a new appliance repository
func NewApplianceRepository(db *gorm.DB) outbound.ApplianceRepository {
	return &ApplianceRepository{db: db}
}

// FindByID finds an appliance by ID
func (r *ApplianceRepository) FindByID(ctx context.Context, id string) (*catalog.Appliance, error) {
	var model ApplianceModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	item := ModelToAppliance(&model)
	return &item, nil
}

// FindAll returns every catalog appliance
func (r *ApplianceRepository) FindAll(ctx context.Context) ([]catalog.Appliance, error) {
	var models []ApplianceModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	items := make([]catalog.Appliance, len(models))
	for i := range models {
		items[i] = ModelToAppliance(&models[i])
	}
	return items, nil
}

// Save upserts an appliance
func (r *ApplianceRepository) Save(ctx context.Context, item catalog.Appliance) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(ApplianceToModel(item)).Error
}

// InventoryRepository implements the inventory repository interface using GORM
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) outbound.InventoryRepository {
	return &InventoryRepository{db: db}
}

// FindByIngredient finds pantry stock for one ingredient
func (r *InventoryRepository) FindByIngredient(ctx context.Context, ingredientID string) (*catalog.InventoryItem, error) {
	var model InventoryItemModel
	result := r.db.WithContext(ctx).First(&model, "ingredient_id = ?", ingredientID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	item := ModelToInventoryItem(&model)
	return &item, nil
}

// FindAll returns the whole pantry
func (r *InventoryRepository) FindAll(ctx context.Context) ([]catalog.InventoryItem, error) {
	var models []InventoryItemModel
	result := r.db.WithContext(ctx).Order("ingredient_id").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	items := make([]catalog.InventoryItem, len(models))
	for i := range models {
		items[i] = ModelToInventoryItem(&models[i])
	}
	return items, nil
}

// Save upserts pantry stock for one ingredient
func (r *InventoryRepository) Save(ctx context.Context, item catalog.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(InventoryItemToModel(item)).Error
}

// Delete removes pantry stock for one ingredient
func (r *InventoryRepository) Delete(ctx context.Context, ingredientID string) error {
	return r.db.WithContext(ctx).
		Delete(&InventoryItemModel{}, "ingredient_id = ?", ingredientID).Error
}

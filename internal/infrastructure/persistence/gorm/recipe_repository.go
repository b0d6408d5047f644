package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/cocinero/v1/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	rec := ModelToRecipe(&model)
	return &rec, nil
}

// FindByIDs returns the recipes matching the given ids; unknown ids are
// silently skipped
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []string) ([]recipe.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []RecipeModel
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	recipes := make([]recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes, nil
}

// FindAll returns every recipe in the catalog
func (r *RecipeRepository) FindAll(ctx context.Context) ([]recipe.Recipe, error) {
	var models []RecipeModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	recipes := make([]recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes, nil
}

// Save upserts a recipe
func (r *RecipeRepository) Save(ctx context.Context, rec recipe.Recipe) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(RecipeToModel(rec)).Error
}

// VariantRepository implements the variant repository interface using GORM
type VariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository creates a new variant repository
func NewVariantRepository(db *gorm.DB) outbound.VariantRepository {
	return &VariantRepository{db: db}
}

// FindByID finds a variant by ID
func (r *VariantRepository) FindByID(ctx context.Context, id string) (*recipe.Variant, error) {
	var model VariantModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	v := ModelToVariant(&model)
	return &v, nil
}

// FindByBaseRecipe returns all variants of a base recipe
func (r *VariantRepository) FindByBaseRecipe(ctx context.Context, baseRecipeID string) ([]recipe.Variant, error) {
	var models []VariantModel
	result := r.db.WithContext(ctx).
		Where("base_recipe_id = ?", baseRecipeID).
		Order("created_at").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	variants := make([]recipe.Variant, len(models))
	for i := range models {
		variants[i] = ModelToVariant(&models[i])
	}
	return variants, nil
}

// Save upserts a variant
func (r *VariantRepository) Save(ctx context.Context, v recipe.Variant) error {
	if err := v.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(VariantToModel(v)).Error
}

// Delete removes a variant by ID
func (r *VariantRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&VariantModel{}, "id = ?", id).Error
}

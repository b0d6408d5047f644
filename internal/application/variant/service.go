// Package variant provides the application layer for recipe variants: named
// diff bundles stored against a base recipe and replayed on demand.
package variant

import (
	"context"
	"time"

	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/cocinero/v1/internal/ports/inbound"
	"github.com/cocinero/v1/internal/ports/outbound"
	"github.com/cocinero/v1/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the variant use cases
type Service struct {
	variants outbound.VariantRepository
	recipes  outbound.RecipeRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new variant service
func NewService(variants outbound.VariantRepository, recipes outbound.RecipeRepository, logger *zap.Logger) inbound.VariantService {
	return &Service{
		variants: variants,
		recipes:  recipes,
		logger:   logger.Named("variant-service"),
		now:      time.Now,
	}
}

// CreateVariant persists the diff bundle unchanged
func (s *Service) CreateVariant(ctx context.Context, cmd inbound.CreateVariantCommand) (string, error) {
	base, err := s.recipes.FindByID(ctx, cmd.BaseRecipeID)
	if err != nil {
		return "", errors.NewDatabaseError("find base recipe", err)
	}
	if base == nil {
		return "", errors.NewRecipeNotFoundError(cmd.BaseRecipeID)
	}

	v := recipe.Variant{
		ID:                uuid.NewString(),
		BaseRecipeID:      cmd.BaseRecipeID,
		Name:              cmd.Name,
		Description:       cmd.Description,
		IngredientChanges: cmd.IngredientChanges,
		StepChanges:       cmd.StepChanges,
		Metadata:          cmd.Metadata,
		Tags:              cmd.Tags,
		TimesUsed:         0,
		CreatedAt:         s.now(),
	}
	if err := v.Validate(); err != nil {
		return "", errors.NewValidationError(err.Error())
	}

	if err := s.variants.Save(ctx, v); err != nil {
		return "", errors.NewDatabaseError("save variant", err)
	}

	s.logger.Info("Created variant",
		zap.String("variant_id", v.ID),
		zap.String("base_recipe_id", v.BaseRecipeID),
		zap.String("name", v.Name),
	)

	return v.ID, nil
}

// ApplyVariantToRecipe materializes the derived recipe. Changes apply in
// remove, modify, add order for ingredients and then steps; surviving and
// added steps are renumbered to a dense 1..N sequence.
func (s *Service) ApplyVariantToRecipe(ctx context.Context, baseRecipeID, variantID string) (*recipe.Recipe, error) {
	base, err := s.recipes.FindByID(ctx, baseRecipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("find base recipe", err)
	}
	if base == nil {
		return nil, errors.NewRecipeNotFoundError(baseRecipeID)
	}

	v, err := s.variants.FindByID(ctx, variantID)
	if err != nil {
		return nil, errors.NewDatabaseError("find variant", err)
	}
	if v == nil {
		return nil, errors.NewVariantNotFoundError(variantID)
	}
	if v.BaseRecipeID != baseRecipeID {
		return nil, errors.NewVariantBaseMismatchError(variantID, baseRecipeID, v.BaseRecipeID)
	}

	derived := base.Clone()
	applyIngredientChanges(&derived, v.IngredientChanges)
	applyStepChanges(&derived, v.StepChanges)
	derived.RenumberSteps()

	// Repeated application is intentionally additive
	v.TimesUsed++
	if err := s.variants.Save(ctx, *v); err != nil {
		return nil, errors.NewDatabaseError("update variant usage", err)
	}

	return &derived, nil
}

// GetVariantSummary reports change counts from the diff; it never loads the
// base recipe
func (s *Service) GetVariantSummary(ctx context.Context, variantID string) (*recipe.Summary, error) {
	v, err := s.variants.FindByID(ctx, variantID)
	if err != nil {
		return nil, errors.NewDatabaseError("find variant", err)
	}
	if v == nil {
		return nil, errors.NewVariantNotFoundError(variantID)
	}

	summary := v.Summarize()
	return &summary, nil
}

// ListVariantsForRecipe lists the variants stored against a base recipe
func (s *Service) ListVariantsForRecipe(ctx context.Context, baseRecipeID string) ([]recipe.Variant, error) {
	variants, err := s.variants.FindByBaseRecipe(ctx, baseRecipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("list variants", err)
	}
	return variants, nil
}

// DeleteVariant removes a stored variant
func (s *Service) DeleteVariant(ctx context.Context, variantID string) error {
	v, err := s.variants.FindByID(ctx, variantID)
	if err != nil {
		return errors.NewDatabaseError("find variant", err)
	}
	if v == nil {
		return errors.NewVariantNotFoundError(variantID)
	}
	if err := s.variants.Delete(ctx, variantID); err != nil {
		return errors.NewDatabaseError("delete variant", err)
	}
	return nil
}

// applyIngredientChanges applies removals, then modifications, then additions
func applyIngredientChanges(r *recipe.Recipe, changes []recipe.IngredientChange) {
	for _, c := range changes {
		if c.Kind != recipe.ChangeRemoved {
			continue
		}
		if idx := r.FindIngredient(c.IngredientID); idx >= 0 {
			r.RemoveIngredient(idx)
		}
	}
	for _, c := range changes {
		if c.Kind != recipe.ChangeModified {
			continue
		}
		if idx := r.FindIngredient(c.IngredientID); idx >= 0 {
			r.Ingredients[idx] = *c.Ingredient
		}
	}
	for _, c := range changes {
		if c.Kind != recipe.ChangeAdded {
			continue
		}
		r.Ingredients = append(r.Ingredients, *c.Ingredient)
	}
}

// applyStepChanges applies removals, then modifications, then additions.
// Renumbering happens afterwards, so intermediate gaps are fine.
func applyStepChanges(r *recipe.Recipe, changes []recipe.StepChange) {
	for _, c := range changes {
		if c.Kind != recipe.ChangeRemoved {
			continue
		}
		for i := range r.Steps {
			if r.Steps[i].Number == c.StepNumber {
				r.Steps = append(r.Steps[:i], r.Steps[i+1:]...)
				break
			}
		}
	}
	for _, c := range changes {
		if c.Kind != recipe.ChangeModified {
			continue
		}
		for i := range r.Steps {
			if r.Steps[i].Number == c.StepNumber {
				r.Steps[i] = *c.Step
				break
			}
		}
	}
	for _, c := range changes {
		if c.Kind != recipe.ChangeAdded {
			continue
		}
		r.Steps = append(r.Steps, *c.Step)
	}
}

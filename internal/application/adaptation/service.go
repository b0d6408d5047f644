package adaptation

import (
	"context"
	"fmt"

	"github.com/cocinero/v1/internal/application/substitution"
	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/ports/inbound"
	"github.com/cocinero/v1/internal/ports/outbound"
	"github.com/cocinero/v1/pkg/errors"
	"go.uber.org/zap"
)

// RecipeService implements whole-recipe adaptation: ingredient substitution,
// appliance adaptation, dietary filtering, and serving-size scaling, with a
// full change ledger in every result.
type RecipeService struct {
	recipes       outbound.RecipeRepository
	ingredients   outbound.IngredientRepository
	edges         outbound.SubstitutionEdgeRepository
	substitutions inbound.SubstitutionService
	appliances    inbound.AdaptationService
	rules         DietaryRules
	logger        *zap.Logger
}

// NewRecipeService creates a new recipe adaptation service
func NewRecipeService(
	recipes outbound.RecipeRepository,
	ingredients outbound.IngredientRepository,
	edges outbound.SubstitutionEdgeRepository,
	substitutions inbound.SubstitutionService,
	appliances inbound.AdaptationService,
	rules DietaryRules,
	logger *zap.Logger,
) inbound.RecipeAdaptService {
	if rules == nil {
		rules = DefaultDietaryRules()
	}
	return &RecipeService{
		recipes:       recipes,
		ingredients:   ingredients,
		edges:         edges,
		substitutions: substitutions,
		appliances:    appliances,
		rules:         rules,
		logger:        logger.Named("recipe-adapter"),
	}
}

// AdaptRecipe adapts a recipe to the request, producing the adapted recipe
// plus the ledger of every change made
func (s *RecipeService) AdaptRecipe(ctx context.Context, cmd inbound.AdaptRecipeCommand) (*inbound.AdaptedRecipe, error) {
	if cmd.RecipeID == "" {
		return nil, errors.NewValidationError("recipe id is required")
	}
	if cmd.Servings < 0 {
		return nil, errors.NewValidationError("servings cannot be negative")
	}

	base, err := s.recipes.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if base == nil {
		return nil, errors.NewRecipeNotFoundError(cmd.RecipeID)
	}

	result := &inbound.AdaptedRecipe{Recipe: base.Clone()}
	ruleCtx := catalog.RuleContext{
		RecipeType: base.Category,
		Cuisine:    base.Cuisine,
	}

	for _, ingredientID := range cmd.MissingIngredients {
		s.handleMissingIngredient(ctx, result, ingredientID, ruleCtx)
	}

	for _, applianceID := range cmd.MissingAppliances {
		s.handleMissingAppliance(ctx, result, applianceID, ruleCtx)
	}

	for _, restriction := range cmd.DietaryRestrictions {
		s.applyDietaryRestriction(ctx, result, restriction)
	}

	if cmd.Servings > 0 && cmd.Servings != result.Recipe.Servings {
		s.rescale(result, cmd.Servings)
	}

	s.logger.Info("Adapted recipe",
		zap.String("recipe_id", cmd.RecipeID),
		zap.Int("substitutions", len(result.Substitutions)),
		zap.Int("removed", len(result.RemovedIngredients)),
		zap.Int("warnings", len(result.Warnings)),
	)

	return result, nil
}

// handleMissingIngredient drops optional ingredients and substitutes
// required ones. A required ingredient with no substitute yields a warning;
// the recipe never claims success while silently dropping it.
func (s *RecipeService) handleMissingIngredient(ctx context.Context, result *inbound.AdaptedRecipe, ingredientID string, ruleCtx catalog.RuleContext) {
	idx := result.Recipe.FindIngredient(ingredientID)
	if idx < 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("recipe does not use ingredient %s", ingredientID))
		return
	}

	line := result.Recipe.Ingredients[idx]
	if line.Optional {
		result.Recipe.RemoveIngredient(idx)
		result.RemovedIngredients = append(result.RemovedIngredients, inbound.RemovedIngredientEntry{
			IngredientID: line.IngredientID,
			Name:         line.Name,
			Reason:       "optional, removed",
		})
		return
	}

	best, err := s.substitutions.GetBestSubstitute(ctx, ingredientID, ruleCtx)
	if err != nil {
		result.Recipe.Ingredients[idx].Notes = appendLineNote(line.Notes, "missing, no substitute found")
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no substitute found for required ingredient %s (%s)", line.Name, ingredientID))
		return
	}

	s.applySubstitution(result, idx, *best, "missing ingredient")
}

// applySubstitution replaces the ingredient line at idx and records the
// ledger entries, including step notes for adjustments that name a step
func (s *RecipeService) applySubstitution(result *inbound.AdaptedRecipe, idx int, sub inbound.SubstitutionResult, reason string) {
	line := result.Recipe.Ingredients[idx]

	converted, err := substitution.CalculateAmount(line.Amount, sub.Ratio)
	if err != nil {
		// Zero-amount lines ("to taste") keep their amount
		converted.Amount = line.Amount
	}

	result.Recipe.Ingredients[idx].IngredientID = sub.SubstituteID
	result.Recipe.Ingredients[idx].Name = sub.SubstituteName
	result.Recipe.Ingredients[idx].Amount = converted.Amount

	result.Substitutions = append(result.Substitutions, inbound.SubstitutionEntry{
		OriginalID:     line.IngredientID,
		OriginalName:   line.Name,
		SubstituteID:   sub.SubstituteID,
		SubstituteName: sub.SubstituteName,
		Ratio:          sub.Ratio,
		Reason:         reason,
		Impact:         sub.Impact,
	})

	for _, adj := range sub.Adjustments {
		if adj.StepNumber <= 0 || adj.Description == "" {
			continue
		}
		// Append a note instead of rewriting the instruction
		if result.Recipe.AppendStepNote(adj.StepNumber, adj.Description) {
			result.ModifiedSteps = append(result.ModifiedSteps, inbound.ModifiedStepEntry{
				StepNumber: adj.StepNumber,
				Change:     adj.Description,
			})
		}
	}
}

// handleMissingAppliance routes a missing appliance through the adaptation
// resolver and records the outcome in the ledger
func (s *RecipeService) handleMissingAppliance(ctx context.Context, result *inbound.AdaptedRecipe, applianceID string, ruleCtx catalog.RuleContext) {
	best, err := s.appliances.GetBestAdaptation(ctx, applianceID, ruleCtx)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no owned appliance can replace %s", applianceID))
		return
	}

	change := fmt.Sprintf("use %s instead of %s", best.AlternativeName, applianceID)
	for _, note := range best.Impact.Notes {
		change += "; " + note
	}
	result.ModifiedSteps = append(result.ModifiedSteps, inbound.ModifiedStepEntry{
		StepNumber: 0,
		Change:     change,
	})

	for _, adj := range best.Adjustments {
		if adj.StepNumber <= 0 || adj.Description == "" {
			continue
		}
		if result.Recipe.AppendStepNote(adj.StepNumber, adj.Description) {
			result.ModifiedSteps = append(result.ModifiedSteps, inbound.ModifiedStepEntry{
				StepNumber: adj.StepNumber,
				Change:     adj.Description,
			})
		}
	}
}

// applyDietaryRestriction re-scans the already-adapted ingredient list and
// substitutes or warns on every violation
func (s *RecipeService) applyDietaryRestriction(ctx context.Context, result *inbound.AdaptedRecipe, restriction string) {
	if !s.rules.Known(restriction) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unknown dietary restriction %q", restriction))
		return
	}

	// Index snapshot: substitutions mutate lines in place, never reorder
	for idx := 0; idx < len(result.Recipe.Ingredients); idx++ {
		line := result.Recipe.Ingredients[idx]

		item, err := s.ingredients.FindByID(ctx, line.IngredientID)
		if err != nil || item == nil {
			continue
		}
		if !s.rules.Violates(restriction, *item) {
			continue
		}

		sub, ok := s.dietarySubstitute(ctx, line.IngredientID, restriction)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s violates %s and has no tagged substitute", line.Name, restriction))
			continue
		}
		s.applySubstitution(result, idx, sub, "dietary restriction: "+restriction)
	}
}

// dietarySubstitute finds the first edge out of the ingredient tagged for
// the restriction
func (s *RecipeService) dietarySubstitute(ctx context.Context, ingredientID, restriction string) (inbound.SubstitutionResult, bool) {
	edges, err := s.edges.FindByDietaryTag(ctx, restriction)
	if err != nil {
		return inbound.SubstitutionResult{}, false
	}
	for _, edge := range edges {
		if edge.OriginalID != ingredientID {
			continue
		}
		name := edge.AlternativeID
		if alt, err := s.ingredients.FindByID(ctx, edge.AlternativeID); err == nil && alt != nil {
			name = alt.Name
		}
		return inbound.SubstitutionResult{
			OriginalID:     edge.OriginalID,
			SubstituteID:   edge.AlternativeID,
			SubstituteName: name,
			Ratio:          edge.Ratio,
			Confidence:     edge.Confidence,
			Impact:         substitution.AnalyzeImpact(edge),
			Adjustments:    edge.Adjustments,
		}, true
	}
	return inbound.SubstitutionResult{}, false
}

// rescale scales ingredient amounts linearly, clamping to the recipe's
// scaling bounds
func (s *RecipeService) rescale(result *inbound.AdaptedRecipe, target int) {
	clamped := target
	if result.Recipe.MinServings > 0 && clamped < result.Recipe.MinServings {
		clamped = result.Recipe.MinServings
	}
	if result.Recipe.MaxServings > 0 && clamped > result.Recipe.MaxServings {
		clamped = result.Recipe.MaxServings
	}
	if clamped != target {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("requested %d servings is outside the recipe's range, scaled to %d", target, clamped))
	}
	result.Recipe.Rescale(clamped)
}

func appendLineNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "; " + note
}

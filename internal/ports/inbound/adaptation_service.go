package inbound

import (
	"context"

	"github.com/cocinero/v1/internal/domain/recipe"
)

// RecipeAdaptService adapts a whole recipe to missing ingredients, missing
// appliances, dietary restrictions, and a target serving count
type RecipeAdaptService interface {
	AdaptRecipe(ctx context.Context, cmd AdaptRecipeCommand) (*AdaptedRecipe, error)
}

// AdaptRecipeCommand describes one adaptation request
type AdaptRecipeCommand struct {
	RecipeID            string
	MissingIngredients  []string
	MissingAppliances   []string
	DietaryRestrictions []string
	Servings            int // 0 keeps the base serving count
}

// SubstitutionEntry is one ledger line for a performed substitution
type SubstitutionEntry struct {
	OriginalID     string  `json:"original_id"`
	OriginalName   string  `json:"original_name"`
	SubstituteID   string  `json:"substitute_id"`
	SubstituteName string  `json:"substitute_name"`
	Ratio          float64 `json:"ratio"`
	Reason         string  `json:"reason"`
	Impact         ImpactAnalysis `json:"impact"`
}

// RemovedIngredientEntry is one ledger line for a dropped ingredient
type RemovedIngredientEntry struct {
	IngredientID string `json:"ingredient_id"`
	Name         string `json:"name"`
	Reason       string `json:"reason"`
}

// ModifiedStepEntry is one ledger line for a changed step.
// StepNumber 0 marks a recipe-wide note not tied to a single step.
type ModifiedStepEntry struct {
	StepNumber int    `json:"step_number"`
	Change     string `json:"change"`
}

// AdaptedRecipe is the full adaptation result. The ledger is part of the
// contract: a caller can explain every change from it.
type AdaptedRecipe struct {
	Recipe             recipe.Recipe            `json:"recipe"`
	Substitutions      []SubstitutionEntry      `json:"substitutions"`
	RemovedIngredients []RemovedIngredientEntry `json:"removed_ingredients"`
	ModifiedSteps      []ModifiedStepEntry      `json:"modified_steps"`
	Warnings           []string                 `json:"warnings"`
}

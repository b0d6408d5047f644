package inbound

import (
	"context"

	"github.com/cocinero/v1/internal/domain/recipe"
)

// VariantService stores and replays named diff bundles against base recipes
type VariantService interface {
	// CreateVariant persists the diff bundle unchanged; TimesUsed starts at 0
	CreateVariant(ctx context.Context, cmd CreateVariantCommand) (string, error)

	// ApplyVariantToRecipe materializes the derived recipe and increments
	// the variant's TimesUsed. The variant must belong to the base recipe.
	ApplyVariantToRecipe(ctx context.Context, baseRecipeID, variantID string) (*recipe.Recipe, error)

	// GetVariantSummary reports change counts derived from the diff alone
	GetVariantSummary(ctx context.Context, variantID string) (*recipe.Summary, error)

	ListVariantsForRecipe(ctx context.Context, baseRecipeID string) ([]recipe.Variant, error)
	DeleteVariant(ctx context.Context, variantID string) error
}

// CreateVariantCommand describes a new variant
type CreateVariantCommand struct {
	BaseRecipeID      string
	Name              string
	Description       string
	IngredientChanges []recipe.IngredientChange
	StepChanges       []recipe.StepChange
	Metadata          map[string]string
	Tags              []string
}

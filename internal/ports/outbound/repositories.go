// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems.
//
// Every repository is a thin, typed view over a generic key-value store
// (get-by-id, get-by-index, put, delete); the engine must not assume any
// particular storage engine behind them. Find operations return (nil, nil)
// when the id is unknown; the application layer decides whether that is an
// error.
package outbound

import (
	"context"
	"time"

	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/domain/knowledge"
	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/domain/preference"
	"github.com/cocinero/v1/internal/domain/profile"
	"github.com/cocinero/v1/internal/domain/recipe"
)

// IngredientRepository provides access to catalog ingredients
type IngredientRepository interface {
	FindByID(ctx context.Context, id string) (*catalog.Ingredient, error)
	FindAll(ctx context.Context) ([]catalog.Ingredient, error)
	Save(ctx context.Context, item catalog.Ingredient) error
}

// ApplianceRepository provides access to catalog appliances
type ApplianceRepository interface {
	FindByID(ctx context.Context, id string) (*catalog.Appliance, error)
	FindAll(ctx context.Context) ([]catalog.Appliance, error)
	Save(ctx context.Context, item catalog.Appliance) error
}

// SubstitutionEdgeRepository provides access to ingredient substitution edges
type SubstitutionEdgeRepository interface {
	// FindByOriginal returns all edges out of the given ingredient
	FindByOriginal(ctx context.Context, originalID string) ([]catalog.SubstitutionEdge, error)
	// FindByDietaryTag returns all edges carrying the given dietary tag
	FindByDietaryTag(ctx context.Context, tag string) ([]catalog.SubstitutionEdge, error)
	Save(ctx context.Context, edge catalog.SubstitutionEdge) error
}

// AdaptationEdgeRepository provides access to appliance adaptation edges
type AdaptationEdgeRepository interface {
	FindByOriginal(ctx context.Context, originalID string) ([]catalog.AdaptationEdge, error)
	Save(ctx context.Context, edge catalog.AdaptationEdge) error
}

// PreferenceRepository provides access to learned preference records,
// keyed by the (original, alternative) pair
type PreferenceRepository interface {
	FindByPair(ctx context.Context, originalID, alternativeID string) (*preference.Record, error)
	FindByOriginal(ctx context.Context, originalID string) ([]preference.Record, error)
	Save(ctx context.Context, record preference.Record) error
}

// RecipeRepository provides access to catalog recipes
type RecipeRepository interface {
	FindByID(ctx context.Context, id string) (*recipe.Recipe, error)
	FindByIDs(ctx context.Context, ids []string) ([]recipe.Recipe, error)
	FindAll(ctx context.Context) ([]recipe.Recipe, error)
	Save(ctx context.Context, r recipe.Recipe) error
}

// VariantRepository provides access to stored recipe variants
type VariantRepository interface {
	FindByID(ctx context.Context, id string) (*recipe.Variant, error)
	FindByBaseRecipe(ctx context.Context, baseRecipeID string) ([]recipe.Variant, error)
	Save(ctx context.Context, v recipe.Variant) error
	Delete(ctx context.Context, id string) error
}

// HistoryRepository provides access to cooking-session history
type HistoryRepository interface {
	FindByID(ctx context.Context, id string) (*mealplan.HistoryEntry, error)
	FindByRecipe(ctx context.Context, recipeID string) ([]mealplan.HistoryEntry, error)
	FindAll(ctx context.Context) ([]mealplan.HistoryEntry, error)
	Save(ctx context.Context, entry mealplan.HistoryEntry) error
}

// KnowledgeRepository provides access to user knowledge entries
type KnowledgeRepository interface {
	FindByID(ctx context.Context, id string) (*knowledge.Entry, error)
	FindByType(ctx context.Context, entryType knowledge.EntryType) ([]knowledge.Entry, error)
	FindAll(ctx context.Context) ([]knowledge.Entry, error)
	Save(ctx context.Context, entry knowledge.Entry) error
	Delete(ctx context.Context, id string) error
}

// MealPlanRepository provides access to weekly meal plans
type MealPlanRepository interface {
	FindByID(ctx context.Context, id string) (*mealplan.WeeklyPlan, error)
	// FindActive returns the plan whose date range covers the given date
	FindActive(ctx context.Context, date time.Time) (*mealplan.WeeklyPlan, error)
	Save(ctx context.Context, plan mealplan.WeeklyPlan) error
}

// InventoryRepository provides access to pantry stock
type InventoryRepository interface {
	FindByIngredient(ctx context.Context, ingredientID string) (*catalog.InventoryItem, error)
	FindAll(ctx context.Context) ([]catalog.InventoryItem, error)
	Save(ctx context.Context, item catalog.InventoryItem) error
	Delete(ctx context.Context, ingredientID string) error
}

// ProfileRepository provides access to the single-user household profile
type ProfileRepository interface {
	Get(ctx context.Context) (*profile.Profile, error)
	Save(ctx context.Context, p profile.Profile) error
}

// CacheRepository defines the interface for cache operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

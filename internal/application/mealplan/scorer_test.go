package mealplan

import (
	"testing"
	"time"

	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/domain/profile"
	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
)

func testRecipe() recipe.Recipe {
	return recipe.Recipe{
		ID:         "rec_lentejas",
		Title:      "Lentejas estofadas",
		Cuisine:    "espanola",
		Difficulty: "easy",
		Servings:   4,
		Ingredients: []recipe.Ingredient{
			{IngredientID: "ing_lentils", Amount: 400},
			{IngredientID: "ing_onion", Amount: 1},
			{IngredientID: "ing_garlic", Amount: 1, Optional: true},
		},
		TotalTimeMinutes: 60,
	}
}

func TestInventoryFactor(t *testing.T) {
	scorer := NewScorer(DefaultWeights(), nil)

	t.Run("FullPantry_ShouldScoreOne", func(t *testing.T) {
		b := scorer.Score(testRecipe(), Snapshot{
			Inventory: map[string]bool{"ing_lentils": true, "ing_onion": true},
			Now:       time.Now(),
		})
		assert.Equal(t, 1.0, b.Inventory)
	})

	t.Run("OptionalIngredients_ShouldNotCount", func(t *testing.T) {
		b := scorer.Score(testRecipe(), Snapshot{
			Inventory: map[string]bool{"ing_lentils": true, "ing_garlic": true},
			Now:       time.Now(),
		})
		assert.InDelta(t, 0.5, b.Inventory, 1e-9, "garlic is optional, one of two required matched")
	})

	t.Run("NoRequiredIngredients_ShouldScoreZero", func(t *testing.T) {
		r := testRecipe()
		r.Ingredients = []recipe.Ingredient{{IngredientID: "ing_garlic", Optional: true}}
		b := scorer.Score(r, Snapshot{Inventory: map[string]bool{}, Now: time.Now()})
		assert.Equal(t, 0.0, b.Inventory)
	})
}

func TestHistoryFactor(t *testing.T) {
	scorer := NewScorer(DefaultWeights(), nil)
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("NeverCooked_ShouldGetExploreBonus", func(t *testing.T) {
		b := scorer.Score(testRecipe(), Snapshot{Now: now})
		assert.Equal(t, 0.5, b.History)
	})

	t.Run("WellRated_ShouldScoreHigh", func(t *testing.T) {
		b := scorer.Score(testRecipe(), Snapshot{
			Stats: map[string]mealplan.RecipeStats{
				"rec_lentejas": {RecipeID: "rec_lentejas", TimesCooked: 2, RatingCount: 2, RatingSum: 10},
			},
			Now: now,
		})
		assert.InDelta(t, 0.8, b.History, 1e-9, "avg 5/5 with a 2-cook frequency penalty")
	})

	t.Run("Overcooked_ShouldBePenalizedToZero", func(t *testing.T) {
		b := scorer.Score(testRecipe(), Snapshot{
			Stats: map[string]mealplan.RecipeStats{
				"rec_lentejas": {RecipeID: "rec_lentejas", TimesCooked: 12, RatingCount: 1, RatingSum: 5},
			},
			Now: now,
		})
		assert.Equal(t, 0.0, b.History)
	})
}

func TestVarietyAndFreshnessFactors(t *testing.T) {
	scorer := NewScorer(DefaultWeights(), nil)
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("AlreadyPlaced_ShouldDropVariety", func(t *testing.T) {
		b := scorer.Score(testRecipe(), Snapshot{
			Used: map[string]bool{"rec_lentejas": true},
			Now:  now,
		})
		assert.Equal(t, 0.3, b.Variety)
	})

	t.Run("CookedYesterday_ShouldScoreLowFreshness", func(t *testing.T) {
		b := scorer.Score(testRecipe(), Snapshot{
			Stats: map[string]mealplan.RecipeStats{
				"rec_lentejas": {RecipeID: "rec_lentejas", TimesCooked: 1, LastCookedAt: now.AddDate(0, 0, -1)},
			},
			Now: now,
		})
		assert.InDelta(t, 1.0/14, b.Freshness, 1e-9)
	})

	t.Run("CookedLongAgo_ShouldSaturateAtOne", func(t *testing.T) {
		b := scorer.Score(testRecipe(), Snapshot{
			Stats: map[string]mealplan.RecipeStats{
				"rec_lentejas": {RecipeID: "rec_lentejas", TimesCooked: 1, LastCookedAt: now.AddDate(0, -2, 0)},
			},
			Now: now,
		})
		assert.Equal(t, 1.0, b.Freshness)
	})
}

func TestPreferenceFactor(t *testing.T) {
	scorer := NewScorer(DefaultWeights(), DefaultSkillTable())
	now := time.Now()

	t.Run("NoPreferencesSet_ShouldScoreNeutral", func(t *testing.T) {
		b := scorer.Score(testRecipe(), Snapshot{Now: now})
		assert.InDelta(t, 0.5, b.Preferences, 1e-9)
	})

	t.Run("MatchingCuisineAndSkill_ShouldScoreHigh", func(t *testing.T) {
		b := scorer.Score(testRecipe(), Snapshot{
			Now: now,
			Prefs: profile.Profile{
				PreferredCuisines: []string{"espanola"},
				Skill:             profile.SkillBeginner,
				MaxCookingMinutes: 90,
			},
		})
		assert.Equal(t, 1.0, b.Preferences, "cuisine 1.0, easy-for-beginner 1.0, within budget 1.0")
	})

	t.Run("OverTimeBudget_ShouldDegradeNotZero", func(t *testing.T) {
		b := scorer.Score(testRecipe(), Snapshot{
			Now: now,
			Prefs: profile.Profile{
				MaxCookingMinutes: 30, // recipe needs 60
			},
		})
		assert.InDelta(t, (0.5+0.5+0.5)/3, b.Preferences, 1e-9)
	})
}

func TestFinalScoreWeighting(t *testing.T) {
	weights := Weights{Inventory: 1} // isolate one factor
	scorer := NewScorer(weights, nil)

	b := scorer.Score(testRecipe(), Snapshot{
		Inventory: map[string]bool{"ing_lentils": true, "ing_onion": true},
		Now:       time.Now(),
	})
	assert.InDelta(t, 1.0, b.Final, 1e-9)
}

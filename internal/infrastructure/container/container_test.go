package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/infrastructure/config"
)

func TestDietaryRules(t *testing.T) {
	t.Run("EmptyConfig_ShouldFallBackToBuiltins", func(t *testing.T) {
		rules := dietaryRules(config.DietaryConfig{})

		assert.True(t, rules.Known("vegan"))
		assert.True(t, rules.Violates("vegan", catalog.Ingredient{ID: "ing_milk", Category: "dairy"}))
	})

	t.Run("ConfiguredTable_ShouldReplaceBuiltins", func(t *testing.T) {
		rules := dietaryRules(config.DietaryConfig{
			Rules: map[string][]config.CategoryRuleConfig{
				"nut-free": {
					{Category: "flour", Subcategories: []string{"nut"}},
				},
			},
		})

		require.True(t, rules.Known("nut-free"))
		assert.False(t, rules.Known("vegan"))
		assert.True(t, rules.Violates("nut-free", catalog.Ingredient{Category: "flour", Subcategory: "nut"}))
		assert.False(t, rules.Violates("nut-free", catalog.Ingredient{Category: "flour", Subcategory: "wheat"}))
	})
}

func TestPlannerOptions(t *testing.T) {
	opts := plannerOptions(config.PlannerConfig{
		Temperature: 0.4,
		Weights: config.WeightsConfig{
			Inventory: 0.5, History: 0.2, Variety: 0.1, Freshness: 0.1, Preferences: 0.1,
		},
		SlotKeywords: map[string][]string{
			"desayuno": {"reposteria", "dulce"},
		},
	})

	assert.InDelta(t, 0.4, opts.Temperature, 0.001)
	assert.InDelta(t, 0.5, opts.Weights.Inventory, 0.001)
	require.Contains(t, opts.SlotKeywords, mealplan.SlotDesayuno)
	assert.Equal(t, []string{"reposteria", "dulce"}, opts.SlotKeywords[mealplan.SlotDesayuno])
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/domain/preference"
	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RepositoriesTestSuite provides a test suite for the in-memory adapters
type RepositoriesTestSuite struct {
	suite.Suite
}

func (suite *RepositoriesTestSuite) TestUnknownIDsReturnNilNil() {
	ctx := context.Background()

	ing, err := NewIngredientRepository().FindByID(ctx, "nope")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), ing)

	rec, err := NewRecipeRepository().FindByID(ctx, "nope")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), rec)

	record, err := NewPreferenceRepository().FindByPair(ctx, "a", "b")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), record)
}

func (suite *RepositoriesTestSuite) TestSaveValidates() {
	ctx := context.Background()

	err := NewIngredientRepository().Save(ctx, catalog.Ingredient{ID: "x"})
	assert.ErrorIs(suite.T(), err, catalog.ErrEmptyItemName)

	err = NewPreferenceRepository().Save(ctx, preference.Record{OriginalID: "a"})
	assert.Error(suite.T(), err)
}

func (suite *RepositoriesTestSuite) TestRecipeRepositoryIsolation() {
	ctx := context.Background()
	repo := NewRecipeRepository()

	original := recipe.Recipe{
		ID: "rec_x", Title: "X", Servings: 2,
		Ingredients: []recipe.Ingredient{{IngredientID: "ing_a", Amount: 100}},
	}
	require.NoError(suite.T(), repo.Save(ctx, original))

	loaded, err := repo.FindByID(ctx, "rec_x")
	require.NoError(suite.T(), err)
	loaded.Ingredients[0].Amount = 999

	reloaded, err := repo.FindByID(ctx, "rec_x")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 100.0, reloaded.Ingredients[0].Amount,
		"mutating a loaded copy never touches the stored recipe")
}

func (suite *RepositoriesTestSuite) TestSubstitutionEdgeQueries() {
	ctx := context.Background()
	repo := NewSubstitutionEdgeRepository()

	require.NoError(suite.T(), repo.Save(ctx, catalog.SubstitutionEdge{
		OriginalID: "ing_butter", AlternativeID: "ing_oliveoil",
		Ratio: 0.75, Confidence: 0.8, DietaryTags: []string{"vegan"},
	}))
	require.NoError(suite.T(), repo.Save(ctx, catalog.SubstitutionEdge{
		OriginalID: "ing_milk", AlternativeID: "ing_oatmilk",
		Ratio: 1, Confidence: 0.9, DietaryTags: []string{"vegan", "dairy-free"},
	}))

	byOriginal, err := repo.FindByOriginal(ctx, "ing_butter")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), byOriginal, 1)

	vegan, err := repo.FindByDietaryTag(ctx, "vegan")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), vegan, 2)

	dairyFree, err := repo.FindByDietaryTag(ctx, "dairy-free")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), dairyFree, 1)
	assert.Equal(suite.T(), "ing_milk", dairyFree[0].OriginalID)
}

func (suite *RepositoriesTestSuite) TestMealPlanActiveWindow() {
	ctx := context.Background()
	repo := NewMealPlanRepository()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	require.NoError(suite.T(), repo.Save(ctx, mealplan.WeeklyPlan{
		ID: "plan_a", StartDate: start, EndDate: end, Active: true,
	}))

	suite.Run("WholeEndDay_ShouldStillCount", func() {
		found, err := repo.FindActive(ctx, end.Add(23*time.Hour))
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), found)
		assert.Equal(suite.T(), "plan_a", found.ID)
	})

	suite.Run("DayAfterEnd_ShouldNotMatch", func() {
		found, err := repo.FindActive(ctx, end.AddDate(0, 0, 1))
		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), found)
	})

	suite.Run("BeforeStart_ShouldNotMatch", func() {
		found, err := repo.FindActive(ctx, start.Add(-time.Hour))
		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), found)
	})

	suite.Run("OverlappingActivePlan_ShouldDeactivateOld", func() {
		require.NoError(suite.T(), repo.Save(ctx, mealplan.WeeklyPlan{
			ID: "plan_b", StartDate: start.AddDate(0, 0, 3), EndDate: end.AddDate(0, 0, 3), Active: true,
		}))

		old, err := repo.FindByID(ctx, "plan_a")
		require.NoError(suite.T(), err)
		assert.False(suite.T(), old.Active)

		active, err := repo.FindActive(ctx, start.AddDate(0, 0, 4))
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), active)
		assert.Equal(suite.T(), "plan_b", active.ID)
	})

	suite.Run("DisjointActivePlan_ShouldCoexist", func() {
		farStart := start.AddDate(0, 2, 0)
		require.NoError(suite.T(), repo.Save(ctx, mealplan.WeeklyPlan{
			ID: "plan_c", StartDate: farStart, EndDate: farStart.AddDate(0, 0, 6), Active: true,
		}))

		b, err := repo.FindByID(ctx, "plan_b")
		require.NoError(suite.T(), err)
		assert.True(suite.T(), b.Active)
	})
}

func (suite *RepositoriesTestSuite) TestInventoryLifecycle() {
	ctx := context.Background()
	repo := NewInventoryRepository()

	require.NoError(suite.T(), repo.Save(ctx, catalog.InventoryItem{
		IngredientID: "ing_rice", Quantity: 500, Unit: "g",
	}))

	item, err := repo.FindByIngredient(ctx, "ing_rice")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), item)
	assert.Equal(suite.T(), 500.0, item.Quantity)

	require.NoError(suite.T(), repo.Delete(ctx, "ing_rice"))
	item, err = repo.FindByIngredient(ctx, "ing_rice")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), item)

	err = repo.Save(ctx, catalog.InventoryItem{IngredientID: "ing_rice", Quantity: -1})
	assert.ErrorIs(suite.T(), err, catalog.ErrNegativeQuantity)
}

func TestRepositoriesTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoriesTestSuite))
}

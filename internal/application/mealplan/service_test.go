package mealplan

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/domain/profile"
	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/cocinero/v1/internal/infrastructure/persistence/memory"
	"github.com/cocinero/v1/internal/ports/inbound"
	apperrors "github.com/cocinero/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// PlannerTestSuite provides a test suite for the weekly planner
type PlannerTestSuite struct {
	suite.Suite
	recipes   *memory.RecipeRepository
	inventory *memory.InventoryRepository
	history   *memory.HistoryRepository
	profiles  *memory.ProfileRepository
	plans     *memory.MealPlanRepository
	service   inbound.PlannerService
}

func (suite *PlannerTestSuite) SetupTest() {
	suite.recipes = memory.NewRecipeRepository()
	suite.inventory = memory.NewInventoryRepository()
	suite.history = memory.NewHistoryRepository()
	suite.profiles = memory.NewProfileRepository()
	suite.plans = memory.NewMealPlanRepository()

	suite.service = NewService(
		suite.recipes, suite.inventory, suite.history, suite.profiles,
		suite.plans, memory.NewCacheRepository(), Options{}, zap.NewNop())

	suite.seedRecipes(30)
}

// seedRecipes stores n recipes cycling through slot-matching categories
func (suite *PlannerTestSuite) seedRecipes(n int) {
	ctx := context.Background()
	categories := []string{"reposteria", "ensaladas", "guisos", "sopas", "carnes", "pastas"}
	for i := 0; i < n; i++ {
		require.NoError(suite.T(), suite.recipes.Save(ctx, recipe.Recipe{
			ID:       fmt.Sprintf("rec_%02d", i),
			Title:    fmt.Sprintf("Receta %02d", i),
			Category: categories[i%len(categories)],
			Servings: 4,
			Ingredients: []recipe.Ingredient{
				{IngredientID: fmt.Sprintf("ing_%02d", i), Amount: 100},
			},
		}))
	}
}

func (suite *PlannerTestSuite) TestGeneratePlan() {
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.Run("Plan_ShouldNeverRepeatARecipe", func() {
		plan, err := suite.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{
			StartDate: start,
			Seed:      42,
		})
		require.NoError(suite.T(), err)

		assert.Len(suite.T(), plan.AssignedRecipes(), plan.AssignmentCount(),
			"every filled slot holds a distinct recipe")
		assert.True(suite.T(), plan.Active)
		assert.Equal(suite.T(), start, plan.StartDate)
		assert.Equal(suite.T(), start.AddDate(0, 0, 6), plan.EndDate)
	})

	suite.Run("SameSeed_ShouldProduceSameAssignment", func() {
		first, err := suite.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{StartDate: start, Seed: 7})
		require.NoError(suite.T(), err)
		second, err := suite.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{StartDate: start, Seed: 7})
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), first.Days, second.Days)
	})

	suite.Run("SmallPool_ShouldFillPartially", func() {
		plan, err := suite.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{
			StartDate:    start,
			CandidateIDs: []string{"rec_00", "rec_01", "rec_02"},
			Seed:         1,
		})
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 3, plan.AssignmentCount(), "three candidates fill three slots, rest stay empty")
	})

	suite.Run("EmptyPool_ShouldBeUnsatisfiable", func() {
		_, err := suite.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{
			StartDate:    start,
			CandidateIDs: []string{"rec_does_not_exist"},
		})
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodePlanUnsatisfiable))
	})
}

func (suite *PlannerTestSuite) TestProposedPlan() {
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	sevenDays := func() []inbound.ProposedDay {
		days := make([]inbound.ProposedDay, 7)
		days[0].Comida = "rec_02"
		days[3].Cena = "rec_03"
		return days
	}

	suite.Run("ValidProposal_ShouldBeUsedVerbatim", func() {
		plan, err := suite.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{
			StartDate: start,
			Proposed:  &inbound.ProposedPlan{Days: sevenDays()},
		})
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), "rec_02", plan.Days[0].Comida)
		assert.Equal(suite.T(), "rec_03", plan.Days[3].Cena)
		assert.Equal(suite.T(), 2, plan.AssignmentCount())
	})

	suite.Run("WrongDayCount_ShouldFallBackToOwnSelection", func() {
		plan, err := suite.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{
			StartDate: start,
			Proposed:  &inbound.ProposedPlan{Days: sevenDays()[:5]},
			Seed:      11,
		})
		require.NoError(suite.T(), err)
		assert.Greater(suite.T(), plan.AssignmentCount(), 2, "fallback runs the planner's own selection")
	})

	suite.Run("UnknownRecipeID_ShouldFallBackToOwnSelection", func() {
		days := sevenDays()
		days[1].Desayuno = "rec_fantasma"

		plan, err := suite.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{
			StartDate: start,
			Proposed:  &inbound.ProposedPlan{Days: days},
			Seed:      11,
		})
		require.NoError(suite.T(), err)
		assert.NotContains(suite.T(), plan.AssignedRecipes(), "rec_fantasma")
	})
}

func (suite *PlannerTestSuite) TestGenerateFromQuestionnaire() {
	ctx := context.Background()
	start := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)

	suite.Run("Deterministic_ShouldRepeatExactly", func() {
		cmd := inbound.QuestionnaireCommand{
			StartDate:  start,
			SkillLevel: "beginner",
			MaxMinutes: 60,
		}
		first, err := suite.service.GenerateFromQuestionnaire(ctx, cmd)
		require.NoError(suite.T(), err)
		second, err := suite.service.GenerateFromQuestionnaire(ctx, cmd)
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), first.Days, second.Days)
	})

	suite.Run("InventoryMatch_ShouldRankStockedRecipesFirst", func() {
		require.NoError(suite.T(), suite.inventory.Save(ctx, catalog.InventoryItem{
			IngredientID: "ing_04", Quantity: 2, Unit: "unidad",
		}))

		plan, err := suite.service.GenerateFromQuestionnaire(ctx, inbound.QuestionnaireCommand{StartDate: start})
		require.NoError(suite.T(), err)

		// rec_04 is the only recipe whose ingredient is in stock; the
		// deterministic ranking places it before its slot rivals
		assert.Contains(suite.T(), plan.AssignedRecipes(), "rec_04")
	})

	suite.Run("ExcludedRecipes_ShouldNeverAppear", func() {
		plan, err := suite.service.GenerateFromQuestionnaire(ctx, inbound.QuestionnaireCommand{
			StartDate:         start,
			ExcludedRecipeIDs: []string{"rec_00", "rec_01"},
		})
		require.NoError(suite.T(), err)

		assert.NotContains(suite.T(), plan.AssignedRecipes(), "rec_00")
		assert.NotContains(suite.T(), plan.AssignedRecipes(), "rec_01")
	})

	suite.Run("NegativeTimeBudget_ShouldFail", func() {
		_, err := suite.service.GenerateFromQuestionnaire(ctx, inbound.QuestionnaireCommand{
			StartDate:  start,
			MaxMinutes: -1,
		})
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func (suite *PlannerTestSuite) TestGetActivePlan() {
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.Run("NoPlan_ShouldReturnNotFound", func() {
		_, err := suite.service.GetActivePlan(ctx, start)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeNotFound))
	})

	suite.Run("GeneratedPlan_ShouldBeActiveForItsRange", func() {
		generated, err := suite.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{
			StartDate: start,
			Seed:      5,
		})
		require.NoError(suite.T(), err)

		midweek, err := suite.service.GetActivePlan(ctx, start.AddDate(0, 0, 3))
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), generated.ID, midweek.ID)
	})

	suite.Run("NewPlan_ShouldDeactivateOverlappingOld", func() {
		first, err := suite.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{StartDate: start, Seed: 5})
		require.NoError(suite.T(), err)
		second, err := suite.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{StartDate: start, Seed: 6})
		require.NoError(suite.T(), err)
		require.NotEqual(suite.T(), first.ID, second.ID)

		stored, err := suite.plans.FindByID(ctx, first.ID)
		require.NoError(suite.T(), err)
		assert.False(suite.T(), stored.Active)

		active, err := suite.plans.FindActive(ctx, start)
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), active)
		assert.Equal(suite.T(), second.ID, active.ID)
	})
}

// failingProfileRepository simulates a profile store outage
type failingProfileRepository struct{}

func (failingProfileRepository) Get(ctx context.Context) (*profile.Profile, error) {
	return nil, errors.New("profile store down")
}

func (failingProfileRepository) Save(ctx context.Context, p profile.Profile) error {
	return errors.New("profile store down")
}

func (suite *PlannerTestSuite) TestProfileLoadFailure() {
	core, logs := observer.New(zap.WarnLevel)
	service := NewService(
		suite.recipes, suite.inventory, suite.history, failingProfileRepository{},
		suite.plans, memory.NewCacheRepository(), Options{}, zap.New(core))

	plan, err := service.GeneratePlan(context.Background(), inbound.GeneratePlanCommand{
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Seed:      7,
	})
	require.NoError(suite.T(), err, "a failed profile read must not fail plan generation")
	require.NotNil(suite.T(), plan)

	warned := false
	for _, entry := range logs.All() {
		if entry.Message == "Failed to load profile for scoring" {
			warned = true
		}
	}
	assert.True(suite.T(), warned, "the failed profile read is logged")
}

func TestPlannerTestSuite(t *testing.T) {
	suite.Run(t, new(PlannerTestSuite))
}

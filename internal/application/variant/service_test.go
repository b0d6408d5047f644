package variant

import (
	"context"
	"testing"

	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/cocinero/v1/internal/infrastructure/persistence/memory"
	"github.com/cocinero/v1/internal/ports/inbound"
	apperrors "github.com/cocinero/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// ServiceTestSuite provides a test suite for the variant service
type ServiceTestSuite struct {
	suite.Suite
	variants *memory.VariantRepository
	recipes  *memory.RecipeRepository
	service  inbound.VariantService
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.variants = memory.NewVariantRepository()
	suite.recipes = memory.NewRecipeRepository()
	suite.service = NewService(suite.variants, suite.recipes, zap.NewNop())

	require.NoError(suite.T(), suite.recipes.Save(context.Background(), recipe.Recipe{
		ID:       "rec_lentejas",
		Title:    "Lentejas estofadas",
		Category: "guisos",
		Servings: 4,
		Ingredients: []recipe.Ingredient{
			{IngredientID: "ing_lentils", Name: "Lentejas", Amount: 400, Unit: "g"},
			{IngredientID: "ing_chorizo", Name: "Chorizo", Amount: 100, Unit: "g"},
			{IngredientID: "ing_onion", Name: "Cebolla", Amount: 1, Unit: "unidad"},
		},
		Steps: []recipe.Step{
			{Number: 1, Instruction: "Sofreir la cebolla"},
			{Number: 2, Instruction: "Anadir el chorizo"},
			{Number: 3, Instruction: "Incorporar las lentejas y cubrir de agua"},
			{Number: 4, Instruction: "Cocer 45 minutos"},
		},
	}))
}

func (suite *ServiceTestSuite) createVegetarianVariant() string {
	id, err := suite.service.CreateVariant(context.Background(), inbound.CreateVariantCommand{
		BaseRecipeID: "rec_lentejas",
		Name:         "Lentejas vegetarianas",
		IngredientChanges: []recipe.IngredientChange{
			{Kind: recipe.ChangeRemoved, IngredientID: "ing_chorizo"},
			{Kind: recipe.ChangeModified, IngredientID: "ing_lentils", Ingredient: &recipe.Ingredient{
				IngredientID: "ing_lentils", Name: "Lentejas", Amount: 500, Unit: "g",
			}},
			{Kind: recipe.ChangeAdded, IngredientID: "ing_carrot", Ingredient: &recipe.Ingredient{
				IngredientID: "ing_carrot", Name: "Zanahoria", Amount: 2, Unit: "unidad",
			}},
		},
		StepChanges: []recipe.StepChange{
			{Kind: recipe.ChangeRemoved, StepNumber: 2},
			{Kind: recipe.ChangeAdded, StepNumber: 5, Step: &recipe.Step{
				Number: 5, Instruction: "Anadir pimenton al final",
			}},
		},
	})
	require.NoError(suite.T(), err)
	return id
}

func (suite *ServiceTestSuite) TestCreateVariant() {
	ctx := context.Background()

	suite.Run("ValidDiff_ShouldPersistWithZeroUsage", func() {
		id := suite.createVegetarianVariant()

		stored, err := suite.variants.FindByID(ctx, id)
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), stored)
		assert.Equal(suite.T(), 0, stored.TimesUsed)
		assert.Equal(suite.T(), "rec_lentejas", stored.BaseRecipeID)
	})

	suite.Run("UnknownBaseRecipe_ShouldFail", func() {
		_, err := suite.service.CreateVariant(ctx, inbound.CreateVariantCommand{
			BaseRecipeID: "rec_nope",
			Name:         "x",
		})
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})

	suite.Run("DuplicateChangeIDs_ShouldFailValidation", func() {
		_, err := suite.service.CreateVariant(ctx, inbound.CreateVariantCommand{
			BaseRecipeID: "rec_lentejas",
			Name:         "rota",
			IngredientChanges: []recipe.IngredientChange{
				{Kind: recipe.ChangeRemoved, IngredientID: "ing_chorizo"},
				{Kind: recipe.ChangeModified, IngredientID: "ing_chorizo", Ingredient: &recipe.Ingredient{
					IngredientID: "ing_chorizo", Amount: 50,
				}},
			},
		})
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func (suite *ServiceTestSuite) TestApplyVariantToRecipe() {
	ctx := context.Background()

	suite.Run("Diff_ShouldMaterializeDerivedRecipe", func() {
		id := suite.createVegetarianVariant()

		derived, err := suite.service.ApplyVariantToRecipe(ctx, "rec_lentejas", id)
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), -1, derived.FindIngredient("ing_chorizo"))
		assert.GreaterOrEqual(suite.T(), derived.FindIngredient("ing_carrot"), 0)
		idx := derived.FindIngredient("ing_lentils")
		require.GreaterOrEqual(suite.T(), idx, 0)
		assert.Equal(suite.T(), 500.0, derived.Ingredients[idx].Amount)

		// Step 2 removed, step 5 appended: survivors renumber densely to 1..4
		require.Len(suite.T(), derived.Steps, 4)
		for i, step := range derived.Steps {
			assert.Equal(suite.T(), i+1, step.Number)
		}
		assert.Equal(suite.T(), "Sofreir la cebolla", derived.Steps[0].Instruction)
		assert.Equal(suite.T(), "Incorporar las lentejas y cubrir de agua", derived.Steps[1].Instruction)
		assert.Equal(suite.T(), "Anadir pimenton al final", derived.Steps[3].Instruction)
	})

	suite.Run("Apply_ShouldIncrementTimesUsed", func() {
		id := suite.createVegetarianVariant()

		_, err := suite.service.ApplyVariantToRecipe(ctx, "rec_lentejas", id)
		require.NoError(suite.T(), err)
		_, err = suite.service.ApplyVariantToRecipe(ctx, "rec_lentejas", id)
		require.NoError(suite.T(), err)

		stored, err := suite.variants.FindByID(ctx, id)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2, stored.TimesUsed)
	})

	suite.Run("Apply_ShouldNotMutateBaseRecipe", func() {
		id := suite.createVegetarianVariant()

		_, err := suite.service.ApplyVariantToRecipe(ctx, "rec_lentejas", id)
		require.NoError(suite.T(), err)

		base, err := suite.recipes.FindByID(ctx, "rec_lentejas")
		require.NoError(suite.T(), err)
		assert.GreaterOrEqual(suite.T(), base.FindIngredient("ing_chorizo"), 0)
		assert.Len(suite.T(), base.Steps, 4)
	})

	suite.Run("WrongBaseRecipe_ShouldFail", func() {
		require.NoError(suite.T(), suite.recipes.Save(ctx, recipe.Recipe{
			ID: "rec_otro", Title: "Otro", Servings: 2,
		}))
		id := suite.createVegetarianVariant()

		_, err := suite.service.ApplyVariantToRecipe(ctx, "rec_otro", id)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeVariantBaseMismatch))
	})

	suite.Run("UnknownVariant_ShouldFail", func() {
		_, err := suite.service.ApplyVariantToRecipe(ctx, "rec_lentejas", "var_nope")
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeVariantNotFound))
	})
}

func (suite *ServiceTestSuite) TestGetVariantSummary() {
	ctx := context.Background()
	id := suite.createVegetarianVariant()

	summary, err := suite.service.GetVariantSummary(ctx, id)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), 1, summary.IngredientsRemoved)
	assert.Equal(suite.T(), 1, summary.IngredientsModified)
	assert.Equal(suite.T(), 1, summary.IngredientsAdded)
	assert.Equal(suite.T(), 1, summary.StepsRemoved)
	assert.Equal(suite.T(), 1, summary.StepsAdded)
	assert.Equal(suite.T(), 0, summary.StepsModified)
}

func (suite *ServiceTestSuite) TestListAndDelete() {
	ctx := context.Background()
	id := suite.createVegetarianVariant()

	variants, err := suite.service.ListVariantsForRecipe(ctx, "rec_lentejas")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), variants, 1)

	require.NoError(suite.T(), suite.service.DeleteVariant(ctx, id))

	variants, err = suite.service.ListVariantsForRecipe(ctx, "rec_lentejas")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), variants)

	err = suite.service.DeleteVariant(ctx, id)
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeVariantNotFound))
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

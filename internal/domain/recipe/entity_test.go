package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RecipeTestSuite provides a test suite for the Recipe entity
type RecipeTestSuite struct {
	suite.Suite
}

func (suite *RecipeTestSuite) baseRecipe() Recipe {
	return Recipe{
		ID:       "rec_bizcocho",
		Title:    "Bizcocho de mantequilla",
		Category: "reposteria",
		Servings: 8,
		Ingredients: []Ingredient{
			{IngredientID: "ing_butter", Name: "Mantequilla", Amount: 200, Unit: "g"},
			{IngredientID: "ing_flour_wheat", Name: "Harina de trigo", Amount: 300, Unit: "g"},
			{IngredientID: "ing_garlic", Name: "Ajo", Amount: 1, Unit: "diente", Optional: true},
		},
		Steps: []Step{
			{Number: 1, Instruction: "Batir la mantequilla con el azucar"},
			{Number: 2, Instruction: "Incorporar la harina"},
			{Number: 3, Instruction: "Hornear 40 minutos"},
		},
	}
}

func (suite *RecipeTestSuite) TestValidate() {
	suite.Run("ValidRecipe_ShouldPass", func() {
		require.NoError(suite.T(), suite.baseRecipe().Validate())
	})

	suite.Run("GappedSteps_ShouldFail", func() {
		r := suite.baseRecipe()
		r.Steps[2].Number = 5
		assert.ErrorIs(suite.T(), r.Validate(), ErrStepsNotDense)
	})

	suite.Run("DuplicateStepNumbers_ShouldFail", func() {
		r := suite.baseRecipe()
		r.Steps[1].Number = 1
		assert.ErrorIs(suite.T(), r.Validate(), ErrStepsNotDense)
	})

	suite.Run("ZeroServings_ShouldFail", func() {
		r := suite.baseRecipe()
		r.Servings = 0
		assert.ErrorIs(suite.T(), r.Validate(), ErrInvalidServings)
	})
}

func (suite *RecipeTestSuite) TestClone() {
	original := suite.baseRecipe()
	clone := original.Clone()

	clone.Ingredients[0].Amount = 999
	clone.Steps[0].Instruction = "changed"
	clone.Tags = append(clone.Tags, "nuevo")

	assert.Equal(suite.T(), 200.0, original.Ingredients[0].Amount)
	assert.Equal(suite.T(), "Batir la mantequilla con el azucar", original.Steps[0].Instruction)
	assert.Empty(suite.T(), original.Tags)
}

func (suite *RecipeTestSuite) TestRescale() {
	suite.Run("DoubleServings_ShouldDoubleAmounts", func() {
		r := suite.baseRecipe()
		r.Rescale(16)

		assert.Equal(suite.T(), 16, r.Servings)
		assert.Equal(suite.T(), 400.0, r.Ingredients[0].Amount)
		assert.Equal(suite.T(), 600.0, r.Ingredients[1].Amount)
	})

	suite.Run("FractionalScale_ShouldRoundToTwoDecimals", func() {
		r := suite.baseRecipe()
		r.Ingredients[0].Amount = 100
		r.Rescale(3) // factor 0.375

		assert.Equal(suite.T(), 37.5, r.Ingredients[0].Amount)
	})

	suite.Run("SameServings_ShouldBeNoop", func() {
		r := suite.baseRecipe()
		r.Rescale(8)
		assert.Equal(suite.T(), 200.0, r.Ingredients[0].Amount)
	})

	suite.Run("NonPositiveTarget_ShouldBeNoop", func() {
		r := suite.baseRecipe()
		r.Rescale(0)
		assert.Equal(suite.T(), 8, r.Servings)
	})
}

func (suite *RecipeTestSuite) TestRenumberSteps() {
	r := suite.baseRecipe()
	// Simulate a removal leaving a gap plus an appended step out of order
	r.Steps = []Step{
		{Number: 1, Instruction: "uno"},
		{Number: 3, Instruction: "tres"},
		{Number: 7, Instruction: "siete"},
	}

	r.RenumberSteps()

	require.Len(suite.T(), r.Steps, 3)
	assert.Equal(suite.T(), []Step{
		{Number: 1, Instruction: "uno"},
		{Number: 2, Instruction: "tres"},
		{Number: 3, Instruction: "siete"},
	}, r.Steps)
	require.NoError(suite.T(), r.Validate())
}

func (suite *RecipeTestSuite) TestAppendStepNote() {
	r := suite.baseRecipe()

	assert.True(suite.T(), r.AppendStepNote(3, "reducir el tiempo 10 minutos"))
	assert.Contains(suite.T(), r.Steps[2].Instruction, "(Note: reducir el tiempo 10 minutos)")

	assert.False(suite.T(), r.AppendStepNote(9, "no existe"))
}

func (suite *RecipeTestSuite) TestFindAndRemoveIngredient() {
	r := suite.baseRecipe()

	idx := r.FindIngredient("ing_flour_wheat")
	require.Equal(suite.T(), 1, idx)

	r.RemoveIngredient(idx)
	assert.Equal(suite.T(), -1, r.FindIngredient("ing_flour_wheat"))
	assert.Len(suite.T(), r.Ingredients, 2)
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}

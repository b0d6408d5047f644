package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// EdgeTestSuite provides a test suite for substitution and adaptation edges
type EdgeTestSuite struct {
	suite.Suite
}

func (suite *EdgeTestSuite) TestContextMatching() {
	factors := ContextFactors{
		RecipeTypes: []string{"reposteria", "salsas"},
		Cuisines:    []string{"espanola"},
	}

	suite.Run("EmptyQuery_ShouldAlwaysMatch", func() {
		assert.True(suite.T(), factors.Matches(RuleContext{}))
	})

	suite.Run("MemberValue_ShouldMatch", func() {
		assert.True(suite.T(), factors.Matches(RuleContext{RecipeType: "reposteria"}))
	})

	suite.Run("NonMemberValue_ShouldNotMatch", func() {
		assert.False(suite.T(), factors.Matches(RuleContext{RecipeType: "guisos"}))
	})

	suite.Run("EmptyDimension_ShouldBeWildcard", func() {
		// CookingMethods is empty on the edge, so any method is admitted
		assert.True(suite.T(), factors.Matches(RuleContext{
			RecipeType:    "salsas",
			CookingMethod: "horneado",
		}))
	})

	suite.Run("AllDimensionsMustAdmit", func() {
		assert.False(suite.T(), factors.Matches(RuleContext{
			RecipeType: "reposteria",
			Cuisine:    "italiana",
		}))
	})
}

func (suite *EdgeTestSuite) TestSubstitutionEdgeValidation() {
	suite.Run("ValidEdge_ShouldCreate", func() {
		edge, err := NewSubstitutionEdge("ing_butter", "ing_oliveoil", 0.75, 0.8)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 0.75, edge.Ratio)
	})

	suite.Run("ZeroRatio_ShouldFail", func() {
		_, err := NewSubstitutionEdge("a", "b", 0, 0.5)
		assert.ErrorIs(suite.T(), err, ErrInvalidRatio)
	})

	suite.Run("ConfidenceAboveOne_ShouldFail", func() {
		_, err := NewSubstitutionEdge("a", "b", 1, 1.1)
		assert.ErrorIs(suite.T(), err, ErrInvalidConfidence)
	})

	suite.Run("MissingIDs_ShouldFail", func() {
		_, err := NewSubstitutionEdge("", "b", 1, 0.5)
		assert.ErrorIs(suite.T(), err, ErrEmptyItemID)
	})
}

func (suite *EdgeTestSuite) TestDietaryTags() {
	edge := SubstitutionEdge{
		OriginalID:    "ing_butter",
		AlternativeID: "ing_oliveoil",
		Ratio:         0.75,
		Confidence:    0.8,
		DietaryTags:   []string{"vegan", "dairy-free"},
	}

	assert.True(suite.T(), edge.HasDietaryTag("vegan"))
	assert.False(suite.T(), edge.HasDietaryTag("gluten-free"))
}

func (suite *EdgeTestSuite) TestApplianceFunctionality() {
	airfryer := Appliance{
		ID:              "app_airfryer",
		Name:            "Freidora de aire",
		Functionalities: []string{"hornear", "asar"},
	}

	assert.True(suite.T(), airfryer.CanDo("hornear"))
	assert.False(suite.T(), airfryer.CanDo("triturar"))
}

func TestEdgeTestSuite(t *testing.T) {
	suite.Run(t, new(EdgeTestSuite))
}

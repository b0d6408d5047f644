package mealplan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	knowledgeapp "github.com/cocinero/v1/internal/application/knowledge"
	preferenceapp "github.com/cocinero/v1/internal/application/preference"
	domainknowledge "github.com/cocinero/v1/internal/domain/knowledge"
	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/cocinero/v1/internal/infrastructure/persistence/memory"
	"github.com/cocinero/v1/internal/ports/inbound"
	apperrors "github.com/cocinero/v1/pkg/errors"
)

type HistoryServiceTestSuite struct {
	suite.Suite
	ctx context.Context

	historyRepo   *memory.HistoryRepository
	prefRepo      *memory.PreferenceRepository
	knowledgeRepo *memory.KnowledgeRepository
	service       inbound.HistoryService
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}

func (s *HistoryServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	logger := zap.NewNop()

	s.historyRepo = memory.NewHistoryRepository()
	s.prefRepo = memory.NewPreferenceRepository()
	s.knowledgeRepo = memory.NewKnowledgeRepository()
	recipes := memory.NewRecipeRepository()

	s.Require().NoError(recipes.Save(s.ctx, recipe.Recipe{
		ID:       "rec_lentejas",
		Title:    "Lentejas estofadas",
		Category: "guisos",
		Servings: 4,
		Ingredients: []recipe.Ingredient{
			{IngredientID: "ing_lentils", Name: "Lentejas", Amount: 300, Unit: "g"},
		},
		Steps: []recipe.Step{{Number: 1, Instruction: "Cocer"}},
	}))

	preferences := preferenceapp.NewService(s.prefRepo, logger)
	knowledge := knowledgeapp.NewService(s.knowledgeRepo, logger)
	s.service = NewHistoryService(s.historyRepo, recipes, preferences, knowledge, logger)
}

func (s *HistoryServiceTestSuite) TestRecordSession() {
	s.Run("PlainSession_ShouldPersistEntry", func() {
		completed := time.Date(2026, 6, 1, 20, 30, 0, 0, time.UTC)
		entry, err := s.service.RecordSession(s.ctx, inbound.RecordSessionCommand{
			RecipeID:    "rec_lentejas",
			CompletedAt: &completed,
			Rating:      4,
		})

		s.Require().NoError(err)
		s.NotEmpty(entry.ID)
		s.True(entry.Completed())

		stored, err := s.historyRepo.FindByRecipe(s.ctx, "rec_lentejas")
		s.Require().NoError(err)
		s.Require().Len(stored, 1)
		s.Equal(4, stored[0].Rating)
	})

	s.Run("ZeroStartTime_ShouldDefaultToNow", func() {
		entry, err := s.service.RecordSession(s.ctx, inbound.RecordSessionCommand{
			RecipeID: "rec_lentejas",
		})

		s.Require().NoError(err)
		s.False(entry.StartedAt.IsZero())
	})

	s.Run("SubstitutionChange_ShouldFeedPreferenceStore", func() {
		_, err := s.service.RecordSession(s.ctx, inbound.RecordSessionCommand{
			RecipeID: "rec_lentejas",
			Rating:   5,
			Changes: []mealplan.SessionChange{
				{
					Type:         mealplan.SessionChangeSubstitution,
					IngredientID: "ing_beef",
					SubstituteID: "ing_lentils",
				},
			},
		})
		s.Require().NoError(err)

		record, err := s.prefRepo.FindByPair(s.ctx, "ing_beef", "ing_lentils")
		s.Require().NoError(err)
		s.Require().NotNil(record)
		s.Equal(1, record.TimesUsed)
		s.InDelta(1.0, record.SuccessRate, 0.001)
		s.Contains(record.Contexts, "guisos")
	})

	s.Run("SubstitutionChange_ShouldFeedKnowledgeBase", func() {
		_, err := s.service.RecordSession(s.ctx, inbound.RecordSessionCommand{
			RecipeID: "rec_lentejas",
			Changes: []mealplan.SessionChange{
				{
					Type:         mealplan.SessionChangeSubstitution,
					IngredientID: "ing_beef",
					SubstituteID: "ing_lentils",
				},
			},
		})
		s.Require().NoError(err)

		entries, err := s.knowledgeRepo.FindByType(s.ctx, domainknowledge.TypeIngredientPreference)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Contains(entries[0].Summary, "ing_lentils")
	})

	s.Run("LowRatedSubstitution_ShouldCountAsFailure", func() {
		_, err := s.service.RecordSession(s.ctx, inbound.RecordSessionCommand{
			RecipeID: "rec_lentejas",
			Rating:   1,
			Changes: []mealplan.SessionChange{
				{
					Type:         mealplan.SessionChangeSubstitution,
					IngredientID: "ing_butter",
					SubstituteID: "ing_margarine",
				},
			},
		})
		s.Require().NoError(err)

		record, err := s.prefRepo.FindByPair(s.ctx, "ing_butter", "ing_margarine")
		s.Require().NoError(err)
		s.Require().NotNil(record)
		s.InDelta(0.0, record.SuccessRate, 0.001)

		// Failed substitutions leave no ingredient-preference entry
		entries, err := s.knowledgeRepo.FindByType(s.ctx, domainknowledge.TypeIngredientPreference)
		s.Require().NoError(err)
		for _, e := range entries {
			s.NotContains(e.Summary, "ing_margarine")
		}
	})

	s.Run("TipChange_ShouldLandInKnowledgeBase", func() {
		_, err := s.service.RecordSession(s.ctx, inbound.RecordSessionCommand{
			RecipeID: "rec_lentejas",
			Changes: []mealplan.SessionChange{
				{Type: mealplan.SessionChangeTip, Description: "remover cada diez minutos"},
			},
		})
		s.Require().NoError(err)

		entries, err := s.knowledgeRepo.FindByType(s.ctx, domainknowledge.TypeGeneralTip)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal("remover cada diez minutos", entries[0].Summary)
	})

	s.Run("UnknownRecipe_ShouldFail", func() {
		_, err := s.service.RecordSession(s.ctx, inbound.RecordSessionCommand{
			RecipeID: "rec_fantasma",
		})

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})

	s.Run("InvalidRating_ShouldFail", func() {
		_, err := s.service.RecordSession(s.ctx, inbound.RecordSessionCommand{
			RecipeID: "rec_lentejas",
			Rating:   9,
		})

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func (s *HistoryServiceTestSuite) TestGetRecipeHistory() {
	for i := 0; i < 3; i++ {
		_, err := s.service.RecordSession(s.ctx, inbound.RecordSessionCommand{RecipeID: "rec_lentejas"})
		s.Require().NoError(err)
	}

	entries, err := s.service.GetRecipeHistory(s.ctx, "rec_lentejas")
	s.Require().NoError(err)
	s.Len(entries, 3)

	empty, err := s.service.GetRecipeHistory(s.ctx, "rec_otro")
	s.Require().NoError(err)
	s.Empty(empty)
}

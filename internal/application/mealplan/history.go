package mealplan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/ports/inbound"
	"github.com/cocinero/v1/internal/ports/outbound"
	"github.com/cocinero/v1/pkg/errors"
)

// HistoryService records cooking sessions and runs the learning pass over
// their changes
type HistoryService struct {
	history     outbound.HistoryRepository
	recipes     outbound.RecipeRepository
	preferences inbound.PreferenceService
	knowledge   inbound.KnowledgeService
	logger      *zap.Logger
	now         func() time.Time
}

// NewHistoryService creates a new history service
func NewHistoryService(
	history outbound.HistoryRepository,
	recipes outbound.RecipeRepository,
	preferences inbound.PreferenceService,
	knowledge inbound.KnowledgeService,
	logger *zap.Logger,
) inbound.HistoryService {
	return &HistoryService{
		history:     history,
		recipes:     recipes,
		preferences: preferences,
		knowledge:   knowledge,
		logger:      logger.Named("history-service"),
		now:         time.Now,
	}
}

// RecordSession persists the session and feeds its changes into the
// preference store and the knowledge base. Learning failures do not fail
// the recording; the session itself is the source of truth.
func (s *HistoryService) RecordSession(ctx context.Context, cmd inbound.RecordSessionCommand) (*mealplan.HistoryEntry, error) {
	rec, err := s.recipes.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if rec == nil {
		return nil, errors.NewRecipeNotFoundError(cmd.RecipeID)
	}

	startedAt := cmd.StartedAt
	if startedAt.IsZero() {
		startedAt = s.now()
	}

	entry := mealplan.HistoryEntry{
		ID:          uuid.NewString(),
		RecipeID:    cmd.RecipeID,
		VariantID:   cmd.VariantID,
		StartedAt:   startedAt,
		CompletedAt: cmd.CompletedAt,
		Rating:      cmd.Rating,
		Changes:     cmd.Changes,
	}
	if err := entry.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.history.Save(ctx, entry); err != nil {
		return nil, errors.NewDatabaseError("save history entry", err)
	}

	s.learn(ctx, entry, rec.Category)
	return &entry, nil
}

// GetRecipeHistory returns the sessions recorded for one recipe
func (s *HistoryService) GetRecipeHistory(ctx context.Context, recipeID string) ([]mealplan.HistoryEntry, error) {
	entries, err := s.history.FindByRecipe(ctx, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("load history entries", err)
	}
	return entries, nil
}

// learn runs the learning pass: substitution changes become preference
// usage events and ingredient-preference knowledge, tips and modifications
// become knowledge entries
func (s *HistoryService) learn(ctx context.Context, entry mealplan.HistoryEntry, recipeType string) {
	// An unrated session counts as a success; a low rating marks the
	// substitutions in it as failed outcomes.
	successful := entry.Rating == 0 || entry.Rating >= 3

	for _, change := range entry.Changes {
		if change.Type != mealplan.SessionChangeSubstitution {
			continue
		}
		if change.IngredientID == "" || change.SubstituteID == "" {
			continue
		}

		_, err := s.preferences.RecordUsage(ctx, inbound.RecordUsageCommand{
			OriginalID:    change.IngredientID,
			AlternativeID: change.SubstituteID,
			Contexts:      []string{recipeType},
			Successful:    successful,
			Note:          change.Description,
		})
		if err != nil {
			s.logger.Warn("Failed to record preference from session",
				zap.String("entry_id", entry.ID),
				zap.Error(err),
			)
		}

		if !successful {
			continue
		}
		if err := s.knowledge.LearnFromSubstitution(ctx, change.IngredientID, change.SubstituteID, recipeType); err != nil {
			s.logger.Warn("Failed to learn substitution from session",
				zap.String("entry_id", entry.ID),
				zap.Error(err),
			)
		}
	}

	if err := s.knowledge.LearnFromSession(ctx, entry); err != nil {
		s.logger.Warn("Failed to learn notes from session",
			zap.String("entry_id", entry.ID),
			zap.Error(err),
		)
	}
}

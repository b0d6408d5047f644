package inbound

import (
	"context"
	"time"

	"github.com/cocinero/v1/internal/domain/mealplan"
)

// HistoryService records cooking sessions. Session changes are the raw
// material for the learning loops: substitutions feed the preference store
// and the knowledge base, tips and modifications feed the knowledge base.
type HistoryService interface {
	// RecordSession appends a session to the history and runs the
	// learning pass over its changes
	RecordSession(ctx context.Context, cmd RecordSessionCommand) (*mealplan.HistoryEntry, error)

	// GetRecipeHistory returns the sessions recorded for one recipe
	GetRecipeHistory(ctx context.Context, recipeID string) ([]mealplan.HistoryEntry, error)
}

// RecordSessionCommand carries one finished or in-progress cooking session
type RecordSessionCommand struct {
	RecipeID    string
	VariantID   string
	StartedAt   time.Time
	CompletedAt *time.Time
	Rating      int
	Changes     []mealplan.SessionChange
}

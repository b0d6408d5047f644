package inbound

import (
	"context"

	"github.com/cocinero/v1/internal/domain/knowledge"
	"github.com/cocinero/v1/internal/domain/mealplan"
)

// KnowledgeService accumulates structured facts about the user and serves
// them as contextual filters and prompt-ready digests
type KnowledgeService interface {
	// AddEntry appends a new entry; it never overwrites an existing one
	AddEntry(ctx context.Context, cmd AddKnowledgeCommand) (*knowledge.Entry, error)

	// UpdateConfidence is the only destructive write an entry supports
	UpdateConfidence(ctx context.Context, entryID string, confidence float64) (*knowledge.Entry, error)

	// GetRelevantKnowledge returns entries that are global or whose
	// predicate intersects the query context on any dimension
	GetRelevantKnowledge(ctx context.Context, q knowledge.Context) ([]knowledge.Entry, error)

	// LearnFromSubstitution upserts an ingredient-preference entry for a
	// successful substitution; repeats reinforce confidence instead of
	// creating duplicates
	LearnFromSubstitution(ctx context.Context, originalID, substituteID, recipeType string) error

	// LearnFromSession creates entries from tip and modification notes of a
	// cooking session; other note types are ignored
	LearnFromSession(ctx context.Context, entry mealplan.HistoryEntry) error

	// Digest renders a grouped, human-readable digest for prompt injection
	Digest(ctx context.Context) (string, error)

	// Profile returns the same entries as categorized string lists for
	// programmatic use
	Profile(ctx context.Context) (*KnowledgeProfile, error)
}

// AddKnowledgeCommand describes a new knowledge entry
type AddKnowledgeCommand struct {
	Type       knowledge.EntryType
	Summary    string
	Details    string
	AppliesTo  *knowledge.AppliesTo
	Confidence float64
}

// KnowledgeProfile is the structured read surface over the knowledge base
type KnowledgeProfile struct {
	IngredientPreferences []string `json:"ingredient_preferences"`
	GeneralTips           []string `json:"general_tips"`
	SkillNotes            []string `json:"skill_notes"`
	MeasurementHabits     []string `json:"measurement_habits"`
	EquipmentGaps         []string `json:"equipment_gaps"`
}

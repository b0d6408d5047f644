package inbound

import (
	"context"
	"time"

	"github.com/cocinero/v1/internal/domain/mealplan"
)

// PlannerService generates weekly meal plans. Each run is a pure function of
// the candidate pool, inventory snapshot, cooking history, saved preferences,
// and the injected random source; nothing persists between runs except the
// stored plan itself.
type PlannerService interface {
	// GenerateFromQuestionnaire is the deterministic path: pure
	// inventory-match ranking, no randomness
	GenerateFromQuestionnaire(ctx context.Context, cmd QuestionnaireCommand) (*mealplan.WeeklyPlan, error)

	// GeneratePlan is the probabilistic path. When cmd.Proposed carries an
	// externally produced assignment it is validated first; on shape or id
	// failures the planner falls back to its own selection over the
	// candidate pool before raising a hard error.
	GeneratePlan(ctx context.Context, cmd GeneratePlanCommand) (*mealplan.WeeklyPlan, error)

	// GetActivePlan returns the plan covering the given date
	GetActivePlan(ctx context.Context, date time.Time) (*mealplan.WeeklyPlan, error)
}

// QuestionnaireCommand carries the questionnaire answers for the
// deterministic flow
type QuestionnaireCommand struct {
	StartDate         time.Time
	PreferredCuisines []string
	SkillLevel        string
	MaxMinutes        int
	ExcludedRecipeIDs []string
}

// ProposedDay mirrors one day of an externally produced plan;
// empty strings stand for null slots
type ProposedDay struct {
	Desayuno string `json:"desayuno"`
	Almuerzo string `json:"almuerzo"`
	Comida   string `json:"comida"`
	Cena     string `json:"cena"`
}

// ProposedPlan is the shape an external language-model response must satisfy:
// all seven days present, slot values either a known recipe id or null
type ProposedPlan struct {
	Days []ProposedDay `json:"days"`
}

// GeneratePlanCommand carries the probabilistic-path inputs
type GeneratePlanCommand struct {
	StartDate time.Time
	// CandidateIDs is the pool fetched by the external search/history tool;
	// empty means the whole recipe catalog
	CandidateIDs []string
	// Proposed is an optional externally produced assignment to validate
	Proposed *ProposedPlan
	// Seed seeds the random source; 0 derives a seed from the clock
	Seed int64
}

// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world:
// the HTTP adapter and the conversational tool-calling loop both drive the
// engine through them.
package inbound

import (
	"context"

	"github.com/cocinero/v1/internal/domain/catalog"
)

// SubstitutionService resolves ingredient substitutions
type SubstitutionService interface {
	// GetContextualSubstitutions returns all edges out of the ingredient that
	// admit the given context, sorted by confidence descending
	GetContextualSubstitutions(ctx context.Context, ingredientID string, ruleCtx catalog.RuleContext) ([]SubstitutionResult, error)

	// GetBestSubstitute returns the user-preferred alternative when one is
	// backed by a catalog edge, otherwise the top contextual edge. A
	// NO_SUBSTITUTE_FOUND error means neither exists.
	GetBestSubstitute(ctx context.Context, ingredientID string, ruleCtx catalog.RuleContext) (*SubstitutionResult, error)
}

// AdaptationService resolves appliance adaptations, restricted to appliances
// the user owns
type AdaptationService interface {
	GetContextualAdaptations(ctx context.Context, applianceID string, ruleCtx catalog.RuleContext) ([]AdaptationResult, error)
	GetBestAdaptation(ctx context.Context, applianceID string, ruleCtx catalog.RuleContext) (*AdaptationResult, error)
}

// ImpactAnalysis is the human-readable explanation attached to every
// resolved substitution or adaptation
type ImpactAnalysis struct {
	Notes              []string `json:"notes"`
	Compensations      []string `json:"compensations,omitempty"`
	StepSuggestions    []string `json:"step_suggestions,omitempty"`
	TimingDeltaMinutes int      `json:"timing_delta_minutes"`
	TimingReason       string   `json:"timing_reason,omitempty"`
}

// SubstitutionResult is a resolved ingredient substitution
type SubstitutionResult struct {
	OriginalID     string               `json:"original_id"`
	SubstituteID   string               `json:"substitute_id"`
	SubstituteName string               `json:"substitute_name"`
	Ratio          float64              `json:"ratio"`
	Confidence     float64              `json:"confidence"`
	Impact         ImpactAnalysis       `json:"impact"`
	Adjustments    []catalog.Adjustment `json:"adjustments,omitempty"`
	UserPreferred  bool                 `json:"user_preferred"`
}

// AdaptationResult is a resolved appliance adaptation
type AdaptationResult struct {
	OriginalID      string               `json:"original_id"`
	AlternativeID   string               `json:"alternative_id"`
	AlternativeName string               `json:"alternative_name"`
	Confidence      float64              `json:"confidence"`
	Impact          ImpactAnalysis       `json:"impact"`
	Adjustments     []catalog.Adjustment `json:"adjustments,omitempty"`
	UserPreferred   bool                 `json:"user_preferred"`
}

// AmountConversion is the result of applying a substitution ratio to an amount
type AmountConversion struct {
	Amount  float64 `json:"amount"`
	Display string  `json:"display"`
}

// Package substitution provides the application layer for contextual
// ingredient substitution: edge filtering by rule context, preference-aware
// ranking, and impact analysis.
package substitution

import (
	"context"
	"fmt"
	"sort"

	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/ports/inbound"
	"github.com/cocinero/v1/internal/ports/outbound"
	"github.com/cocinero/v1/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the ingredient substitution use cases
type Service struct {
	ingredients outbound.IngredientRepository
	edges       outbound.SubstitutionEdgeRepository
	preferences inbound.PreferenceService
	logger      *zap.Logger
}

// NewService creates a new substitution service
func NewService(
	ingredients outbound.IngredientRepository,
	edges outbound.SubstitutionEdgeRepository,
	preferences inbound.PreferenceService,
	logger *zap.Logger,
) inbound.SubstitutionService {
	return &Service{
		ingredients: ingredients,
		edges:       edges,
		preferences: preferences,
		logger:      logger.Named("substitution-service"),
	}
}

// GetContextualSubstitutions returns the edges out of an ingredient that
// admit the given context, sorted by confidence descending
func (s *Service) GetContextualSubstitutions(ctx context.Context, ingredientID string, ruleCtx catalog.RuleContext) ([]inbound.SubstitutionResult, error) {
	edges, err := s.contextualEdges(ctx, ingredientID, ruleCtx)
	if err != nil {
		return nil, err
	}

	results := make([]inbound.SubstitutionResult, 0, len(edges))
	for _, edge := range edges {
		results = append(results, s.edgeToResult(ctx, edge, false))
	}
	return results, nil
}

// GetBestSubstitute prefers a learned record backed by a catalog edge and
// falls back to the top contextual edge
func (s *Service) GetBestSubstitute(ctx context.Context, ingredientID string, ruleCtx catalog.RuleContext) (*inbound.SubstitutionResult, error) {
	edges, err := s.contextualEdges(ctx, ingredientID, ruleCtx)
	if err != nil {
		return nil, err
	}

	records, err := s.preferences.GetPreferred(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		for _, edge := range edges {
			if edge.AlternativeID == record.AlternativeID {
				result := s.edgeToResult(ctx, edge, true)
				s.logger.Debug("Resolved substitute from learned preference",
					zap.String("ingredient_id", ingredientID),
					zap.String("substitute_id", edge.AlternativeID),
					zap.Int("times_used", record.TimesUsed),
				)
				return &result, nil
			}
		}
	}

	if len(edges) == 0 {
		return nil, errors.NewNoSubstituteFoundError(ingredientID)
	}

	result := s.edgeToResult(ctx, edges[0], false)
	return &result, nil
}

// contextualEdges loads, filters, and ranks the edges for an ingredient.
// The ingredient must exist in the catalog.
func (s *Service) contextualEdges(ctx context.Context, ingredientID string, ruleCtx catalog.RuleContext) ([]catalog.SubstitutionEdge, error) {
	if ingredientID == "" {
		return nil, errors.NewValidationError("ingredient id is required")
	}

	original, err := s.ingredients.FindByID(ctx, ingredientID)
	if err != nil {
		return nil, errors.NewDatabaseError("find ingredient", err)
	}
	if original == nil {
		return nil, errors.NewIngredientNotFoundError(ingredientID)
	}

	edges, err := s.edges.FindByOriginal(ctx, ingredientID)
	if err != nil {
		return nil, errors.NewDatabaseError("find substitution edges", err)
	}

	filtered := edges[:0]
	for _, edge := range edges {
		if edge.Context.Matches(ruleCtx) {
			filtered = append(filtered, edge)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Confidence > filtered[j].Confidence
	})
	return filtered, nil
}

// edgeToResult resolves the alternative's display name and attaches the
// impact analysis
func (s *Service) edgeToResult(ctx context.Context, edge catalog.SubstitutionEdge, userPreferred bool) inbound.SubstitutionResult {
	name := edge.AlternativeID
	if alt, err := s.ingredients.FindByID(ctx, edge.AlternativeID); err == nil && alt != nil {
		name = alt.Name
	}

	return inbound.SubstitutionResult{
		OriginalID:     edge.OriginalID,
		SubstituteID:   edge.AlternativeID,
		SubstituteName: name,
		Ratio:          edge.Ratio,
		Confidence:     edge.Confidence,
		Impact:         AnalyzeImpact(edge),
		Adjustments:    edge.Adjustments,
		UserPreferred:  userPreferred,
	}
}

// CalculateAmount converts an amount through a substitution ratio and
// renders the display string for it
func CalculateAmount(originalAmount, ratio float64) (inbound.AmountConversion, error) {
	if originalAmount <= 0 {
		return inbound.AmountConversion{}, errors.NewValidationError("amount must be greater than 0")
	}
	if ratio <= 0 {
		return inbound.AmountConversion{}, errors.NewValidationError(catalog.ErrInvalidRatio.Error())
	}

	amount := round2(originalAmount * ratio)

	var display string
	switch {
	case ratio == 1:
		display = "same amount"
	case ratio < 1:
		display = fmt.Sprintf("use less (%s%% of original)", formatPercent(ratio))
	default:
		display = fmt.Sprintf("use more (%s%% of original)", formatPercent(ratio))
	}

	return inbound.AmountConversion{Amount: amount, Display: display}, nil
}

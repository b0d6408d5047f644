// Package adaptation provides the application layer for appliance adaptation
// and whole-recipe adaptation.
package adaptation

import (
	"context"
	"sort"

	"github.com/cocinero/v1/internal/application/substitution"
	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/domain/profile"
	"github.com/cocinero/v1/internal/ports/inbound"
	"github.com/cocinero/v1/internal/ports/outbound"
	"github.com/cocinero/v1/pkg/errors"
	"go.uber.org/zap"
)

// ApplianceService implements the appliance adaptation use cases. It mirrors
// the ingredient resolver with one difference: candidates are filtered to
// appliances the user owns before ranking, on the preference path and the
// fallback path alike.
type ApplianceService struct {
	appliances  outbound.ApplianceRepository
	edges       outbound.AdaptationEdgeRepository
	profiles    outbound.ProfileRepository
	preferences inbound.PreferenceService
	logger      *zap.Logger
}

// NewApplianceService creates a new appliance adaptation service
func NewApplianceService(
	appliances outbound.ApplianceRepository,
	edges outbound.AdaptationEdgeRepository,
	profiles outbound.ProfileRepository,
	preferences inbound.PreferenceService,
	logger *zap.Logger,
) inbound.AdaptationService {
	return &ApplianceService{
		appliances:  appliances,
		edges:       edges,
		profiles:    profiles,
		preferences: preferences,
		logger:      logger.Named("adaptation-service"),
	}
}

// GetContextualAdaptations returns owned, context-admissible alternatives for
// an appliance, sorted by confidence descending
func (s *ApplianceService) GetContextualAdaptations(ctx context.Context, applianceID string, ruleCtx catalog.RuleContext) ([]inbound.AdaptationResult, error) {
	edges, err := s.ownedContextualEdges(ctx, applianceID, ruleCtx)
	if err != nil {
		return nil, err
	}

	results := make([]inbound.AdaptationResult, 0, len(edges))
	for _, edge := range edges {
		results = append(results, s.edgeToResult(ctx, edge, false))
	}
	return results, nil
}

// GetBestAdaptation prefers a learned record whose alternative is both a
// catalog edge and an owned appliance, falling back to the top owned edge
func (s *ApplianceService) GetBestAdaptation(ctx context.Context, applianceID string, ruleCtx catalog.RuleContext) (*inbound.AdaptationResult, error) {
	edges, err := s.ownedContextualEdges(ctx, applianceID, ruleCtx)
	if err != nil {
		return nil, err
	}

	records, err := s.preferences.GetPreferred(ctx, applianceID)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		for _, edge := range edges {
			if edge.AlternativeID == record.AlternativeID {
				result := s.edgeToResult(ctx, edge, true)
				return &result, nil
			}
		}
	}

	if len(edges) == 0 {
		return nil, errors.NewNoAdaptationFoundError(applianceID)
	}

	result := s.edgeToResult(ctx, edges[0], false)
	return &result, nil
}

// ownedContextualEdges loads the edges for an appliance and drops every
// alternative the user does not own. An adaptation recommending an appliance
// the user lacks is useless, so ownership is applied before ranking.
func (s *ApplianceService) ownedContextualEdges(ctx context.Context, applianceID string, ruleCtx catalog.RuleContext) ([]catalog.AdaptationEdge, error) {
	if applianceID == "" {
		return nil, errors.NewValidationError("appliance id is required")
	}

	original, err := s.appliances.FindByID(ctx, applianceID)
	if err != nil {
		return nil, errors.NewDatabaseError("find appliance", err)
	}
	if original == nil {
		return nil, errors.NewApplianceNotFoundError(applianceID)
	}

	// No stored profile means no appliance is known to be owned, which
	// filters every candidate out.
	userProfile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load profile", err)
	}
	if userProfile == nil {
		userProfile = &profile.Profile{}
	}

	edges, err := s.edges.FindByOriginal(ctx, applianceID)
	if err != nil {
		return nil, errors.NewDatabaseError("find adaptation edges", err)
	}

	filtered := edges[:0]
	for _, edge := range edges {
		if !userProfile.Owns(edge.AlternativeID) {
			continue
		}
		if edge.Context.Matches(ruleCtx) {
			filtered = append(filtered, edge)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Confidence > filtered[j].Confidence
	})
	return filtered, nil
}

func (s *ApplianceService) edgeToResult(ctx context.Context, edge catalog.AdaptationEdge, userPreferred bool) inbound.AdaptationResult {
	name := edge.AlternativeID
	if alt, err := s.appliances.FindByID(ctx, edge.AlternativeID); err == nil && alt != nil {
		name = alt.Name
	}

	return inbound.AdaptationResult{
		OriginalID:      edge.OriginalID,
		AlternativeID:   edge.AlternativeID,
		AlternativeName: name,
		Confidence:      edge.Confidence,
		Impact:          substitution.AnalyzeAdaptationImpact(edge),
		Adjustments:     edge.Adjustments,
		UserPreferred:   userPreferred,
	}
}

// Package knowledge provides the application layer for the user knowledge
// base: append-or-reinforce writes, contextual reads, auto-learning from
// substitutions and cooking sessions, and the two read surfaces.
package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cocinero/v1/internal/domain/knowledge"
	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/ports/inbound"
	"github.com/cocinero/v1/internal/ports/outbound"
	"github.com/cocinero/v1/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Confidence constants for auto-learned entries
const (
	reinforceStep      = 0.1
	learnedConfidence  = 0.6
	initialSubstConfid = 0.6
)

// Service implements the knowledge-base use cases
type Service struct {
	repo   outbound.KnowledgeRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new knowledge service
func NewService(repo outbound.KnowledgeRepository, logger *zap.Logger) inbound.KnowledgeService {
	return &Service{
		repo:   repo,
		logger: logger.Named("knowledge-service"),
		now:    time.Now,
	}
}

// AddEntry appends a new entry
func (s *Service) AddEntry(ctx context.Context, cmd inbound.AddKnowledgeCommand) (*knowledge.Entry, error) {
	entry := knowledge.Entry{
		ID:         uuid.NewString(),
		Type:       cmd.Type,
		Summary:    cmd.Summary,
		Details:    cmd.Details,
		AppliesTo:  cmd.AppliesTo,
		Confidence: cmd.Confidence,
		CreatedAt:  s.now(),
		UpdatedAt:  s.now(),
	}
	if err := entry.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, errors.NewDatabaseError("save knowledge entry", err)
	}
	return &entry, nil
}

// UpdateConfidence sets an entry's confidence explicitly
func (s *Service) UpdateConfidence(ctx context.Context, entryID string, confidence float64) (*knowledge.Entry, error) {
	if confidence < 0 || confidence > 1 {
		return nil, errors.NewValidationError(knowledge.ErrInvalidConfidence.Error())
	}

	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return nil, errors.NewDatabaseError("find knowledge entry", err)
	}
	if entry == nil {
		return nil, errors.NewNotFoundError("knowledge entry")
	}

	entry.Confidence = confidence
	entry.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, *entry); err != nil {
		return nil, errors.NewDatabaseError("save knowledge entry", err)
	}
	return entry, nil
}

// GetRelevantKnowledge returns global entries plus entries whose predicate
// intersects the query context on any dimension
func (s *Service) GetRelevantKnowledge(ctx context.Context, q knowledge.Context) ([]knowledge.Entry, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load knowledge entries", err)
	}

	relevant := entries[:0]
	for _, entry := range entries {
		if entry.IsRelevant(q) {
			relevant = append(relevant, entry)
		}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Confidence > relevant[j].Confidence
	})
	return relevant, nil
}

// LearnFromSubstitution upserts the ingredient-preference entry for a
// successful (original, substitute) usage. Repeats reinforce confidence by
// 0.1 capped at 1.0 instead of creating duplicates.
func (s *Service) LearnFromSubstitution(ctx context.Context, originalID, substituteID, recipeType string) error {
	if originalID == "" || substituteID == "" {
		return errors.NewValidationError("original and substitute ids are required")
	}

	summary := substitutionSummary(originalID, substituteID)

	existing, err := s.repo.FindByType(ctx, knowledge.TypeIngredientPreference)
	if err != nil {
		return errors.NewDatabaseError("load knowledge entries", err)
	}
	for _, entry := range existing {
		if entry.Summary != summary {
			continue
		}
		reinforced := entry.Reinforce(reinforceStep, s.now())
		if err := s.repo.Save(ctx, reinforced); err != nil {
			return errors.NewDatabaseError("save knowledge entry", err)
		}
		s.logger.Debug("Reinforced ingredient preference",
			zap.String("entry_id", entry.ID),
			zap.Float64("confidence", reinforced.Confidence),
		)
		return nil
	}

	entry := knowledge.Entry{
		ID:         uuid.NewString(),
		Type:       knowledge.TypeIngredientPreference,
		Summary:    summary,
		Confidence: initialSubstConfid,
		AppliesTo: &knowledge.AppliesTo{
			IngredientIDs: []string{originalID, substituteID},
		},
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	if recipeType != "" {
		entry.AppliesTo.RecipeTypes = []string{recipeType}
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		return errors.NewDatabaseError("save knowledge entry", err)
	}
	return nil
}

// LearnFromSession creates entries from a session's tip and modification
// notes; other change types carry no reusable knowledge
func (s *Service) LearnFromSession(ctx context.Context, entry mealplan.HistoryEntry) error {
	for _, change := range entry.Changes {
		var entryType knowledge.EntryType
		switch change.Type {
		case mealplan.SessionChangeTip:
			entryType = knowledge.TypeGeneralTip
		case mealplan.SessionChangeModification:
			entryType = knowledge.TypeSkillNote
		default:
			continue
		}
		if change.Description == "" {
			continue
		}

		learned := knowledge.Entry{
			ID:         uuid.NewString(),
			Type:       entryType,
			Summary:    change.Description,
			Confidence: learnedConfidence,
			CreatedAt:  s.now(),
			UpdatedAt:  s.now(),
		}
		if err := s.repo.Save(ctx, learned); err != nil {
			return errors.NewDatabaseError("save knowledge entry", err)
		}
	}
	return nil
}

// Digest renders the grouped, human-readable read surface
func (s *Service) Digest(ctx context.Context) (string, error) {
	grouped, err := s.grouped(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, entryType := range knowledge.KnownTypes {
		entries := grouped[entryType]
		if len(entries) == 0 {
			continue
		}
		sb.WriteString(digestHeading(entryType))
		sb.WriteString("\n")
		for _, entry := range entries {
			sb.WriteString("- ")
			sb.WriteString(entry.Summary)
			if entry.Details != "" {
				sb.WriteString(" (")
				sb.WriteString(entry.Details)
				sb.WriteString(")")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// Profile returns the same entries as categorized string lists
func (s *Service) Profile(ctx context.Context) (*inbound.KnowledgeProfile, error) {
	grouped, err := s.grouped(ctx)
	if err != nil {
		return nil, err
	}

	return &inbound.KnowledgeProfile{
		IngredientPreferences: summaries(grouped[knowledge.TypeIngredientPreference]),
		GeneralTips:           summaries(grouped[knowledge.TypeGeneralTip]),
		SkillNotes:            summaries(grouped[knowledge.TypeSkillNote]),
		MeasurementHabits:     summaries(grouped[knowledge.TypeMeasurementHabit]),
		EquipmentGaps:         summaries(grouped[knowledge.TypeEquipmentGap]),
	}, nil
}

// grouped is the single grouping both read surfaces derive from
func (s *Service) grouped(ctx context.Context) (map[knowledge.EntryType][]knowledge.Entry, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load knowledge entries", err)
	}

	out := make(map[knowledge.EntryType][]knowledge.Entry)
	for _, entry := range entries {
		out[entry.Type] = append(out[entry.Type], entry)
	}
	for _, group := range out {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Confidence > group[j].Confidence
		})
	}
	return out, nil
}

func substitutionSummary(originalID, substituteID string) string {
	return fmt.Sprintf("prefers %s in place of %s", substituteID, originalID)
}

func digestHeading(t knowledge.EntryType) string {
	switch t {
	case knowledge.TypeIngredientPreference:
		return "Ingredient preferences:"
	case knowledge.TypeGeneralTip:
		return "General tips:"
	case knowledge.TypeSkillNote:
		return "Skill notes:"
	case knowledge.TypeMeasurementHabit:
		return "Measurement habits:"
	case knowledge.TypeEquipmentGap:
		return "Equipment gaps:"
	}
	return string(t) + ":"
}

func summaries(entries []knowledge.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Summary)
	}
	return out
}

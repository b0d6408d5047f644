package mealplan

import "time"

// SessionChangeType classifies a change made live during a cooking session
type SessionChangeType string

const (
	SessionChangeSubstitution SessionChangeType = "substitution"
	SessionChangeAdjustment   SessionChangeType = "adjustment"
	SessionChangeTip          SessionChangeType = "tip"
	SessionChangeModification SessionChangeType = "modification"
	SessionChangeNote         SessionChangeType = "note"
)

// SessionChange is one live change or note recorded during a session
type SessionChange struct {
	Type         SessionChangeType
	Description  string
	IngredientID string // set for substitutions
	SubstituteID string
}

// HistoryEntry is one cooking session
type HistoryEntry struct {
	ID          string
	RecipeID    string
	VariantID   string // empty when the base recipe was cooked
	StartedAt   time.Time
	CompletedAt *time.Time
	Rating      int // 1-5, 0 when unrated
	Changes     []SessionChange
}

// Validate validates the history entry at the write boundary
func (h HistoryEntry) Validate() error {
	if h.RecipeID == "" {
		return ErrEmptyRecipeID
	}
	if h.Rating != 0 && (h.Rating < 1 || h.Rating > 5) {
		return ErrInvalidRating
	}
	return nil
}

// Completed reports whether the session finished
func (h HistoryEntry) Completed() bool {
	return h.CompletedAt != nil
}

// RecipeStats aggregates history for one recipe, as consumed by the meal-plan
// scorer
type RecipeStats struct {
	RecipeID     string
	TimesCooked  int
	RatingCount  int
	RatingSum    int
	LastCookedAt time.Time
}

// AvgRating returns the average rating and whether any rating exists
func (s RecipeStats) AvgRating() (float64, bool) {
	if s.RatingCount == 0 {
		return 0, false
	}
	return float64(s.RatingSum) / float64(s.RatingCount), true
}

// AggregateStats folds history entries into per-recipe stats
func AggregateStats(entries []HistoryEntry) map[string]RecipeStats {
	out := make(map[string]RecipeStats)
	for _, e := range entries {
		s := out[e.RecipeID]
		s.RecipeID = e.RecipeID
		s.TimesCooked++
		if e.Rating > 0 {
			s.RatingCount++
			s.RatingSum += e.Rating
		}
		when := e.StartedAt
		if e.CompletedAt != nil {
			when = *e.CompletedAt
		}
		if when.After(s.LastCookedAt) {
			s.LastCookedAt = when
		}
		out[e.RecipeID] = s
	}
	return out
}

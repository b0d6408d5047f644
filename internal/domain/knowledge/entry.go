// Package knowledge contains structured facts learned about the user:
// measurement habits, equipment gaps, skill notes, and learned ingredient
// preferences. Entries carry an optional applicability predicate; an entry
// without one is relevant everywhere.
package knowledge

import (
	"errors"
	"time"
)

// Domain errors for knowledge entries
var (
	ErrEmptySummary      = errors.New("knowledge entry summary is required")
	ErrUnknownEntryType  = errors.New("unknown knowledge entry type")
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")
)

// EntryType classifies a knowledge entry
type EntryType string

const (
	TypeIngredientPreference EntryType = "ingredient-preference"
	TypeGeneralTip           EntryType = "general-tip"
	TypeSkillNote            EntryType = "skill-note"
	TypeMeasurementHabit     EntryType = "measurement-habit"
	TypeEquipmentGap         EntryType = "equipment-gap"
)

// KnownTypes lists every valid entry type
var KnownTypes = []EntryType{
	TypeIngredientPreference,
	TypeGeneralTip,
	TypeSkillNote,
	TypeMeasurementHabit,
	TypeEquipmentGap,
}

// AppliesTo is an applicability predicate. A query context matches if ANY
// populated dimension intersects it (logical OR across dimensions).
type AppliesTo struct {
	RecipeTypes    []string
	IngredientIDs  []string
	ApplianceIDs   []string
	CookingMethods []string
}

// Context is the query side of the predicate
type Context struct {
	RecipeType    string
	IngredientIDs []string
	ApplianceIDs  []string
	CookingMethod string
}

// IsZero reports whether the predicate constrains nothing
func (a AppliesTo) IsZero() bool {
	return len(a.RecipeTypes) == 0 && len(a.IngredientIDs) == 0 &&
		len(a.ApplianceIDs) == 0 && len(a.CookingMethods) == 0
}

// Matches evaluates the predicate against a query context
func (a AppliesTo) Matches(q Context) bool {
	if a.IsZero() {
		return true
	}
	if q.RecipeType != "" && contains(a.RecipeTypes, q.RecipeType) {
		return true
	}
	if intersects(a.IngredientIDs, q.IngredientIDs) {
		return true
	}
	if intersects(a.ApplianceIDs, q.ApplianceIDs) {
		return true
	}
	if q.CookingMethod != "" && contains(a.CookingMethods, q.CookingMethod) {
		return true
	}
	return false
}

// Entry is one structured fact about the user
type Entry struct {
	ID           string
	Type         EntryType
	Summary      string
	Details      string
	AppliesTo    *AppliesTo // nil means always relevant
	Confidence   float64
	TimesApplied int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the entry at the write boundary
func (e Entry) Validate() error {
	if e.Summary == "" {
		return ErrEmptySummary
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return ErrInvalidConfidence
	}
	for _, t := range KnownTypes {
		if e.Type == t {
			return nil
		}
	}
	return ErrUnknownEntryType
}

// IsRelevant reports whether the entry applies in the given context
func (e Entry) IsRelevant(q Context) bool {
	if e.AppliesTo == nil {
		return true
	}
	return e.AppliesTo.Matches(q)
}

// Reinforce bumps confidence by the given step, capped at 1.0, and marks the
// entry updated
func (e Entry) Reinforce(step float64, now time.Time) Entry {
	out := e
	out.Confidence += step
	if out.Confidence > 1.0 {
		out.Confidence = 1.0
	}
	out.TimesApplied++
	out.UpdatedAt = now
	return out
}

func contains(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range b {
		if contains(a, v) {
			return true
		}
	}
	return false
}

// Package mealplan provides the application layer for weekly meal planning:
// multi-factor desirability scoring and variety-constrained selection.
package mealplan

import (
	"time"

	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/domain/profile"
	"github.com/cocinero/v1/internal/domain/recipe"
)

// Weights combines the five scoring factors. They are fixed configuration,
// not learned.
type Weights struct {
	Inventory   float64
	History     float64
	Variety     float64
	Freshness   float64
	Preferences float64
}

// DefaultWeights returns the standard factor weights
func DefaultWeights() Weights {
	return Weights{
		Inventory:   0.30,
		History:     0.25,
		Variety:     0.25,
		Freshness:   0.10,
		Preferences: 0.10,
	}
}

// SkillTable maps (skill level, recipe difficulty) to a compatibility score
type SkillTable map[profile.SkillLevel]map[string]float64

// DefaultSkillTable returns the built-in compatibility lookup table
func DefaultSkillTable() SkillTable {
	return SkillTable{
		profile.SkillBeginner: {
			"easy": 1.0, "medium": 0.6, "hard": 0.2, "expert": 0.1,
		},
		profile.SkillIntermediate: {
			"easy": 0.9, "medium": 1.0, "hard": 0.6, "expert": 0.3,
		},
		profile.SkillAdvanced: {
			"easy": 0.7, "medium": 0.9, "hard": 1.0, "expert": 0.8,
		},
	}
}

// Snapshot is the immutable planning context one run scores against.
// Used changes as slots are assigned, which is why scores are recomputed
// after every assignment.
type Snapshot struct {
	Inventory map[string]bool // ingredient id -> in stock
	Stats     map[string]mealplan.RecipeStats
	Used      map[string]bool // recipe ids already placed in this plan
	Prefs     profile.Profile
	Now       time.Time
}

// Breakdown holds the per-factor scores and the weighted final score
type Breakdown struct {
	Inventory   float64
	History     float64
	Variety     float64
	Freshness   float64
	Preferences float64
	Final       float64
}

// Scorer computes the 5-factor desirability score for a candidate recipe
type Scorer struct {
	weights Weights
	skill   SkillTable
}

// NewScorer creates a scorer; zero weights fall back to the defaults
func NewScorer(weights Weights, skill SkillTable) *Scorer {
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	if skill == nil {
		skill = DefaultSkillTable()
	}
	return &Scorer{weights: weights, skill: skill}
}

// Score computes the factor breakdown for a recipe in the given snapshot
func (s *Scorer) Score(r recipe.Recipe, snap Snapshot) Breakdown {
	b := Breakdown{
		Inventory:   inventoryMatch(r, snap.Inventory),
		History:     historyScore(r.ID, snap.Stats),
		Variety:     varietyScore(r.ID, snap.Used),
		Freshness:   freshnessScore(r.ID, snap.Stats, snap.Now),
		Preferences: s.preferenceScore(r, snap.Prefs),
	}
	b.Final = s.weights.Inventory*b.Inventory +
		s.weights.History*b.History +
		s.weights.Variety*b.Variety +
		s.weights.Freshness*b.Freshness +
		s.weights.Preferences*b.Preferences
	return b
}

// inventoryMatch is matched required ingredients over required ingredient
// count; a recipe without required ingredients scores 0
func inventoryMatch(r recipe.Recipe, inventory map[string]bool) float64 {
	required, matched := 0, 0
	for _, line := range r.Ingredients {
		if line.Optional {
			continue
		}
		required++
		if inventory[line.IngredientID] {
			matched++
		}
	}
	if required == 0 {
		return 0
	}
	return float64(matched) / float64(required)
}

// historyScore rewards well-rated recipes and penalizes overcooked ones;
// unseen recipes get a flat explore bonus
func historyScore(recipeID string, stats map[string]mealplan.RecipeStats) float64 {
	st, ok := stats[recipeID]
	if !ok {
		return 0.5
	}

	ratingBonus := 0.5
	if avg, rated := st.AvgRating(); rated {
		ratingBonus = avg / 5
	}

	frequencyPenalty := 1 - float64(st.TimesCooked)/10
	if frequencyPenalty < 0 {
		frequencyPenalty = 0
	}
	return ratingBonus * frequencyPenalty
}

func varietyScore(recipeID string, used map[string]bool) float64 {
	if used[recipeID] {
		return 0.3
	}
	return 1.0
}

// freshnessScore saturates at 14 days since last cooked; never-cooked
// recipes count as fully fresh
func freshnessScore(recipeID string, stats map[string]mealplan.RecipeStats, now time.Time) float64 {
	st, ok := stats[recipeID]
	if !ok || st.LastCookedAt.IsZero() {
		return 1.0
	}
	days := now.Sub(st.LastCookedAt).Hours() / 24
	score := days / 14
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

// preferenceScore averages the cuisine, skill, and time-budget axes;
// each axis defaults to 0.5 when the corresponding preference is unset
func (s *Scorer) preferenceScore(r recipe.Recipe, prefs profile.Profile) float64 {
	cuisine := 0.5
	if len(prefs.PreferredCuisines) > 0 {
		cuisine = 0.3
		for _, c := range prefs.PreferredCuisines {
			if c == r.Cuisine {
				cuisine = 1.0
				break
			}
		}
	}

	skill := 0.5
	if prefs.Skill != "" {
		if row, ok := s.skill[prefs.Skill]; ok {
			if v, ok := row[r.Difficulty]; ok {
				skill = v
			}
		}
	}

	timeBudget := 0.5
	if prefs.MaxCookingMinutes > 0 && r.TotalTimeMinutes > 0 {
		if r.TotalTimeMinutes <= prefs.MaxCookingMinutes {
			timeBudget = 1.0
		} else {
			timeBudget = float64(prefs.MaxCookingMinutes) / float64(r.TotalTimeMinutes)
			if timeBudget < 0.2 {
				timeBudget = 0.2
			}
		}
	}

	return (cuisine + skill + timeBudget) / 3
}

package mealplan

import (
	"math"
	"math/rand"
	"strings"

	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/domain/recipe"
)

// DefaultTemperature is the selection temperature used by the probabilistic
// path. Lower values bias harder toward the top score; 1.0 samples
// proportionally to the raw scores.
const DefaultTemperature = 0.7

// SlotKeywords maps each meal slot to the keywords matched against recipe
// tags and categories. The mapping is locale-specific configuration, not
// logic.
type SlotKeywords map[mealplan.Slot][]string

// DefaultSlotKeywords returns the built-in Spanish-locale mapping
func DefaultSlotKeywords() SlotKeywords {
	return SlotKeywords{
		mealplan.SlotDesayuno: {"desayuno", "breakfast", "reposteria"},
		mealplan.SlotAlmuerzo: {"almuerzo", "snack", "ensalada", "ligero"},
		mealplan.SlotComida:   {"comida", "principal", "main", "guiso", "sopa"},
		mealplan.SlotCena:     {"cena", "dinner", "ligero", "ensalada", "sopa"},
	}
}

// Candidate pairs a recipe with its current desirability score
type Candidate struct {
	Recipe recipe.Recipe
	Score  float64
}

// Selector performs temperature-weighted roulette-wheel selection over
// scored candidates. The random source is injected so runs are reproducible.
type Selector struct {
	rng         *rand.Rand
	temperature float64
}

// NewSelector creates a selector over the given source
func NewSelector(src rand.Source, temperature float64) *Selector {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	return &Selector{rng: rand.New(src), temperature: temperature}
}

// Pick draws one candidate by roulette wheel: weight_i = score_i^(1/T), a
// uniform draw in [0, sum(weights)) lands on the candidate whose cumulative
// weight covers it. This intentionally does not always pick the argmax.
func (s *Selector) Pick(candidates []Candidate) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}

	weights := make([]float64, len(candidates))
	total := 0.0
	for i, c := range candidates {
		if c.Score > 0 {
			weights[i] = math.Pow(c.Score, 1/s.temperature)
		}
		total += weights[i]
	}
	if total == 0 {
		// All-zero scores degrade to a uniform draw
		return s.rng.Intn(len(candidates)), true
	}

	draw := s.rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if draw < cumulative {
			return i, true
		}
	}
	return len(candidates) - 1, true
}

// FilterBySlot keeps candidates whose tags or category match the slot's
// keywords. Zero matches fall back to the unfiltered pool rather than
// leaving the slot empty.
func FilterBySlot(pool []recipe.Recipe, slot mealplan.Slot, keywords SlotKeywords) []recipe.Recipe {
	words := keywords[slot]
	if len(words) == 0 {
		return pool
	}

	var matched []recipe.Recipe
	for _, r := range pool {
		if recipeMatchesSlot(r, words) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return pool
	}
	return matched
}

func recipeMatchesSlot(r recipe.Recipe, words []string) bool {
	haystacks := append([]string{r.Category}, r.Tags...)
	for _, h := range haystacks {
		h = strings.ToLower(h)
		for _, w := range words {
			if h != "" && strings.Contains(h, strings.ToLower(w)) {
				return true
			}
		}
	}
	return false
}

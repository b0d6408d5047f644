// Package recipe contains the core domain logic for recipes and their
// variants. Recipes keep an ordered ingredient list and a dense 1..N step
// list; every mutation that touches steps renumbers them.
package recipe

import (
	"math"
	"sort"
)

// Recipe represents a recipe in the catalog
type Recipe struct {
	ID          string
	Title       string
	Description string
	Category    string // recipe type, e.g. "reposteria"
	Cuisine     string
	Difficulty  string
	Tags        []string

	Ingredients []Ingredient
	Steps       []Step

	Servings    int
	MinServings int
	MaxServings int

	TotalTimeMinutes int
}

// Validate validates the recipe
func (r Recipe) Validate() error {
	if r.ID == "" {
		return ErrEmptyRecipeID
	}
	if r.Title == "" {
		return ErrEmptyTitle
	}
	if r.Servings <= 0 {
		return ErrInvalidServings
	}
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	if !stepsAreDense(r.Steps) {
		return ErrStepsNotDense
	}
	return nil
}

// Clone returns a deep copy of the recipe so adaptations never alias the
// stored original
func (r Recipe) Clone() Recipe {
	out := r
	out.Tags = append([]string(nil), r.Tags...)
	out.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	out.Steps = append([]Step(nil), r.Steps...)
	return out
}

// FindIngredient returns the index of the ingredient with the given id, or -1
func (r Recipe) FindIngredient(ingredientID string) int {
	for i, ing := range r.Ingredients {
		if ing.IngredientID == ingredientID {
			return i
		}
	}
	return -1
}

// RemoveIngredient removes the ingredient at the given index
func (r *Recipe) RemoveIngredient(index int) {
	r.Ingredients = append(r.Ingredients[:index], r.Ingredients[index+1:]...)
}

// AppendStepNote appends a note to the instruction of the given step number.
// It reports whether the step exists.
func (r *Recipe) AppendStepNote(stepNumber int, note string) bool {
	for i := range r.Steps {
		if r.Steps[i].Number == stepNumber {
			r.Steps[i].Instruction += " (Note: " + note + ")"
			return true
		}
	}
	return false
}

// Rescale multiplies every ingredient amount by target/base servings,
// rounding to 2 decimals
func (r *Recipe) Rescale(targetServings int) {
	if targetServings <= 0 || targetServings == r.Servings || r.Servings <= 0 {
		return
	}
	factor := float64(targetServings) / float64(r.Servings)
	for i := range r.Ingredients {
		r.Ingredients[i].Amount = Round2(r.Ingredients[i].Amount * factor)
	}
	r.Servings = targetServings
}

// RenumberSteps sorts steps by their current number and renumbers them to a
// dense 1..N sequence, so removals and insertions never leave gaps
func (r *Recipe) RenumberSteps() {
	sort.SliceStable(r.Steps, func(i, j int) bool {
		return r.Steps[i].Number < r.Steps[j].Number
	})
	for i := range r.Steps {
		r.Steps[i].Number = i + 1
	}
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func stepsAreDense(steps []Step) bool {
	seen := make(map[int]bool, len(steps))
	for _, s := range steps {
		if s.Number < 1 || s.Number > len(steps) || seen[s.Number] {
			return false
		}
		seen[s.Number] = true
	}
	return true
}

package adaptation

import "github.com/cocinero/v1/internal/domain/catalog"

// DietaryRules is an explicit, swappable rule table classifying catalog
// ingredients against named restrictions by category/subcategory lookup.
//
// This is a heuristic approximation, not a compliance engine: borderline
// items such as gelatin, honey, or lard are not flagged because they live
// outside the excluded categories. Changing that is a deliberate rule-table
// change, not a bug fix.
type DietaryRules map[string][]CategoryMatch

// CategoryMatch excludes an ingredient category; an empty subcategory list
// excludes the whole category
type CategoryMatch struct {
	Category      string
	Subcategories []string
}

// DefaultDietaryRules returns the built-in rule table
func DefaultDietaryRules() DietaryRules {
	animalProtein := CategoryMatch{
		Category:      "protein",
		Subcategories: []string{"poultry", "beef", "pork", "fish", "shellfish"},
	}
	return DietaryRules{
		"vegetarian": {animalProtein},
		"vegan": {
			animalProtein,
			{Category: "dairy"},
			{Category: "protein", Subcategories: []string{"egg"}},
		},
		"gluten-free": {
			{Category: "flour", Subcategories: []string{"wheat"}},
		},
	}
}

// Violates reports whether an ingredient violates a restriction
func (r DietaryRules) Violates(restriction string, item catalog.Ingredient) bool {
	for _, match := range r[restriction] {
		if match.Category != item.Category {
			continue
		}
		if len(match.Subcategories) == 0 {
			return true
		}
		for _, sub := range match.Subcategories {
			if sub == item.Subcategory {
				return true
			}
		}
	}
	return false
}

// Known reports whether the table has rules for a restriction
func (r DietaryRules) Known(restriction string) bool {
	_, ok := r[restriction]
	return ok
}

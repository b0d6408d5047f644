package recipe

import "time"

// A Variant is a named diff bundle against a base recipe. It stores only the
// changes, never a full recipe copy. Each affected ingredient or step appears
// exactly once, carrying its change kind, which makes "same id listed as both
// removed and modified" unrepresentable.

// ChangeKind tags a single change inside a variant
type ChangeKind string

const (
	ChangeRemoved  ChangeKind = "removed"
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
)

// IngredientChange describes one ingredient-level change.
// Ingredient is the payload for added and modified changes and nil for removals.
type IngredientChange struct {
	Kind         ChangeKind
	IngredientID string
	Ingredient   *Ingredient
}

// Validate validates the ingredient change
func (c IngredientChange) Validate() error {
	switch c.Kind {
	case ChangeRemoved:
		if c.Ingredient != nil {
			return ErrChangePayloadMismatch
		}
	case ChangeAdded, ChangeModified:
		if c.Ingredient == nil {
			return ErrChangePayloadMismatch
		}
	default:
		return ErrUnknownChangeKind
	}
	if c.IngredientID == "" {
		return ErrEmptyIngredientID
	}
	return nil
}

// StepChange describes one step-level change.
// Step is the payload for added and modified changes and nil for removals.
type StepChange struct {
	Kind       ChangeKind
	StepNumber int
	Step       *Step
}

// Validate validates the step change
func (c StepChange) Validate() error {
	switch c.Kind {
	case ChangeRemoved:
		if c.Step != nil {
			return ErrChangePayloadMismatch
		}
	case ChangeAdded, ChangeModified:
		if c.Step == nil {
			return ErrChangePayloadMismatch
		}
	default:
		return ErrUnknownChangeKind
	}
	if c.StepNumber < 1 {
		return ErrInvalidStepNumber
	}
	return nil
}

// Variant is a stored diff bundle
type Variant struct {
	ID           string
	BaseRecipeID string
	Name         string
	Description  string

	IngredientChanges []IngredientChange
	StepChanges       []StepChange
	Metadata          map[string]string

	Tags      []string
	TimesUsed int
	CreatedAt time.Time
}

// Validate validates the variant, including the one-change-per-id invariant
func (v Variant) Validate() error {
	if v.BaseRecipeID == "" {
		return ErrEmptyRecipeID
	}
	if v.Name == "" {
		return ErrEmptyVariantName
	}
	seenIngredients := make(map[string]bool, len(v.IngredientChanges))
	for _, c := range v.IngredientChanges {
		if err := c.Validate(); err != nil {
			return err
		}
		if seenIngredients[c.IngredientID] {
			return ErrDuplicateChange
		}
		seenIngredients[c.IngredientID] = true
	}
	seenSteps := make(map[int]bool, len(v.StepChanges))
	for _, c := range v.StepChanges {
		if err := c.Validate(); err != nil {
			return err
		}
		if seenSteps[c.StepNumber] {
			return ErrDuplicateChange
		}
		seenSteps[c.StepNumber] = true
	}
	return nil
}

// Summary describes a variant by counting its changes, without ever
// materializing the derived recipe
type Summary struct {
	VariantID           string
	Name                string
	BaseRecipeID        string
	IngredientsRemoved  int
	IngredientsAdded    int
	IngredientsModified int
	StepsRemoved        int
	StepsAdded          int
	StepsModified       int
	TimesUsed           int
}

// Summarize derives a Summary from the diff alone
func (v Variant) Summarize() Summary {
	s := Summary{
		VariantID:    v.ID,
		Name:         v.Name,
		BaseRecipeID: v.BaseRecipeID,
		TimesUsed:    v.TimesUsed,
	}
	for _, c := range v.IngredientChanges {
		switch c.Kind {
		case ChangeRemoved:
			s.IngredientsRemoved++
		case ChangeAdded:
			s.IngredientsAdded++
		case ChangeModified:
			s.IngredientsModified++
		}
	}
	for _, c := range v.StepChanges {
		switch c.Kind {
		case ChangeRemoved:
			s.StepsRemoved++
		case ChangeAdded:
			s.StepsAdded++
		case ChangeModified:
			s.StepsModified++
		}
	}
	return s
}

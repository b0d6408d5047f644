package recipe

// Value Objects - Immutable objects that describe aspects of the domain

// Ingredient represents an ingredient line on a recipe
type Ingredient struct {
	IngredientID string
	Name         string
	Amount       float64
	Unit         string
	Optional     bool
	Notes        string
}

// Validate validates the ingredient line
func (i Ingredient) Validate() error {
	if i.IngredientID == "" {
		return ErrEmptyIngredientID
	}
	if i.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Step represents a single cooking instruction
type Step struct {
	Number          int
	Instruction     string
	DurationMinutes int
}

// Validate validates the step
func (s Step) Validate() error {
	if s.Number < 1 {
		return ErrInvalidStepNumber
	}
	if s.Instruction == "" {
		return ErrEmptyInstruction
	}
	return nil
}

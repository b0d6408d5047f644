package recipe

import "errors"

// Domain errors for recipe and variant operations

var (
	// Entity validation errors
	ErrEmptyRecipeID     = errors.New("recipe id is required")
	ErrEmptyTitle        = errors.New("recipe title is required")
	ErrInvalidServings   = errors.New("servings must be greater than 0")
	ErrEmptyIngredientID = errors.New("ingredient id is required")
	ErrNegativeAmount    = errors.New("ingredient amount cannot be negative")
	ErrInvalidStepNumber = errors.New("step number must be at least 1")
	ErrEmptyInstruction  = errors.New("step instruction is required")
	ErrStepsNotDense     = errors.New("steps must be numbered densely from 1")

	// Variant errors
	ErrEmptyVariantName      = errors.New("variant name is required")
	ErrUnknownChangeKind     = errors.New("unknown variant change kind")
	ErrChangePayloadMismatch = errors.New("variant change payload does not match its kind")
	ErrDuplicateChange       = errors.New("variant lists the same id in more than one change")
)

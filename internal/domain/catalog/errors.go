package catalog

import "errors"

// Domain errors for catalog operations

var (
	ErrEmptyItemID       = errors.New("catalog item id is required")
	ErrEmptyItemName     = errors.New("catalog item name is required")
	ErrInvalidRatio      = errors.New("substitution ratio must be greater than 0")
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")
	ErrNegativeQuantity  = errors.New("inventory quantity cannot be negative")
)

package inventory

import "errors"

// Domain errors for inventory operations

var (
	// Entity validation errors
	ErrEmptyName           = errors.New("item name must not be empty")
	ErrNameTooLong         = errors.New("item name must not exceed 200 characters")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrNonPositiveQuantity = errors.New("quantity must be greater than 0")
	ErrInvalidFreshness    = errors.New("freshness days must be greater than 0")
	ErrInvalidLabel        = errors.New("label must be raw_material or cooked_meal")

	// Store errors
	ErrItemNotFound = errors.New("food item not found")
)

package domain

import "errors"

var (
	// ErrProductNotFound is returned when no category dataset contains the
	// requested identifier.
	ErrProductNotFound = errors.New("product not found in any category")

	// ErrCategoryUnavailable is returned when a single category's dataset
	// cannot be read; the loader logs it and continues with the rest.
	ErrCategoryUnavailable = errors.New("category dataset unavailable")

	// ErrCategoryMismatch is returned when a comparison selection targets a
	// product whose category differs from the other slot's product.
	ErrCategoryMismatch = errors.New("compared products must share a category")

	// ErrNoSelection is returned when a commit is requested without a
	// highlighted search result.
	ErrNoSelection = errors.New("no search result selected")

	// ErrSlotFilled is returned when a search operation targets a slot that
	// currently holds a product.
	ErrSlotFilled = errors.New("slot already holds a product")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

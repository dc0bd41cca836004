package product

import "errors"

var (
	// ErrNotFound means the product ID resolved to nothing.
	ErrNotFound = errors.New("product not found")
	// ErrVariationNotFound means the (product, variation) pair does not exist.
	ErrVariationNotFound = errors.New("product variation not found")
	// ErrInsufficientStock means a decrement would push stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

package order

import "errors"

var (
	// ErrNotFound means the human-readable order ID resolved to nothing.
	ErrNotFound = errors.New("order not found")
	// ErrNotAuthorized means the caller is neither admin nor the owner.
	ErrNotAuthorized = errors.New("not authorized for this order")
	// ErrNotCancellable means a customer cancel was attempted outside Pending.
	ErrNotCancellable = errors.New("order cannot be cancelled as it is already being processed")
	// ErrNoItems means an order was submitted with an empty item list.
	ErrNoItems = errors.New("no order items")
	// ErrTotalMismatch means the submitted total does not equal the sum of
	// line totals.
	ErrTotalMismatch = errors.New("order total does not match line items")
)

package order

// StockDirection is the inventory side effect of a status transition.
type StockDirection int

const (
	// StockKeep leaves stock untouched.
	StockKeep StockDirection = 0
	// StockDecrement commits the order's quantities out of availability.
	StockDecrement StockDirection = -1
	// StockIncrement returns the order's quantities to availability.
	StockIncrement StockDirection = 1
)

// StockDirectionFor is the transition table shared by the single and bulk
// status-update paths. Only three transitions touch stock:
//
//	Pending    -> Processing  decrement
//	Processing -> Pending     increment
//	Pending or Processing -> Cancelled  increment (restock)
//
// Everything else, including same-status (notes-only) updates, is neutral.
func StockDirectionFor(from, to Status) StockDirection {
	if from == to {
		return StockKeep
	}

	switch {
	case from == StatusPending && to == StatusProcessing:
		return StockDecrement
	case from == StatusProcessing && to == StatusPending:
		return StockIncrement
	case to == StatusCancelled && (from == StatusPending || from == StatusProcessing):
		return StockIncrement
	default:
		return StockKeep
	}
}

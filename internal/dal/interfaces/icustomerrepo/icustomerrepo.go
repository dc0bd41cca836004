package icustomerrepo

import (
	"context"
	"time"
)

// ICustomerRepository is the interface for the customer postgres repository.
type ICustomerRepository interface {
	// ApplyOrderStats increments the customer's running totalSpent and moves
	// lastOrder forward. Called once per successfully created order.
	ApplyOrderStats(ctx context.Context, customerID int64, totalCents int64, at time.Time) error
}

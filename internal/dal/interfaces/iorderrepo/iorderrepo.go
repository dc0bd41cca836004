package iorderrepo

import (
	"context"

	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/service/models/stats"
)

// IOrderRepository is the interface for the order postgres repository.
type IOrderRepository interface {
	// Insert persists a new order with its items and initial status history.
	Insert(ctx context.Context, o order.Order) (order.Order, error)

	// GetByHumanID loads one order by its human-readable ID with items and
	// full status history. forUpdate row-locks the order for the duration of
	// the surrounding transaction.
	GetByHumanID(ctx context.Context, humanID string, forUpdate bool) (*order.Order, error)

	// Query retrieves orders newest-first according to the filter.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// UpdateStatus sets the order's status and appends one history entry.
	UpdateStatus(ctx context.Context, orderID int64, ev order.StatusEvent) error

	// SumRevenueCents totals non-cancelled order amounts within the range.
	SumRevenueCents(ctx context.Context, r stats.DateRange) (int64, error)

	// CountByStatus counts orders holding the given status within the range.
	CountByStatus(ctx context.Context, status order.Status, r stats.DateRange) (int64, error)
}

package stats

import (
	"time"

	"github.com/easyorganic/order-svc/internal/service/models/order"
)

// DashboardStats is the aggregate snapshot broadcast to dashboards after
// every committed order mutation and served on demand with an optional date
// range.
type DashboardStats struct {
	TotalRevenueCents int64         `json:"totalRevenueCents"`
	NewOrdersCount    int64         `json:"newOrdersCount"`
	TotalProducts     int64         `json:"totalProducts"`
	RecentOrders      []order.Order `json:"recentOrders"`
}

// DateRange filters revenue and pending-order aggregates. A zero range means
// all time. End is inclusive up to end of day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether no date filtering was requested.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

package statssvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/service/models/product"
	"github.com/easyorganic/order-svc/internal/service/models/stats"
)

type stubOrderRepo struct {
	orders []order.Order
}

func (r *stubOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	return o, nil
}

func (r *stubOrderRepo) GetByHumanID(context.Context, string, bool) (*order.Order, error) {
	return nil, order.ErrNotFound
}

func (r *stubOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	result := make([]order.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		result = append(result, r.orders[i])
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}

	return result, nil
}

func (r *stubOrderRepo) UpdateStatus(context.Context, int64, order.StatusEvent) error {
	return nil
}

func (r *stubOrderRepo) SumRevenueCents(_ context.Context, dr stats.DateRange) (int64, error) {
	var total int64
	for _, o := range r.orders {
		if o.Status == order.StatusCancelled {
			continue
		}
		if !dr.IsZero() && (o.CreatedAt.Before(dr.Start) || o.CreatedAt.After(dr.End)) {
			continue
		}
		total += o.TotalCents
	}

	return total, nil
}

func (r *stubOrderRepo) CountByStatus(_ context.Context, status order.Status, dr stats.DateRange) (int64, error) {
	var count int64
	for _, o := range r.orders {
		if o.Status != status {
			continue
		}
		if !dr.IsZero() && (o.CreatedAt.Before(dr.Start) || o.CreatedAt.After(dr.End)) {
			continue
		}
		count++
	}

	return count, nil
}

type stubProductRepo struct {
	count int64
}

func (r *stubProductRepo) AdjustVariationStock(context.Context, int64, string, int) error {
	return nil
}

func (r *stubProductRepo) GetByID(context.Context, int64) (*product.Product, error) {
	return nil, product.ErrNotFound
}

func (r *stubProductRepo) Count(context.Context) (int64, error) {
	return r.count, nil
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 10, 0, 0, 0, time.UTC)
}

func testOrders() []order.Order {
	return []order.Order{
		{HumanID: "#A0001", Status: order.StatusDelivered, TotalCents: 1000, CreatedAt: day(1)},
		{HumanID: "#A0002", Status: order.StatusCancelled, TotalCents: 9999, CreatedAt: day(2)},
		{HumanID: "#A0003", Status: order.StatusPending, TotalCents: 500, CreatedAt: day(3)},
		{HumanID: "#A0004", Status: order.StatusPending, TotalCents: 750, CreatedAt: day(4)},
		{HumanID: "#A0005", Status: order.StatusProcessing, TotalCents: 250, CreatedAt: day(5)},
		{HumanID: "#A0006", Status: order.StatusShipped, TotalCents: 300, CreatedAt: day(6)},
		{HumanID: "#A0007", Status: order.StatusDelivered, TotalCents: 400, CreatedAt: day(7)},
	}
}

func TestSnapshotAggregates(t *testing.T) {
	t.Parallel()

	svc := MustNewStatsService(
		WithOrderRepository(&stubOrderRepo{orders: testOrders()}),
		WithProductRepository(&stubProductRepo{count: 42}),
	)

	snapshot, err := svc.Snapshot(context.Background(), stats.DateRange{})
	require.NoError(t, err)

	// Revenue excludes the cancelled order.
	require.Equal(t, int64(3200), snapshot.TotalRevenueCents)
	require.Equal(t, int64(2), snapshot.NewOrdersCount)
	require.Equal(t, int64(42), snapshot.TotalProducts)

	require.Len(t, snapshot.RecentOrders, 5)
	require.Equal(t, "#A0007", snapshot.RecentOrders[0].HumanID)
	require.Equal(t, "#A0003", snapshot.RecentOrders[4].HumanID)
}

func TestSnapshotDateRange(t *testing.T) {
	t.Parallel()

	svc := MustNewStatsService(
		WithOrderRepository(&stubOrderRepo{orders: testOrders()}),
		WithProductRepository(&stubProductRepo{count: 42}),
	)

	dr := stats.DateRange{Start: day(3), End: day(5)}
	snapshot, err := svc.Snapshot(context.Background(), dr)
	require.NoError(t, err)

	require.Equal(t, int64(1500), snapshot.TotalRevenueCents)
	require.Equal(t, int64(2), snapshot.NewOrdersCount)

	// The recent-orders list ignores the range.
	require.Len(t, snapshot.RecentOrders, 5)
}

func TestSnapshotEmptyStore(t *testing.T) {
	t.Parallel()

	svc := MustNewStatsService(
		WithOrderRepository(&stubOrderRepo{}),
		WithProductRepository(&stubProductRepo{}),
	)

	snapshot, err := svc.Snapshot(context.Background(), stats.DateRange{})
	require.NoError(t, err)
	require.Zero(t, snapshot.TotalRevenueCents)
	require.Zero(t, snapshot.NewOrdersCount)
	require.NotNil(t, snapshot.RecentOrders)
	require.Empty(t, snapshot.RecentOrders)
}

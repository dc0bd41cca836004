package statssvc

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/easyorganic/order-svc/internal/dal/interfaces/iorderrepo"
	"github.com/easyorganic/order-svc/internal/dal/interfaces/iproductrepo"
	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/service/models/stats"
)

const recentOrdersLimit = 5

// StatsService recomputes the dashboard aggregate snapshot. It only reads,
// so it runs against the pool, never inside a unit of work.
type StatsService struct {
	orderRepo   iorderrepo.IOrderRepository
	productRepo iproductrepo.IProductRepository
}

// option is a function that configures the StatsService.
type option func(*StatsService)

// MustNewStatsService creates a new StatsService.
func MustNewStatsService(opts ...option) *StatsService {
	s := &StatsService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithOrderRepository sets the order repository for the StatsService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *StatsService) {
		s.orderRepo = repo
	}
}

// WithProductRepository sets the product repository for the StatsService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *StatsService) {
		s.productRepo = repo
	}
}

// Snapshot computes the dashboard aggregates, optionally filtered by date
// range. Revenue excludes cancelled orders; the recent-orders list always
// shows the latest five regardless of the range.
func (s *StatsService) Snapshot(ctx context.Context, dr stats.DateRange) (stats.DashboardStats, error) {
	var snapshot stats.DashboardStats

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		revenue, err := s.orderRepo.SumRevenueCents(gctx, dr)
		if err != nil {
			return err
		}
		snapshot.TotalRevenueCents = revenue

		return nil
	})

	g.Go(func() error {
		pending, err := s.orderRepo.CountByStatus(gctx, order.StatusPending, dr)
		if err != nil {
			return err
		}
		snapshot.NewOrdersCount = pending

		return nil
	})

	g.Go(func() error {
		products, err := s.productRepo.Count(gctx)
		if err != nil {
			return err
		}
		snapshot.TotalProducts = products

		return nil
	})

	g.Go(func() error {
		recent, err := s.orderRepo.Query(gctx, &order.QueryOrdersModel{Limit: recentOrdersLimit})
		if err != nil {
			return err
		}
		snapshot.RecentOrders = recent

		return nil
	})

	if err := g.Wait(); err != nil {
		return stats.DashboardStats{}, err
	}

	if snapshot.RecentOrders == nil {
		snapshot.RecentOrders = []order.Order{}
	}

	return snapshot, nil
}

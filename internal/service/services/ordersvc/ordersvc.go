package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/easyorganic/order-svc/internal/dal/interfaces/iactivityrepo"
	"github.com/easyorganic/order-svc/internal/dal/interfaces/icounterrepo"
	"github.com/easyorganic/order-svc/internal/dal/interfaces/icustomerrepo"
	"github.com/easyorganic/order-svc/internal/dal/interfaces/iorderrepo"
	"github.com/easyorganic/order-svc/internal/dal/interfaces/iproductrepo"
	"github.com/easyorganic/order-svc/internal/dal/postgres"
	"github.com/easyorganic/order-svc/internal/dal/uow"
	"github.com/easyorganic/order-svc/internal/notify"
	"github.com/easyorganic/order-svc/internal/service/models/activitylog"
	"github.com/easyorganic/order-svc/internal/service/models/identity"
	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/service/models/orderid"
	"github.com/easyorganic/order-svc/internal/service/models/orderitem"
	"github.com/easyorganic/order-svc/internal/service/models/paymentmethod"
	"github.com/easyorganic/order-svc/internal/service/models/stats"
	"github.com/easyorganic/order-svc/internal/service/services/stockledger"
)

const (
	notesCancelledByCustomer = "Cancelled by customer"
	notesBulkUpdate          = "Bulk update by admin"
)

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	ProductRepository() iproductrepo.IProductRepository
	CustomerRepository() icustomerrepo.ICustomerRepository
	CounterRepository() icounterrepo.ICounterRepository
}

type statsProvider interface {
	Snapshot(ctx context.Context, dr stats.DateRange) (stats.DashboardStats, error)
}

// OrderService owns the order lifecycle: creation, status transitions with
// their stock side effects, customer cancellation and bulk updates. Stock
// adjustment and the status write share one transaction; customer stats,
// activity logging and notifications run post-commit and are best-effort.
type OrderService struct {
	pgClient     *postgres.Client
	newUOW       func() unitOfWork
	notifier     notify.NotificationSink
	stats        statsProvider
	activityRepo iactivityrepo.IActivityRepository
	now          func() time.Time
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		notifier: notify.NopSink{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithNotifier sets the notification sink for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(sink notify.NotificationSink) option {
	return func(s *OrderService) {
		s.notifier = sink
	}
}

// WithStatsProvider sets the dashboard stats provider for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStatsProvider(provider statsProvider) option {
	return func(s *OrderService) {
		s.stats = provider
	}
}

// WithActivityRepository sets the admin activity log for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithActivityRepository(repo iactivityrepo.IActivityRepository) option {
	return func(s *OrderService) {
		s.activityRepo = repo
	}
}

// CreateOrderModel is the checkout payload. Item names, variations and
// prices arrive as snapshots from the storefront and are persisted verbatim;
// they are never re-read from the live catalog.
type CreateOrderModel struct {
	Items         []orderitem.OrderItem
	TotalCents    int64
	PaymentMethod paymentmethod.PaymentMethod
	Address       order.Address
	TransactionID string
}

func (m *CreateOrderModel) validate() error {
	if len(m.Items) == 0 {
		return order.ErrNoItems
	}

	var sum int64
	for i, item := range m.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("item %d: missing product reference", i)
		}
		if item.Variation == "" {
			return fmt.Errorf("item %d: missing variation", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive, got %d", i, item.Quantity)
		}
		if item.PriceCents < 0 {
			return fmt.Errorf("item %d: price cannot be negative", i)
		}
		sum += item.LineTotalCents()
	}

	if sum != m.TotalCents {
		return fmt.Errorf("%w: items sum to %d, got %d", order.ErrTotalMismatch, sum, m.TotalCents)
	}

	return nil
}

// CreateOrder places a new order for the calling customer: draws the next
// human-readable ID from the counter, freezes the item snapshots and writes
// order, items and the initial Pending history entry in one transaction.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	who identity.Identity,
	model CreateOrderModel,
) (order.Order, error) {
	if err := model.validate(); err != nil {
		return order.Order{}, err
	}

	now := s.now()

	transactionID := model.TransactionID
	if transactionID == "" {
		transactionID = fmt.Sprintf("txn_%s_%d", model.PaymentMethod.Lower(), now.UnixMilli())
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	seq, err := work.CounterRepository().Next(ctx)
	if err != nil {
		return order.Order{}, err
	}

	o := order.Order{
		HumanID:       orderid.Format(seq),
		CustomerID:    who.UserID,
		CustomerName:  who.Name,
		CustomerEmail: who.Email,
		Items:         model.Items,
		TotalCents:    model.TotalCents,
		Status:        order.StatusPending,
		PaymentMethod: model.PaymentMethod,
		TransactionID: transactionID,
		Address:       model.Address,
		StatusHistory: []order.StatusEvent{{Status: order.StatusPending, Timestamp: now}},
		CreatedAt:     now,
	}

	o, err = work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	// The order is committed; the customer's running stats are advisory
	// reporting data and must never roll it back.
	if err := s.newUOW().CustomerRepository().ApplyOrderStats(ctx, who.UserID, o.TotalCents, now); err != nil {
		slog.Error("Failed to update customer order stats",
			"customer_id", who.UserID,
			"order_id", o.HumanID,
			"error", err,
		)
	}

	s.notifier.Emit(ctx, notify.EventNewOrder, o)
	s.emitStats(ctx)

	return o, nil
}

// GetAllOrders returns orders newest-first according to the filter.
func (s *OrderService) GetAllOrders(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	orders, err := s.newUOW().OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []order.Order{}
	}

	return orders, nil
}

// GetOrderByHumanID returns one order. Only admins and the owning customer
// may read it.
func (s *OrderService) GetOrderByHumanID(
	ctx context.Context,
	who identity.Identity,
	humanID string,
) (*order.Order, error) {
	o, err := s.newUOW().OrderRepository().GetByHumanID(ctx, humanID, false)
	if err != nil {
		return nil, err
	}

	if !who.IsAdmin() && o.CustomerID != who.UserID {
		return nil, order.ErrNotAuthorized
	}

	return o, nil
}

// GetOrdersByCustomer returns the calling customer's orders newest-first.
func (s *OrderService) GetOrdersByCustomer(
	ctx context.Context,
	customerID int64,
) ([]order.Order, error) {
	return s.GetAllOrders(ctx, &order.QueryOrdersModel{CustomerIds: []int64{customerID}})
}

// UpdateStatus moves one order to the requested status, applying the
// transition table's stock effect in the same transaction. A same-status
// update still appends a history entry (notes-only updates are allowed)
// without touching stock.
func (s *OrderService) UpdateStatus(
	ctx context.Context,
	who identity.Identity,
	humanID string,
	status order.Status,
	notes string,
) (*order.Order, error) {
	o, previous, err := s.applyStatusChange(ctx, humanID, status, notes)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, who, "Updated order status", "Order", o.HumanID,
		fmt.Sprintf("Status changed from %s to %s.", previous, status))

	s.notifier.Emit(ctx, notify.EventOrderUpdated, *o)
	if status == order.StatusCancelled {
		s.notifier.Emit(ctx, notify.EventOrderCancelled, cancelledNotification{
			Order:   *o,
			Message: "Refund may be required.",
		})
	}
	s.emitStats(ctx)

	return o, nil
}

// CancelOrder is the customer-initiated cancel: owner-only, Pending-only,
// always restocks.
func (s *OrderService) CancelOrder(
	ctx context.Context,
	who identity.Identity,
	humanID string,
) (*order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	o, err := work.OrderRepository().GetByHumanID(ctx, humanID, true)
	if err != nil {
		return nil, err
	}

	if o.CustomerID != who.UserID {
		return nil, order.ErrNotAuthorized
	}
	if o.Status != order.StatusPending {
		return nil, order.ErrNotCancellable
	}

	if err := stockledger.Apply(ctx, work.ProductRepository(), o.Items, order.StockIncrement); err != nil {
		return nil, err
	}

	ev := order.StatusEvent{
		Status:    order.StatusCancelled,
		Timestamp: s.now(),
		Notes:     notesCancelledByCustomer,
	}
	if err := work.OrderRepository().UpdateStatus(ctx, o.ID, ev); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	o.Status = order.StatusCancelled
	o.StatusHistory = append(o.StatusHistory, ev)

	s.notifier.Emit(ctx, notify.EventOrderUpdated, *o)
	s.emitStats(ctx)

	return o, nil
}

// BulkUpdateStatus applies the same target status to every order in the set.
// Each order is processed in its own transaction against its own current
// status, so a mixed batch nets the correct per-order stock effect. A failed
// order is skipped; the caller reports "N orders updated".
func (s *OrderService) BulkUpdateStatus(
	ctx context.Context,
	who identity.Identity,
	humanIDs []string,
	status order.Status,
) (int, error) {
	if len(humanIDs) == 0 {
		return 0, fmt.Errorf("no order ids provided")
	}

	updated := make([]*order.Order, 0, len(humanIDs))
	for _, humanID := range humanIDs {
		o, _, err := s.applyStatusChange(ctx, humanID, status, notesBulkUpdate)
		if err != nil {
			slog.Error("Bulk update failed for order", "order_id", humanID, "status", status, "error", err)

			continue
		}
		updated = append(updated, o)
	}

	s.logActivity(ctx, who, "Bulk updated orders", "Order", strings.Join(humanIDs, ", "),
		fmt.Sprintf("Set status to %s for %d orders.", status, len(updated)))

	for _, o := range updated {
		s.notifier.Emit(ctx, notify.EventOrderUpdated, *o)
	}
	s.emitStats(ctx)

	return len(updated), nil
}

// applyStatusChange is the shared single-order transition used by both the
// single and bulk paths: row-lock the order, apply the transition table's
// stock delta, append the history entry and set the status, all in one
// transaction. Returns the updated order and the status it held before.
func (s *OrderService) applyStatusChange(
	ctx context.Context,
	humanID string,
	status order.Status,
	notes string,
) (*order.Order, order.Status, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, "", err
	}
	defer func() { _ = work.Rollback(ctx) }()

	o, err := work.OrderRepository().GetByHumanID(ctx, humanID, true)
	if err != nil {
		return nil, "", err
	}
	previous := o.Status

	direction := order.StockDirectionFor(previous, status)
	if err := stockledger.Apply(ctx, work.ProductRepository(), o.Items, direction); err != nil {
		return nil, "", err
	}

	ev := order.StatusEvent{Status: status, Timestamp: s.now(), Notes: notes}
	if err := work.OrderRepository().UpdateStatus(ctx, o.ID, ev); err != nil {
		return nil, "", err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, "", err
	}

	o.Status = status
	o.StatusHistory = append(o.StatusHistory, ev)

	return o, previous, nil
}

func (s *OrderService) emitStats(ctx context.Context) {
	if s.stats == nil {
		return
	}

	snapshot, err := s.stats.Snapshot(ctx, stats.DateRange{})
	if err != nil {
		slog.Error("Failed to compute dashboard stats", "error", err)

		return
	}

	s.notifier.Emit(ctx, notify.EventStatsUpdate, snapshot)
}

func (s *OrderService) logActivity(
	ctx context.Context,
	who identity.Identity,
	action, targetType, targetID, details string,
) {
	if s.activityRepo == nil || !who.IsAdmin() {
		return
	}

	entry := activitylog.Entry{
		AdminID:    who.UserID,
		AdminName:  who.Name,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		CreatedAt:  s.now(),
	}
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		slog.Error("Failed to log admin activity", "action", action, "target_id", targetID, "error", err)
	}
}

// cancelledNotification decorates the order payload with the refund hint.
type cancelledNotification struct {
	order.Order
	Message string `json:"message"`
}

package ordersvc

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/easyorganic/order-svc/internal/dal/interfaces/icounterrepo"
	"github.com/easyorganic/order-svc/internal/dal/interfaces/icustomerrepo"
	"github.com/easyorganic/order-svc/internal/dal/interfaces/iorderrepo"
	"github.com/easyorganic/order-svc/internal/dal/interfaces/iproductrepo"
	"github.com/easyorganic/order-svc/internal/service/models/activitylog"
	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/service/models/product"
	"github.com/easyorganic/order-svc/internal/service/models/stats"
)

// storeState is the data a transaction can touch. A fake unit of work clones
// it on Begin and writes the clone back on Commit, so a rollback leaves the
// shared store exactly as it was.
type storeState struct {
	nextOrderID int64
	orders      []order.Order
	stock       map[string]int
}

func stockKey(productID int64, variation string) string {
	return fmt.Sprintf("%d/%s", productID, variation)
}

func (s *storeState) clone() *storeState {
	c := &storeState{
		nextOrderID: s.nextOrderID,
		stock:       make(map[string]int, len(s.stock)),
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	c.orders = make([]order.Order, len(s.orders))
	for i, o := range s.orders {
		c.orders[i] = cloneOrder(o)
	}

	return c
}

func cloneOrder(o order.Order) order.Order {
	o.Items = append(o.Items[:0:0], o.Items...)
	o.StatusHistory = append(o.StatusHistory[:0:0], o.StatusHistory...)

	return o
}

// fakeStore backs every fake unit of work spawned by one test.
type fakeStore struct {
	mu    sync.Mutex
	state *storeState
	seq   int64

	customerStatsErr   error
	customerStatsCalls int

	activityEntries []activitylog.Entry
	activityErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		state: &storeState{
			nextOrderID: 1,
			stock:       make(map[string]int),
		},
	}
}

func (f *fakeStore) setStock(productID int64, variation string, stock int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.stock[stockKey(productID, variation)] = stock
}

func (f *fakeStore) stockOf(productID int64, variation string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state.stock[stockKey(productID, variation)]
}

func (f *fakeStore) orderByHumanID(humanID string) *order.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.state.orders {
		if f.state.orders[i].HumanID == humanID {
			o := cloneOrder(f.state.orders[i])

			return &o
		}
	}

	return nil
}

func (f *fakeStore) newUOW() unitOfWork {
	return &fakeUOW{store: f}
}

// fakeUOW mimics the transactional unit of work against the in-memory store.
type fakeUOW struct {
	store   *fakeStore
	working *storeState
}

// state returns the transaction's working copy, or the live store for
// repositories used outside a transaction.
func (u *fakeUOW) state() *storeState {
	if u.working != nil {
		return u.working
	}

	return u.store.state
}

func (u *fakeUOW) Begin(context.Context) error {
	u.store.mu.Lock()
	u.working = u.store.state.clone()

	return nil
}

func (u *fakeUOW) Commit(context.Context) error {
	if u.working == nil {
		return nil
	}
	u.store.state = u.working
	u.working = nil
	u.store.mu.Unlock()

	return nil
}

func (u *fakeUOW) Rollback(context.Context) error {
	if u.working == nil {
		return nil
	}
	u.working = nil
	u.store.mu.Unlock()

	return nil
}

func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository {
	return &fakeOrderRepo{uow: u}
}

func (u *fakeUOW) ProductRepository() iproductrepo.IProductRepository {
	return &fakeProductRepo{uow: u}
}

func (u *fakeUOW) CustomerRepository() icustomerrepo.ICustomerRepository {
	return &fakeCustomerRepo{store: u.store}
}

func (u *fakeUOW) CounterRepository() icounterrepo.ICounterRepository {
	return &fakeCounterRepo{store: u.store}
}

type fakeCounterRepo struct {
	store *fakeStore
}

func (r *fakeCounterRepo) Next(context.Context) (int64, error) {
	return atomic.AddInt64(&r.store.seq, 1), nil
}

type fakeCustomerRepo struct {
	store *fakeStore
}

func (r *fakeCustomerRepo) ApplyOrderStats(_ context.Context, _ int64, _ int64, _ time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.customerStatsCalls++

	return r.store.customerStatsErr
}

type fakeOrderRepo struct {
	uow *fakeUOW
}

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	st := r.uow.state()
	o.ID = st.nextOrderID
	st.nextOrderID++
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	st.orders = append(st.orders, cloneOrder(o))

	return o, nil
}

func (r *fakeOrderRepo) GetByHumanID(_ context.Context, humanID string, _ bool) (*order.Order, error) {
	st := r.uow.state()
	for i := range st.orders {
		if st.orders[i].HumanID == humanID {
			o := cloneOrder(st.orders[i])

			return &o, nil
		}
	}

	return nil, order.ErrNotFound
}

func (r *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	st := r.uow.state()
	var result []order.Order
	for i := len(st.orders) - 1; i >= 0; i-- {
		o := st.orders[i]
		if len(filter.CustomerIds) > 0 && !containsInt64(filter.CustomerIds, o.CustomerID) {
			continue
		}
		if len(filter.HumanIds) > 0 && !containsString(filter.HumanIds, o.HumanID) {
			continue
		}
		result = append(result, cloneOrder(o))
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}

	return result, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, orderID int64, ev order.StatusEvent) error {
	st := r.uow.state()
	for i := range st.orders {
		if st.orders[i].ID == orderID {
			st.orders[i].Status = ev.Status
			st.orders[i].StatusHistory = append(st.orders[i].StatusHistory, ev)

			return nil
		}
	}

	return order.ErrNotFound
}

func (r *fakeOrderRepo) SumRevenueCents(_ context.Context, _ stats.DateRange) (int64, error) {
	st := r.uow.state()
	var total int64
	for _, o := range st.orders {
		if o.Status != order.StatusCancelled {
			total += o.TotalCents
		}
	}

	return total, nil
}

func (r *fakeOrderRepo) CountByStatus(_ context.Context, status order.Status, _ stats.DateRange) (int64, error) {
	st := r.uow.state()
	var count int64
	for _, o := range st.orders {
		if o.Status == status {
			count++
		}
	}

	return count, nil
}

type fakeProductRepo struct {
	uow *fakeUOW
}

func (r *fakeProductRepo) AdjustVariationStock(_ context.Context, productID int64, variation string, delta int) error {
	st := r.uow.state()
	key := stockKey(productID, variation)
	current, ok := st.stock[key]
	if !ok {
		return product.ErrVariationNotFound
	}
	if current+delta < 0 {
		return product.ErrInsufficientStock
	}
	st.stock[key] = current + delta

	return nil
}

func (r *fakeProductRepo) GetByID(context.Context, int64) (*product.Product, error) {
	return nil, product.ErrNotFound
}

func (r *fakeProductRepo) Count(context.Context) (int64, error) {
	return int64(len(r.uow.state().stock)), nil
}

type fakeActivityRepo struct {
	store *fakeStore
}

func (r *fakeActivityRepo) Insert(_ context.Context, entry activitylog.Entry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.activityErr != nil {
		return r.store.activityErr
	}
	r.store.activityEntries = append(r.store.activityEntries, entry)

	return nil
}

// recordingSink captures every emitted event in order.
type recordingSink struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	event   string
	payload any
}

func (s *recordingSink) Emit(_ context.Context, event string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, recordedEvent{event: event, payload: payload})
}

func (s *recordingSink) eventNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.events))
	for i, e := range s.events {
		names[i] = e.event
	}

	return names
}

func containsInt64(haystack []int64, needle int64) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}

	return false
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}

	return false
}

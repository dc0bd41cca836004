package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/easyorganic/order-svc/internal/dal/postgres"
	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/service/models/orderid"
	"github.com/easyorganic/order-svc/internal/service/models/orderitem"
	"github.com/easyorganic/order-svc/internal/service/models/paymentmethod"
	"github.com/easyorganic/order-svc/internal/service/models/stats"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var orderColumns = []string{
	"id",
	"human_id",
	"customer_id",
	"customer_name",
	"customer_email",
	"total_cents",
	"status",
	"payment_method",
	"transaction_id",
	"address_full_name",
	"address_street",
	"address_city",
	"address_state",
	"address_zip",
	"address_country",
	"address_phone",
	"address_lat",
	"address_lng",
	"created_at",
}

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id            int64
	HumanId       string
	CustomerId    int64
	CustomerName  string
	CustomerEmail string
	TotalCents    int64
	Status        string
	PaymentMethod string
	TransactionId string
	AddrFullName  string
	AddrStreet    string
	AddrCity      string
	AddrState     string
	AddrZip       string
	AddrCountry   string
	AddrPhone     string
	AddrLat       *float64
	AddrLng       *float64
	CreatedAt     time.Time
}

func (d *OrderDal) scanTargets() []any {
	return []any{
		&d.Id,
		&d.HumanId,
		&d.CustomerId,
		&d.CustomerName,
		&d.CustomerEmail,
		&d.TotalCents,
		&d.Status,
		&d.PaymentMethod,
		&d.TransactionId,
		&d.AddrFullName,
		&d.AddrStreet,
		&d.AddrCity,
		&d.AddrState,
		&d.AddrZip,
		&d.AddrCountry,
		&d.AddrPhone,
		&d.AddrLat,
		&d.AddrLng,
		&d.CreatedAt,
	}
}

// ToModel converts OrderDal to the service layer Order model. A stored
// human ID that does not parse is a data-integrity fault and fails the read.
func (d *OrderDal) ToModel() (*order.Order, error) {
	if _, err := orderid.Parse(d.HumanId); err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", d.HumanId, err)
	}
	method, err := paymentmethod.ParsePaymentMethod(d.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", d.HumanId, err)
	}

	addr := order.Address{
		FullName: d.AddrFullName,
		Street:   d.AddrStreet,
		City:     d.AddrCity,
		State:    d.AddrState,
		Zip:      d.AddrZip,
		Country:  d.AddrCountry,
		Phone:    d.AddrPhone,
	}
	if d.AddrLat != nil && d.AddrLng != nil {
		addr.Location = &order.GeoLocation{Lat: *d.AddrLat, Lng: *d.AddrLng}
	}

	return &order.Order{
		ID:            d.Id,
		HumanID:       d.HumanId,
		CustomerID:    d.CustomerId,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		TotalCents:    d.TotalCents,
		Status:        status,
		PaymentMethod: method,
		TransactionID: d.TransactionId,
		Address:       addr,
		Items:         []orderitem.OrderItem{},
		StatusHistory: []order.StatusEvent{},
		CreatedAt:     d.CreatedAt,
	}, nil
}

type PostgresOrderRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

// Insert persists an order with its items and initial status history.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	var lat, lng *float64
	if o.Address.Location != nil {
		lat = &o.Address.Location.Lat
		lng = &o.Address.Location.Lng
	}

	query, args, err := psql.Insert("orders").
		Columns(orderColumns[1:]...).
		Values(
			o.HumanID,
			o.CustomerID,
			o.CustomerName,
			o.CustomerEmail,
			o.TotalCents,
			o.Status,
			o.PaymentMethod,
			o.TransactionID,
			o.Address.FullName,
			o.Address.Street,
			o.Address.City,
			o.Address.State,
			o.Address.Zip,
			o.Address.Country,
			o.Address.Phone,
			lat,
			lng,
			o.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build order insert: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := r.insertItems(ctx, o.ID, o.Items); err != nil {
		return order.Order{}, err
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}

	for _, ev := range o.StatusHistory {
		if err := r.insertHistory(ctx, o.ID, ev); err != nil {
			return order.Order{}, err
		}
	}

	return o, nil
}

func (r *PostgresOrderRepository) insertItems(
	ctx context.Context,
	orderID int64,
	items []orderitem.OrderItem,
) error {
	if len(items) == 0 {
		return nil
	}

	builder := psql.Insert("order_items").
		Columns("order_id", "product_id", "variation", "product_name", "quantity", "price_cents", "subscription", "position")
	for i, item := range items {
		builder = builder.Values(
			orderID,
			item.ProductID,
			item.Variation,
			item.ProductName,
			item.Quantity,
			item.PriceCents,
			item.Subscription,
			i,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order items insert: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}

	return nil
}

func (r *PostgresOrderRepository) insertHistory(
	ctx context.Context,
	orderID int64,
	ev order.StatusEvent,
) error {
	query, args, err := psql.Insert("order_status_history").
		Columns("order_id", "status", "occurred_at", "notes").
		Values(orderID, ev.Status, ev.Timestamp, ev.Notes).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build status history insert: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert status history: %w", err)
	}

	return nil
}

// GetByHumanID loads one order with items and status history.
func (r *PostgresOrderRepository) GetByHumanID(
	ctx context.Context,
	humanID string,
	forUpdate bool,
) (*order.Order, error) {
	builder := psql.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"human_id": humanID})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order select: %w", err)
	}

	var dal OrderDal
	if err := r.conn.QueryRow(ctx, query, args...).Scan(dal.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, err
	}

	orders := []order.Order{*model}
	if err := r.attachDetails(ctx, orders); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

// Query retrieves orders newest-first according to the filter.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	builder := psql.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id DESC")

	if len(filter.HumanIds) > 0 {
		builder = builder.Where(sq.Eq{"human_id": filter.HumanIds})
	}
	if len(filter.CustomerIds) > 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build orders query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		if err := rows.Scan(dal.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, err
		}
		result = append(result, *model)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	if err := r.attachDetails(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// attachDetails populates items and status history for the given orders.
func (r *PostgresOrderRepository) attachDetails(ctx context.Context, orders []order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	index := make(map[int64]*order.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = &orders[i]
	}

	query, args, err := psql.Select("order_id", "product_id", "variation", "product_name", "quantity", "price_cents", "subscription").
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order items query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item orderitem.OrderItem
		if err := rows.Scan(
			&item.OrderID,
			&item.ProductID,
			&item.Variation,
			&item.ProductName,
			&item.Quantity,
			&item.PriceCents,
			&item.Subscription,
		); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if o, ok := index[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	rows.Close()

	query, args, err = psql.Select("order_id", "status", "occurred_at", "notes").
		From("order_status_history").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "occurred_at", "id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build status history query: %w", err)
	}

	rows, err = r.conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID   int64
			rawStatus string
			ev        order.StatusEvent
		)
		if err := rows.Scan(&orderID, &rawStatus, &ev.Timestamp, &ev.Notes); err != nil {
			return fmt.Errorf("failed to scan status history: %w", err)
		}
		status, err := order.ParseStatus(rawStatus)
		if err != nil {
			return err
		}
		ev.Status = status
		if o, ok := index[orderID]; ok {
			o.StatusHistory = append(o.StatusHistory, ev)
		}
	}

	return rows.Err()
}

// UpdateStatus sets the order's status and appends one history entry.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	orderID int64,
	ev order.StatusEvent,
) error {
	query, args, err := psql.Update("orders").
		Set("status", ev.Status).
		Where(sq.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build status update: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}

	return r.insertHistory(ctx, orderID, ev)
}

// SumRevenueCents totals non-cancelled order amounts within the range.
func (r *PostgresOrderRepository) SumRevenueCents(
	ctx context.Context,
	dr stats.DateRange,
) (int64, error) {
	builder := psql.Select("COALESCE(SUM(total_cents), 0)").
		From("orders").
		Where(sq.NotEq{"status": order.StatusCancelled})
	builder = applyDateRange(builder, dr)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build revenue query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return total, nil
}

// CountByStatus counts orders holding the given status within the range.
func (r *PostgresOrderRepository) CountByStatus(
	ctx context.Context,
	status order.Status,
	dr stats.DateRange,
) (int64, error) {
	builder := psql.Select("COUNT(*)").
		From("orders").
		Where(sq.Eq{"status": status})
	builder = applyDateRange(builder, dr)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// applyDateRange adds only the bounds the caller supplied; a one-sided
// range must never turn the zero time into a real bound.
func applyDateRange(builder sq.SelectBuilder, dr stats.DateRange) sq.SelectBuilder {
	if !dr.Start.IsZero() {
		builder = builder.Where(sq.GtOrEq{"created_at": dr.Start})
	}
	if !dr.End.IsZero() {
		builder = builder.Where(sq.LtOrEq{"created_at": dr.End})
	}

	return builder
}

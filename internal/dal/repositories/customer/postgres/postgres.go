package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/easyorganic/order-svc/internal/dal/postgres"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresCustomerRepository struct {
	conn postgres.Querier
}

func NewPostgresCustomerRepository(conn postgres.Querier) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		conn: conn,
	}
}

// ApplyOrderStats increments the customer's running total and moves the last
// order timestamp forward. Increment, not recompute.
func (r *PostgresCustomerRepository) ApplyOrderStats(
	ctx context.Context,
	customerID int64,
	totalCents int64,
	at time.Time,
) error {
	query, args, err := psql.Update("customers").
		Set("total_spent_cents", sq.Expr("total_spent_cents + ?", totalCents)).
		Set("last_order_at", at).
		Where(sq.Eq{"id": customerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build customer stats update: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update customer stats: %w", err)
	}

	return nil
}

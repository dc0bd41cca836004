package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/easyorganic/order-svc/internal/dal/postgres"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresCounterRepository backs the order ID sequence with a single-row
// counter advanced by an atomic fetch-and-add. Concurrent creators serialize
// on the row lock, so two requests can never draw the same number.
type PostgresCounterRepository struct {
	conn postgres.Querier
}

func NewPostgresCounterRepository(conn postgres.Querier) *PostgresCounterRepository {
	return &PostgresCounterRepository{
		conn: conn,
	}
}

// Next returns the next order sequence number.
func (r *PostgresCounterRepository) Next(ctx context.Context) (int64, error) {
	query, args, err := psql.Update("order_id_counter").
		Set("last_value", sq.Expr("last_value + 1")).
		Where(sq.Eq{"id": 1}).
		Suffix("RETURNING last_value").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build counter update: %w", err)
	}

	var next int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to advance order id counter: %w", err)
	}

	return next, nil
}

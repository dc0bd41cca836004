package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/easyorganic/order-svc/internal/dal/postgres"
	"github.com/easyorganic/order-svc/internal/service/models/activitylog"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresActivityRepository struct {
	conn postgres.Querier
}

func NewPostgresActivityRepository(conn postgres.Querier) *PostgresActivityRepository {
	return &PostgresActivityRepository{
		conn: conn,
	}
}

// Insert appends one admin activity entry.
func (r *PostgresActivityRepository) Insert(ctx context.Context, entry activitylog.Entry) error {
	query, args, err := psql.Insert("activity_log").
		Columns("admin_id", "admin_name", "action", "target_type", "target_id", "details", "created_at").
		Values(
			entry.AdminID,
			entry.AdminName,
			entry.Action,
			entry.TargetType,
			entry.TargetID,
			entry.Details,
			entry.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build activity insert: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}

	return nil
}

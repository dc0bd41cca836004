package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/easyorganic/order-svc/internal/dal/postgres"
	"github.com/easyorganic/order-svc/internal/service/models/product"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresProductRepository struct {
	conn postgres.Querier
}

func NewPostgresProductRepository(conn postgres.Querier) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
	}
}

// AdjustVariationStock applies a signed delta to one variation's stock and
// recomputes the owning product's aggregates. The update is guarded so stock
// can never go negative; an over-sell fails with product.ErrInsufficientStock
// and no row changes.
func (r *PostgresProductRepository) AdjustVariationStock(
	ctx context.Context,
	productID int64,
	variation string,
	delta int,
) error {
	query, args, err := psql.Update("product_variations").
		Set("stock", sq.Expr("stock + ?", delta)).
		Where(sq.Eq{"product_id": productID, "name": variation}).
		Where(sq.Expr("stock + ? >= 0", delta)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build stock update: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		exists, err := r.variationExists(ctx, productID, variation)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: product %d variation %q", product.ErrVariationNotFound, productID, variation)
		}

		return fmt.Errorf("%w: product %d variation %q", product.ErrInsufficientStock, productID, variation)
	}

	return r.recomputeAggregates(ctx, productID)
}

func (r *PostgresProductRepository) variationExists(
	ctx context.Context,
	productID int64,
	variation string,
) (bool, error) {
	query, args, err := psql.Select("1").
		From("product_variations").
		Where(sq.Eq{"product_id": productID, "name": variation}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build variation select: %w", err)
	}

	var one int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("failed to query variation: %w", err)
	}

	return true, nil
}

// recomputeAggregates refreshes the product's total stock and derived status
// label. Called inside the same transaction as every stock mutation so the
// next read observes consistent aggregates.
func (r *PostgresProductRepository) recomputeAggregates(ctx context.Context, productID int64) error {
	query, args, err := psql.Select("COALESCE(SUM(stock), 0)").
		From("product_variations").
		Where(sq.Eq{"product_id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build total stock query: %w", err)
	}

	var totalStock int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&totalStock); err != nil {
		return fmt.Errorf("failed to sum variation stock: %w", err)
	}

	query, args, err = psql.Update("products").
		Set("total_stock", totalStock).
		Set("status", product.StatusForStock(totalStock)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build aggregates update: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update product aggregates: %w", err)
	}

	return nil
}

// GetByID loads a product with its variations.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	query, args, err := psql.Select("id", "name", "category", "total_stock", "status", "created_at", "updated_at").
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product select: %w", err)
	}

	var (
		p         product.Product
		rawStatus string
	)
	if err := r.conn.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.TotalStock,
		&rawStatus,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	p.Status = product.StockStatus(rawStatus)

	query, args, err = psql.Select("product_id", "name", "price_cents", "mrp_cents", "stock").
		From("product_variations").
		Where(sq.Eq{"product_id": id}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build variations select: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query variations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v product.Variation
		if err := rows.Scan(&v.ProductID, &v.Name, &v.PriceCents, &v.MrpCents, &v.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan variation: %w", err)
		}
		p.Variations = append(p.Variations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return &p, nil
}

// Count returns the number of products in the catalog.
func (r *PostgresProductRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").From("products").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build product count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

package postgresrepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/easyorganic/order-svc/internal/service/models/orderid"
	"github.com/easyorganic/order-svc/internal/service/models/stats"
)

func rangeSQL(t *testing.T, dr stats.DateRange) (string, []any) {
	t.Helper()

	builder := applyDateRange(psql.Select("COUNT(*)").From("orders"), dr)
	query, args, err := builder.ToSql()
	require.NoError(t, err)

	return query, args
}

func TestApplyDateRangeStartOnly(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	query, args := rangeSQL(t, stats.DateRange{Start: start})

	require.Contains(t, query, "created_at >= $1")
	require.NotContains(t, query, "created_at <=")
	require.Equal(t, []any{start}, args)
}

func TestApplyDateRangeEndOnly(t *testing.T) {
	t.Parallel()

	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	query, args := rangeSQL(t, stats.DateRange{End: end})

	require.Contains(t, query, "created_at <= $1")
	require.NotContains(t, query, "created_at >=")
	require.Equal(t, []any{end}, args)
}

func TestApplyDateRangeBothBounds(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	query, args := rangeSQL(t, stats.DateRange{Start: start, End: end})

	require.Contains(t, query, "created_at >= $1")
	require.Contains(t, query, "created_at <= $2")
	require.Equal(t, []any{start, end}, args)
}

func TestApplyDateRangeZeroRangeAddsNoBounds(t *testing.T) {
	t.Parallel()

	query, args := rangeSQL(t, stats.DateRange{})

	require.NotContains(t, query, "created_at")
	require.Empty(t, args)
}

func TestOrderDalToModelRejectsMalformedHumanID(t *testing.T) {
	t.Parallel()

	dal := OrderDal{
		Id:            1,
		HumanId:       "ORDER-1",
		Status:        "Pending",
		PaymentMethod: "Card",
		CreatedAt:     time.Now(),
	}

	_, err := dal.ToModel()
	require.ErrorIs(t, err, orderid.ErrMalformedID)
}

func TestOrderDalToModelAcceptsStoredOrder(t *testing.T) {
	t.Parallel()

	dal := OrderDal{
		Id:            1,
		HumanId:       "#A0042",
		Status:        "Processing",
		PaymentMethod: "COD",
		CreatedAt:     time.Now(),
	}

	o, err := dal.ToModel()
	require.NoError(t, err)
	require.Equal(t, "#A0042", o.HumanID)
}

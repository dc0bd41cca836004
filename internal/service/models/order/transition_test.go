package order

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStockDirectionForDecrementsOnProcessing(t *testing.T) {
	t.Parallel()

	require.Equal(t, StockDecrement, StockDirectionFor(StatusPending, StatusProcessing))
}

func TestStockDirectionForIncrementsOnRevert(t *testing.T) {
	t.Parallel()

	require.Equal(t, StockIncrement, StockDirectionFor(StatusProcessing, StatusPending))
}

func TestStockDirectionForIncrementsOnCancel(t *testing.T) {
	t.Parallel()

	require.Equal(t, StockIncrement, StockDirectionFor(StatusPending, StatusCancelled))
	require.Equal(t, StockIncrement, StockDirectionFor(StatusProcessing, StatusCancelled))
}

func TestStockDirectionForKeepsStockOnceShipped(t *testing.T) {
	t.Parallel()

	// Stock left the warehouse with the parcel; cancelling a shipped order
	// must not restock anything.
	for _, from := range []Status{StatusShipped, StatusOutForDelivery, StatusDelivered} {
		require.Equal(t, StockKeep, StockDirectionFor(from, StatusCancelled), "from %s", from)
	}
}

func TestStockDirectionForSameStatusIsNoop(t *testing.T) {
	t.Parallel()

	all := []Status{
		StatusPending,
		StatusProcessing,
		StatusShipped,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
	}
	for _, s := range all {
		require.Equal(t, StockKeep, StockDirectionFor(s, s), "from %s to itself", s)
	}
}

func TestStockDirectionForForwardFulfilment(t *testing.T) {
	t.Parallel()

	// Stock was already decremented when the order entered Processing;
	// moving further along the fulfilment chain changes nothing.
	require.Equal(t, StockKeep, StockDirectionFor(StatusProcessing, StatusShipped))
	require.Equal(t, StockKeep, StockDirectionFor(StatusShipped, StatusOutForDelivery))
	require.Equal(t, StockKeep, StockDirectionFor(StatusOutForDelivery, StatusDelivered))
	require.Equal(t, StockKeep, StockDirectionFor(StatusPending, StatusShipped))
	require.Equal(t, StockKeep, StockDirectionFor(StatusPending, StatusDelivered))
}

func TestStockDirectionNetsToZeroOverRoundTrip(t *testing.T) {
	t.Parallel()

	// Pending -> Processing -> Pending must leave stock exactly where it
	// started.
	sum := int(StockDirectionFor(StatusPending, StatusProcessing)) +
		int(StockDirectionFor(StatusProcessing, StatusPending))
	require.Zero(t, sum)

	// As must decrement followed by cancel.
	sum = int(StockDirectionFor(StatusPending, StatusProcessing)) +
		int(StockDirectionFor(StatusProcessing, StatusCancelled))
	require.Zero(t, sum)
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"Pending", "Processing", "Shipped", "Out for Delivery", "Delivered", "Cancelled"} {
		s, err := ParseStatus(raw)
		require.NoError(t, err)
		require.Equal(t, raw, s.String())
	}

	_, err := ParseStatus("pending")
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("Refunded")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	require.True(t, StatusDelivered.Terminal())
	require.True(t, StatusCancelled.Terminal())
	require.False(t, StatusPending.Terminal())
	require.False(t, StatusShipped.Terminal())
}

// Package stockledger applies an order's quantities to product variation
// stock as signed deltas. It is the only code path allowed to mutate stock;
// callers hand it the transaction-bound product repository so the adjustment
// commits or fails together with the status change that triggered it.
package stockledger

import (
	"context"
	"fmt"

	"github.com/easyorganic/order-svc/internal/dal/interfaces/iproductrepo"
	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/service/models/orderitem"
)

// Apply walks every line item and adjusts the stock of its (product,
// variation) pair by direction × quantity. A StockKeep direction is a no-op.
// The first failing item aborts; the caller's transaction rollback undoes any
// deltas already applied.
func Apply(
	ctx context.Context,
	repo iproductrepo.IProductRepository,
	items []orderitem.OrderItem,
	direction order.StockDirection,
) error {
	if direction == order.StockKeep {
		return nil
	}

	for _, item := range items {
		delta := int(direction) * item.Quantity
		if err := repo.AdjustVariationStock(ctx, item.ProductID, item.Variation, delta); err != nil {
			return fmt.Errorf("adjust stock for product %d: %w", item.ProductID, err)
		}
	}

	return nil
}

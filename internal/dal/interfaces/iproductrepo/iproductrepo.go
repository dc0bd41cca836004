package iproductrepo

import (
	"context"

	"github.com/easyorganic/order-svc/internal/service/models/product"
)

// IProductRepository is the interface for the product postgres repository.
// AdjustVariationStock is the only stock mutation path in the system.
type IProductRepository interface {
	// AdjustVariationStock applies a signed delta to one variation's stock
	// and recomputes the product's total stock and status label. A delta
	// that would push stock negative fails with product.ErrInsufficientStock
	// and leaves the row untouched.
	AdjustVariationStock(ctx context.Context, productID int64, variation string, delta int) error

	// GetByID loads a product with its variations.
	GetByID(ctx context.Context, id int64) (*product.Product, error)

	// Count returns the number of products in the catalog.
	Count(ctx context.Context) (int64, error)
}

package product

import (
	"database/sql/driver"
	"time"
)

// StockStatus is the shelf label derived from a product's total stock.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "In Stock"
	StockStatusLowStock   StockStatus = "Low Stock"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

// Thresholds for the derived stock status label.
const lowStockThreshold = 10

func (s StockStatus) String() string {
	return string(s)
}

func (s StockStatus) Value() (driver.Value, error) {
	return s.String(), nil
}

// StatusForStock derives the shelf label from a total stock count:
// >10 In Stock, 1..10 Low Stock, 0 Out of Stock.
func StatusForStock(totalStock int) StockStatus {
	switch {
	case totalStock > lowStockThreshold:
		return StockStatusInStock
	case totalStock > 0:
		return StockStatusLowStock
	default:
		return StockStatusOutOfStock
	}
}

// Variation is one sellable unit of a product (e.g. "500g") with its own
// price, MRP and stock count.
type Variation struct {
	ProductID  int64  `json:"-"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	MrpCents   int64  `json:"mrpCents"`
	Stock      int    `json:"stock"`
}

// Product carries the catalog fields the order subsystem reads plus the
// derived stock aggregate. TotalStock and Status are recomputed whenever any
// variation's stock changes.
type Product struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Variations []Variation `json:"variations"`
	TotalStock int         `json:"totalStock"`
	Status     StockStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// RecomputeAggregates refreshes TotalStock and Status from the variations.
func (p *Product) RecomputeAggregates() {
	total := 0
	for _, v := range p.Variations {
		total += v.Stock
	}
	p.TotalStock = total
	p.Status = StatusForStock(total)
}

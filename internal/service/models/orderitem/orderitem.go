package orderitem

// OrderItem is a line item of an order. Name, variation and price are
// snapshots copied at order-creation time; later product edits never alter
// them.
type OrderItem struct {
	OrderID      int64  `json:"-"`
	ProductID    int64  `json:"productId"`
	Variation    string `json:"variation"`
	ProductName  string `json:"productName"`
	Quantity     int    `json:"quantity"`
	PriceCents   int64  `json:"priceCents"`
	Subscription string `json:"subscription,omitempty"`
}

// LineTotalCents returns price multiplied by quantity for this line.
func (i OrderItem) LineTotalCents() int64 {
	return i.PriceCents * int64(i.Quantity)
}

package order

import (
	"time"

	"github.com/easyorganic/order-svc/internal/service/models/orderitem"
	"github.com/easyorganic/order-svc/internal/service/models/paymentmethod"
)

// Order represents a customer order in the system. The item list, total and
// customer snapshot are frozen at creation time; after that the order is
// mutated only through status transitions.
type Order struct {
	ID            int64                       `json:"-"`
	HumanID       string                      `json:"id"`
	CustomerID    int64                       `json:"customerId"`
	CustomerName  string                      `json:"customerName"`
	CustomerEmail string                      `json:"customerEmail"`
	Items         []orderitem.OrderItem       `json:"items"`
	TotalCents    int64                       `json:"totalCents"`
	Status        Status                      `json:"status"`
	PaymentMethod paymentmethod.PaymentMethod `json:"paymentMethod"`
	TransactionID string                      `json:"transactionId"`
	Address       Address                     `json:"address"`
	StatusHistory []StatusEvent               `json:"statusHistory"`
	CreatedAt     time.Time                   `json:"createdAt"`
}

// Address is the shipping address captured at checkout.
type Address struct {
	FullName string       `json:"fullName"`
	Street   string       `json:"street"`
	City     string       `json:"city"`
	State    string       `json:"state"`
	Zip      string       `json:"zip"`
	Country  string       `json:"country"`
	Phone    string       `json:"phone"`
	Location *GeoLocation `json:"location,omitempty"`
}

// GeoLocation is an optional delivery coordinate pair.
type GeoLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StatusEvent is one entry of the append-only status history.
type StatusEvent struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

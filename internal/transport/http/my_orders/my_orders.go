package myorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/transport/http/auth"
	"github.com/easyorganic/order-svc/internal/transport/http/httperr"
)

type service interface {
	GetOrdersByCustomer(ctx context.Context, customerID int64) ([]order.Order, error)
}

// MyOrders returns the calling customer's own orders newest-first.
func MyOrders(w http.ResponseWriter, r *http.Request, service service) {
	who, _ := auth.FromContext(r.Context())

	orders, err := service.GetOrdersByCustomer(r.Context(), who.UserID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting customer orders", "customer_id", who.UserID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

package cancelorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/easyorganic/order-svc/internal/service/models/identity"
	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/transport/http/auth"
	"github.com/easyorganic/order-svc/internal/transport/http/httperr"
)

type service interface {
	CancelOrder(ctx context.Context, who identity.Identity, humanID string) (*order.Order, error)
}

type cancelOrderResponse struct {
	Message string       `json:"message"`
	Order   *order.Order `json:"order"`
}

// CancelOrder is the customer-facing cancel. Only the owner may cancel and
// only while the order is still Pending.
func CancelOrder(w http.ResponseWriter, r *http.Request, service service) {
	who, _ := auth.FromContext(r.Context())

	humanID, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Malformed order id")

		return
	}

	o, err := service.CancelOrder(r.Context(), who, humanID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error cancelling order", "order_id", humanID, "customer_id", who.UserID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cancelOrderResponse{
		Message: "Order cancelled successfully",
		Order:   o,
	}); err != nil {
		slog.Error("Error sending response", "order_id", humanID, "error", err)
	}
}

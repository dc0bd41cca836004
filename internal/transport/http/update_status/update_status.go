package updatestatus

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
	UpdateStatus(ctx context.Context, who identity.Identity, humanID string, status order.Status, notes string) (*order.Order, error)
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type updateStatusResponse struct {
	Message string       `json:"message"`
	Order   *order.Order `json:"order"`
}

// UpdateStatus moves an order to the requested status. Admin only.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	who, _ := auth.FromContext(r.Context())

	humanID, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Malformed order id")

		return
	}

	req := updateStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for update status", "error", err)

		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	o, err := service.UpdateStatus(r.Context(), who, humanID, status, req.Notes)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error updating order status", "order_id", humanID, "status", status, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updateStatusResponse{
		Message: "Order status updated",
		Order:   o,
	}); err != nil {
		slog.Error("Error sending response", "order_id", humanID, "error", err)
	}
}

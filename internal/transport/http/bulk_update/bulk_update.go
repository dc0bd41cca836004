package bulkupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/easyorganic/order-svc/internal/service/models/identity"
	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/transport/http/auth"
	"github.com/easyorganic/order-svc/internal/transport/http/httperr"
)

type service interface {
	BulkUpdateStatus(ctx context.Context, who identity.Identity, humanIDs []string, status order.Status) (int, error)
}

type bulkUpdateRequest struct {
	OrderIds []string `json:"orderIds"`
	Status   string   `json:"status"`
}

type bulkUpdateResponse struct {
	Message string `json:"message"`
}

// BulkUpdate applies one target status to a set of orders. Orders that fail
// are skipped and the count reflects only the ones that went through.
func BulkUpdate(w http.ResponseWriter, r *http.Request, service service) {
	who, _ := auth.FromContext(r.Context())

	req := bulkUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for bulk update", "error", err)

		return
	}

	if len(req.OrderIds) == 0 || req.Status == "" {
		httperr.WriteMessage(w, http.StatusBadRequest, "Order IDs and status are required")

		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	updated, err := service.BulkUpdateStatus(r.Context(), who, req.OrderIds, status)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error bulk updating orders", "count", len(req.OrderIds), "status", status, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(bulkUpdateResponse{
		Message: fmt.Sprintf("%d orders updated successfully.", updated),
	}); err != nil {
		slog.Error("Error sending response for bulk update", "error", err)
	}
}

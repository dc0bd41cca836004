package getorder

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
	GetOrderByHumanID(ctx context.Context, who identity.Identity, humanID string) (*order.Order, error)
}

// GetOrder returns a single order by its display ID. The ID arrives
// percent-encoded because of the "#" prefix.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	who, _ := auth.FromContext(r.Context())

	humanID, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Malformed order id")

		return
	}

	o, err := service.GetOrderByHumanID(r.Context(), who, humanID)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.Error("Error sending response", "order_id", humanID, "error", err)
	}
}

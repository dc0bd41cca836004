package getstats

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/easyorganic/order-svc/internal/service/models/stats"
	"github.com/easyorganic/order-svc/internal/transport/http/httperr"
)

type service interface {
	Snapshot(ctx context.Context, dr stats.DateRange) (stats.DashboardStats, error)
}

const dateLayout = "2006-01-02"

// GetStats returns the dashboard snapshot, optionally constrained to a
// startDate/endDate window. The end date is inclusive through end of day.
func GetStats(w http.ResponseWriter, r *http.Request, service service) {
	dr := stats.DateRange{}

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			httperr.WriteMessage(w, http.StatusBadRequest, "Invalid startDate")

			return
		}
		dr.Start = start
	}

	if raw := r.URL.Query().Get("endDate"); raw != "" {
		end, err := time.Parse(dateLayout, raw)
		if err != nil {
			httperr.WriteMessage(w, http.StatusBadRequest, "Invalid endDate")

			return
		}
		dr.End = end.Add(24*time.Hour - time.Nanosecond)
	}

	snapshot, err := service.Snapshot(r.Context(), dr)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error computing dashboard stats", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		slog.Error("Error sending response for dashboard stats", "error", err)
	}
}

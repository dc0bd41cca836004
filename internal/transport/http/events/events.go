package events

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/easyorganic/order-svc/internal/notify"
	"github.com/easyorganic/order-svc/internal/transport/http/httperr"
)

// Stream serves the live event feed over Server-Sent Events. Delivery is
// at-most-once: subscribers joining late get no backlog, and a client that
// cannot keep up has events dropped rather than blocking the publishers.
func Stream(w http.ResponseWriter, r *http.Request, hub *notify.Hub) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httperr.WriteMessage(w, http.StatusInternalServerError, "Streaming unsupported")

		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case envelope, ok := <-ch:
			if !ok {
				return
			}

			data, err := json.Marshal(envelope)
			if err != nil {
				slog.Error("Error marshalling event envelope", "event", envelope.Event, "error", err)

				continue
			}

			if _, err := w.Write([]byte("event: " + envelope.Event + "\ndata: " + string(data) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

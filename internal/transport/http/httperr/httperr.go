// Package httperr maps domain errors onto the JSON error surface: a short
// {"message": ...} body plus the status code callers rely on.
package httperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/service/models/product"
)

type errorResponse struct {
	Message string `json:"message"`
}

// Write encodes err as a JSON error response with the matching status code.
func Write(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Server Error"

	switch {
	case errors.Is(err, order.ErrNotFound):
		status = http.StatusNotFound
		message = "Order not found"
	case errors.Is(err, order.ErrNotAuthorized):
		status = http.StatusUnauthorized
		message = "Not authorized to view this order"
	case errors.Is(err, order.ErrNotCancellable):
		status = http.StatusBadRequest
		message = "This order cannot be cancelled as it is already being processed."
	case errors.Is(err, order.ErrNoItems):
		status = http.StatusBadRequest
		message = "No order items"
	case errors.Is(err, order.ErrTotalMismatch), errors.Is(err, order.ErrInvalidStatus):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, product.ErrInsufficientStock):
		status = http.StatusConflict
		message = "Insufficient stock for one or more items"
	case errors.Is(err, product.ErrVariationNotFound):
		status = http.StatusBadRequest
		message = err.Error()
	}

	WriteMessage(w, status, message)
}

// WriteMessage encodes a bare {"message": ...} response.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Message: message}); err != nil {
		slog.Error("Error writing error response", "error", err)
	}
}

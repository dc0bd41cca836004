package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/easyorganic/order-svc/internal/service/models/identity"
	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/service/models/orderitem"
	"github.com/easyorganic/order-svc/internal/service/models/paymentmethod"
	"github.com/easyorganic/order-svc/internal/service/services/ordersvc"
	"github.com/easyorganic/order-svc/internal/transport/http/auth"
	"github.com/easyorganic/order-svc/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, who identity.Identity, model ordersvc.CreateOrderModel) (order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID    int64  `json:"productId"    validate:"gt=0"`
	Variation    string `json:"variation"    validate:"required"`
	ProductName  string `json:"productName"  validate:"required"`
	Quantity     int    `json:"quantity"     validate:"gt=0"`
	PriceCents   int64  `json:"priceCents"   validate:"gte=0"`
	Subscription string `json:"subscription"`
}

func (r *itemInCreateOrderRequest) toModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		ProductID:    r.ProductID,
		Variation:    r.Variation,
		ProductName:  r.ProductName,
		Quantity:     r.Quantity,
		PriceCents:   r.PriceCents,
		Subscription: r.Subscription,
	}
}

// locationInCreateOrderRequest is the optional delivery coordinate pair.
type locationInCreateOrderRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// addressInCreateOrderRequest represents the shipping address in a create
// order request.
type addressInCreateOrderRequest struct {
	FullName string                        `json:"fullName" validate:"required"`
	Street   string                        `json:"street"   validate:"required"`
	City     string                        `json:"city"     validate:"required"`
	State    string                        `json:"state"`
	Zip      string                        `json:"zip"      validate:"required"`
	Country  string                        `json:"country"  validate:"required"`
	Phone    string                        `json:"phone"`
	Location *locationInCreateOrderRequest `json:"location"`
}

func (r *addressInCreateOrderRequest) toModel() order.Address {
	addr := order.Address{
		FullName: r.FullName,
		Street:   r.Street,
		City:     r.City,
		State:    r.State,
		Zip:      r.Zip,
		Country:  r.Country,
		Phone:    r.Phone,
	}
	if r.Location != nil {
		addr.Location = &order.GeoLocation{Lat: r.Location.Lat, Lng: r.Location.Lng}
	}

	return addr
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	Items         []itemInCreateOrderRequest  `json:"items"         validate:"required,min=1,dive"`
	TotalCents    int64                       `json:"totalCents"    validate:"gt=0"`
	PaymentMethod string                      `json:"paymentMethod" validate:"required"`
	Address       addressInCreateOrderRequest `json:"address"       validate:"required"`
	TransactionID string                      `json:"transactionId"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *createOrderRequest) toModel() (ordersvc.CreateOrderModel, error) {
	method, err := paymentmethod.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return ordersvc.CreateOrderModel{}, err
	}

	items := make([]orderitem.OrderItem, len(r.Items))
	for i := range r.Items {
		items[i] = r.Items[i].toModel()
	}

	return ordersvc.CreateOrderModel{
		Items:         items,
		TotalCents:    r.TotalCents,
		PaymentMethod: method,
		Address:       r.Address.toModel(),
		TransactionID: r.TransactionID,
	}, nil
}

type createOrderResponse struct {
	Message string      `json:"message"`
	Order   order.Order `json:"order"`
}

// CreateOrder handles the order placement request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	who, _ := auth.FromContext(r.Context())

	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if len(req.Items) == 0 {
		httperr.Write(w, order.ErrNoItems)

		return
	}

	if err := req.Validate(); err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, err.Error())
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	model, err := req.toModel()
	if err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, err.Error())

		return
	}

	created, err := service.CreateOrder(r.Context(), who, model)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating order", "customer_id", who.UserID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(createOrderResponse{
		Message: "Order placed successfully",
		Order:   created,
	}); err != nil {
		slog.Error("Error sending response for create order", "error", err)
	}
}

package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/easyorganic/order-svc/internal/notify"
	"github.com/easyorganic/order-svc/internal/service/models/identity"
	"github.com/easyorganic/order-svc/internal/service/models/order"
	"github.com/easyorganic/order-svc/internal/service/models/stats"
	"github.com/easyorganic/order-svc/internal/service/services/ordersvc"
	"github.com/easyorganic/order-svc/internal/transport/http/auth"
	bulkupdate "github.com/easyorganic/order-svc/internal/transport/http/bulk_update"
	cancelorder "github.com/easyorganic/order-svc/internal/transport/http/cancel_order"
	createorder "github.com/easyorganic/order-svc/internal/transport/http/create_order"
	"github.com/easyorganic/order-svc/internal/transport/http/events"
	getorder "github.com/easyorganic/order-svc/internal/transport/http/get_order"
	getstats "github.com/easyorganic/order-svc/internal/transport/http/get_stats"
	listorders "github.com/easyorganic/order-svc/internal/transport/http/list_orders"
	myorders "github.com/easyorganic/order-svc/internal/transport/http/my_orders"
	updatestatus "github.com/easyorganic/order-svc/internal/transport/http/update_status"
	"github.com/easyorganic/order-svc/pkg/http/middleware/trace"
	"github.com/easyorganic/order-svc/pkg/logger"
)

type service interface {
	CreateOrder(ctx context.Context, who identity.Identity, model ordersvc.CreateOrderModel) (order.Order, error)
	GetAllOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	GetOrderByHumanID(ctx context.Context, who identity.Identity, humanID string) (*order.Order, error)
	GetOrdersByCustomer(ctx context.Context, customerID int64) ([]order.Order, error)
	UpdateStatus(ctx context.Context, who identity.Identity, humanID string, status order.Status, notes string) (*order.Order, error)
	CancelOrder(ctx context.Context, who identity.Identity, humanID string) (*order.Order, error)
	BulkUpdateStatus(ctx context.Context, who identity.Identity, humanIDs []string, status order.Status) (int, error)
}

type statsService interface {
	Snapshot(ctx context.Context, dr stats.DateRange) (stats.DashboardStats, error)
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	service  service
	statsSvc statsService
	hub      *notify.Hub
}

func NewHTTPTransport(service service, statsSvc statsService, hub *notify.Hub) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:   server,
		router:   router,
		service:  service,
		statsSvc: statsSvc,
		hub:      hub,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport. Static segments
// are mounted before the "{id}" routes so "myorders" and
// "bulk-update-status" never match as an order id.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/", h.createOrder)
			r.Get("/myorders", h.myOrders)
			r.Get("/{id}", h.getOrder)
			r.Post("/{id}/cancel", h.cancelOrder)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)

				r.Get("/", h.listOrders)
				r.Put("/bulk-update-status", h.bulkUpdate)
				r.Put("/{id}/status", h.updateStatus)
			})
		})

		r.With(auth.Middleware, auth.RequireAdmin).Get("/dashboard/stats", h.getStats)

		r.Get("/events", h.events)
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service)
}

func (h *HTTPTransport) myOrders(w http.ResponseWriter, r *http.Request) {
	myorders.MyOrders(w, r, h.service)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.service)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.CancelOrder(w, r, h.service)
}

func (h *HTTPTransport) bulkUpdate(w http.ResponseWriter, r *http.Request) {
	bulkupdate.BulkUpdate(w, r, h.service)
}

func (h *HTTPTransport) getStats(w http.ResponseWriter, r *http.Request) {
	getstats.GetStats(w, r, h.statsSvc)
}

func (h *HTTPTransport) events(w http.ResponseWriter, r *http.Request) {
	events.Stream(w, r, h.hub)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}

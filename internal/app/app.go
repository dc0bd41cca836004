package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/easyorganic/order-svc/internal/dal/postgres"
	"github.com/easyorganic/order-svc/internal/dal/rabbitmq"
	activityrepo "github.com/easyorganic/order-svc/internal/dal/repositories/activity/postgres"
	orderrepo "github.com/easyorganic/order-svc/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/easyorganic/order-svc/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/easyorganic/order-svc/internal/dal/repositories/product/postgres"
	"github.com/easyorganic/order-svc/internal/notify"
	"github.com/easyorganic/order-svc/internal/otel"
	"github.com/easyorganic/order-svc/internal/service/services/ordersvc"
	"github.com/easyorganic/order-svc/internal/service/services/statssvc"
	httptransport "github.com/easyorganic/order-svc/internal/transport/http"
	outboxworker "github.com/easyorganic/order-svc/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	statsSvc       *statssvc.StatsService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	otelController *otel.OtelController
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	pool := postgresClient.Pool()
	outboxRepo := outboxrepo.NewPostgresOutboxRepository(pool)

	hub := notify.NewHub()
	amqpSink, err := notify.NewAMQPSink(
		rabbitClient,
		outboxRepo,
		viper.GetString("rabbitmq.notifications.exchange"),
		viper.GetInt("rabbitmq.notifications.max_retries"),
	)
	if err != nil {
		panic("failed to declare notifications exchange: " + err.Error())
	}

	statsSvc := statssvc.MustNewStatsService(
		statssvc.WithOrderRepository(orderrepo.NewPostgresOrderRepository(pool)),
		statssvc.WithProductRepository(productrepo.NewPostgresProductRepository(pool)),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithNotifier(notify.MultiSink{hub, amqpSink}),
		ordersvc.WithStatsProvider(statsSvc),
		ordersvc.WithActivityRepository(activityrepo.NewPostgresActivityRepository(pool)),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, statsSvc, hub)
	transport.RegisterRoutes()

	worker := outboxworker.NewWorker(outboxRepo, rabbitClient)

	return &App{
		orderSvc:       orderSvc,
		statsSvc:       statsSvc,
		transport:      transport,
		outboxWorker:   worker,
		otelController: otelController,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}

package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhinav28birajdar/TownTap-sub006/internal/dal/postgres"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/dal/rabbitmq"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/dal/repositories/audit"
	orderrepo "github.com/abhinav28birajdar/TownTap-sub006/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/abhinav28birajdar/TownTap-sub006/internal/dal/repositories/outbox/postgres"
	workerrepo "github.com/abhinav28birajdar/TownTap-sub006/internal/dal/repositories/worker/postgres"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/otel"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/services/dispatchsvc"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/services/orderstore"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/services/queueview"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/service/services/workerpool"
	httptransport "github.com/abhinav28birajdar/TownTap-sub006/internal/transport/http"
	outboxworker "github.com/abhinav28birajdar/TownTap-sub006/internal/worker/outbox"
	"github.com/abhinav28birajdar/TownTap-sub006/pkg/metrics"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// App represents the application.
type App struct {
	orderStore     *orderstore.OrderStore
	workerPool     *workerpool.WorkerPool
	dispatchSvc    *dispatchsvc.DispatchService
	queueView      *queueview.QueueView
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	orderRepo := orderrepo.NewPostgresOrderRepository(postgresClient)
	workerRepo := workerrepo.NewPostgresWorkerRepository(postgresClient)
	outboxRepo := outboxrepo.NewOutboxRepository(postgresClient)
	auditRepo := audit.NewAuditRabbitMQRepository(rabbitClient, outboxRepo)

	orderStore := orderstore.MustNewOrderStore(
		orderstore.WithJournal(orderRepo),
	)
	workerPool := workerpool.MustNewWorkerPool(
		workerpool.WithJournal(workerRepo),
	)

	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := orderStore.Load(loadCtx); err != nil {
		panic(err)
	}
	if err := workerPool.Load(loadCtx); err != nil {
		panic(err)
	}

	dispatchSvc := dispatchsvc.MustNewDispatchService(
		dispatchsvc.WithOrderStore(orderStore),
		dispatchsvc.WithWorkerPool(workerPool),
		dispatchsvc.WithAuditor(auditRepo),
		dispatchsvc.WithMetrics(metrics.NewDispatchMetrics("dispatch")),
		dispatchsvc.WithStrictSkills(viper.GetBool("dispatch.strict_skills")),
	)
	queueView := queueview.NewQueueView(orderStore)

	transport := httptransport.NewHTTPTransport(
		orderStore,
		dispatchSvc,
		queueView,
		workerPool,
		metrics.NewServerMetrics("dispatch"),
	)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.NewWorker(outboxRepo, rabbitClient)

	return &App{
		orderStore:     orderStore,
		workerPool:     workerPool,
		dispatchSvc:    dispatchSvc,
		queueView:      queueView,
		transport:      transport,
		outboxWorker:   outboxWorker,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		a.outboxWorker.Start(gctx)
		return nil
	})

	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	slog.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.transport.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancel()
	if err := g.Wait(); err != nil {
		slog.Error("Background worker error", "error", err)
	}

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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/timour/delivery-service/internal/broker"
	"github.com/timour/delivery-service/internal/directory"
	"github.com/timour/delivery-service/internal/discovery"
	"github.com/timour/delivery-service/internal/discovery/consul"
	"github.com/timour/delivery-service/internal/dispatcher"
	"github.com/timour/delivery-service/internal/logger"
	"github.com/timour/delivery-service/internal/metrics"
	"github.com/timour/delivery-service/internal/rpc"
	"github.com/timour/delivery-service/internal/statuscache"
	"github.com/timour/delivery-service/internal/store"
)

// App bundles every long-lived collaborator bootstrap establishes, the way
// orders/app.go's App struct does for the orders service — collapsed into
// one process here since the delivery service owns both the RPC server and
// the Event Dispatcher (spec.md §2 "Control flow").
type App struct {
	config Config
	logger *slog.Logger

	registry     discovery.Registry
	registration *ServiceRegistration

	grpcServer    *grpc.Server
	healthServer  *health.Server
	metricsServer *http.Server

	bus          *broker.Bus
	closeBus     func() error
	store        *store.Store
	statusCache  *statuscache.Cache
	customerConn *grpc.ClientConn
	merchantConn *grpc.ClientConn

	dispatcher *dispatcher.Dispatcher

	grpcMetrics     *metrics.GRPCMetrics
	businessMetrics *metrics.BusinessMetrics
}

// NewApp establishes the broker connection, the Store pool, the Status
// Cache client, and the two Directory Clients with bounded retry
// (spec.md §2 "Control flow"). Any connection-establishment failure here is
// allowed to reach main, which is the only place permitted to exit the
// process (spec.md §7 "Propagation policy").
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	log := logger.New(cfg.ServiceName)

	registry, err := createRegistry(cfg.ConsulAddr, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create service registry: %w", err)
	}

	log.Info("connecting to rabbitmq", slog.String("host", cfg.AMQPHost))
	bus, closeBus, err := broker.Connect(cfg.AMQPUser, cfg.AMQPPass, cfg.AMQPHost, cfg.AMQPPort, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	log.Info("connecting to postgres")
	st, err := store.New(cfg.DatabaseURL)
	if err != nil {
		closeBus()
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	log.Info("connecting to redis", slog.String("addr", cfg.RedisURL))
	statusCache, err := statuscache.New(cfg.RedisURL)
	if err != nil {
		closeBus()
		st.Close()
		return nil, fmt.Errorf("failed to connect to status cache: %w", err)
	}

	log.Info("dialing customer directory", slog.String("uri", cfg.CustomerURI))
	customerConn, err := directory.DialWithRetry(ctx, cfg.CustomerURI)
	if err != nil {
		closeBus()
		st.Close()
		statusCache.Close()
		return nil, fmt.Errorf("failed to connect to customer service: %w", err)
	}

	log.Info("dialing merchant directory", slog.String("uri", cfg.MerchantURI))
	merchantConn, err := directory.DialWithRetry(ctx, cfg.MerchantURI)
	if err != nil {
		closeBus()
		st.Close()
		statusCache.Close()
		customerConn.Close()
		return nil, fmt.Errorf("failed to connect to merchant service: %w", err)
	}

	grpcMetrics := metrics.NewGRPCMetrics(cfg.ServiceName)
	businessMetrics := metrics.NewBusinessMetrics(cfg.ServiceName)
	healthServer := health.NewServer()

	return &App{
		config:       cfg,
		logger:       log,
		registry:     registry,
		grpcServer:   grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler())),
		healthServer: healthServer,
		bus:          bus,
		closeBus:     closeBus,
		store:        st,
		statusCache:  statusCache,
		customerConn: customerConn,
		merchantConn: merchantConn,

		dispatcher: dispatcher.New(bus, log, cfg.DispatcherConcurrency),

		grpcMetrics:     grpcMetrics,
		businessMetrics: businessMetrics,
	}, nil
}

// Start registers the service with discovery, wires the RPC Surface and the
// Event Dispatcher's handler registry, and runs the RPC server, the metrics
// server, and the dispatcher concurrently until ctx is canceled
// (spec.md §2 "Control flow", §5 "Scheduling").
func (a *App) Start(ctx context.Context) error {
	if a.registry != nil {
		registration, err := RegisterService(ctx, a.registry, a.config.InstanceID, a.config.ServiceName, a.config.GRPCAddr)
		if err != nil {
			return err
		}
		a.registration = registration
	}

	handler := &rpc.Handler{
		Store:    a.store,
		Status:   a.statusCache,
		Bus:      a.bus,
		Customer: directory.NewCustomerClient(a.customerConn),
		Merchant: directory.NewMerchantClient(a.merchantConn),
		Logger:   a.logger,
		Business: a.businessMetrics,
	}
	rpc.Register(a.grpcServer, handler)

	healthpb.RegisterHealthServer(a.grpcServer, a.healthServer)
	a.healthServer.SetServingStatus(a.config.ServiceName, healthpb.HealthCheckResponse_SERVING)

	handlers := &dispatcher.Handlers{
		Store:    a.store,
		Status:   a.statusCache,
		Bus:      a.bus,
		Notifier: &dispatcher.LogNotifier{Logger: a.logger},
		Logger:   a.logger,
		Business: a.businessMetrics,
	}
	a.dispatcher.Register(broker.RoutingKeyOrderPlaced, broker.RoutingKeyOrderPlaced, handlers.OrderPlaced)
	a.dispatcher.Register(broker.RoutingKeyRiderCreated, broker.RoutingKeyRiderCreated, handlers.RiderCreated)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	a.metricsServer = &http.Server{Addr: a.config.MetricsAddr, Handler: metricsMux}
	go func() {
		a.logger.Info("starting metrics server", slog.String("addr", a.config.MetricsAddr))
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("metrics server error", slog.Any("error", err))
		}
	}()

	go func() {
		if err := a.dispatcher.Run(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error("dispatcher stopped unexpectedly", slog.Any("error", err))
		}
	}()

	lis, err := net.Listen("tcp", a.config.GRPCAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.config.GRPCAddr, err)
	}

	a.logger.Info("starting grpc server", slog.String("addr", a.config.GRPCAddr))
	return a.grpcServer.Serve(lis)
}

// Shutdown stops the RPC server and the dispatcher's consumer loops,
// allowing in-flight handlers to finish or fail (they redeliver), then
// closes every shared resource (spec.md §5 "Cancellation and timeouts").
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down gracefully")

	if a.healthServer != nil {
		a.healthServer.SetServingStatus(a.config.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	}
	a.grpcServer.GracefulStop()

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.logger.Error("error shutting down metrics server", slog.Any("error", err))
		}
	}

	if a.closeBus != nil {
		if err := a.closeBus(); err != nil {
			a.logger.Error("error closing rabbitmq", slog.Any("error", err))
		}
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing store", slog.Any("error", err))
	}
	if err := a.statusCache.Close(); err != nil {
		a.logger.Error("error closing status cache", slog.Any("error", err))
	}
	if a.customerConn != nil {
		a.customerConn.Close()
	}
	if a.merchantConn != nil {
		a.merchantConn.Close()
	}

	if a.registration != nil {
		return a.registration.Deregister(ctx)
	}
	return nil
}

func createRegistry(addr string, log *slog.Logger) (discovery.Registry, error) {
	if addr == "" {
		log.Info("consul address not provided, service discovery disabled")
		return nil, nil
	}
	return consul.NewRegistry(addr)
}

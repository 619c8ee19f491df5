package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bancacore/cuenta-ledger/internal/application/usecase"
	"github.com/bancacore/cuenta-ledger/internal/domain/port"
	"github.com/bancacore/cuenta-ledger/internal/infrastructure/config"
	"github.com/bancacore/cuenta-ledger/internal/infrastructure/identity"
	infraKafka "github.com/bancacore/cuenta-ledger/internal/infrastructure/kafka"
	infraPostgres "github.com/bancacore/cuenta-ledger/internal/infrastructure/postgres"
	grpcPresentation "github.com/bancacore/cuenta-ledger/internal/presentation/grpc"
	"github.com/bancacore/cuenta-ledger/internal/presentation/rest"
	pkgkafka "github.com/bancacore/cuenta-ledger/pkg/kafka"
	"github.com/bancacore/cuenta-ledger/pkg/observability"
	pgpkg "github.com/bancacore/cuenta-ledger/pkg/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logger.Info("starting cuenta-ledger service")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing is optional; a missing collector must not block startup.
	if cfg.Telemetry.Enabled {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    cfg.Telemetry.Insecure,
		})
		if err != nil {
			logger.Warn("tracing disabled", "error", err)
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdownTracer(shutdownCtx); err != nil {
					logger.Error("failed to shutdown tracer", "error", err)
				}
			}()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown meter provider", "error", err)
		}
	}()

	// Database.
	pgConfig := pgpkg.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	}
	pool, err := pgpkg.NewPool(ctx, pgConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database", "database", cfg.Database.Database)

	if err := pgpkg.RunMigrations(pgConfig.DSN(), "file://internal/infrastructure/postgres/migrations"); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	// Infrastructure adapters.
	accountRepo := infraPostgres.NewAccountRepository(pool)
	movementRepo := infraPostgres.NewMovementRepository(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
	defer kafkaProducer.Close()
	eventPublisher := infraKafka.NewEventPublisher(kafkaProducer, logger)

	var identityClient port.IdentityClient
	if cfg.Identity.BaseURL != "" {
		identityClient = identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.Timeout, logger)
	} else {
		logger.Warn("no identity service configured, using in-memory stub")
		identityClient = identity.NewStub()
	}

	// Use cases.
	createAccountUC := usecase.NewCreateAccount(accountRepo, identityClient, eventPublisher, cfg.Kafka.AccountsTopic, logger)
	getAccountUC := usecase.NewGetAccount(accountRepo, logger)
	listAccountsUC := usecase.NewListAccounts(accountRepo, logger)
	updateAccountUC := usecase.NewUpdateAccount(accountRepo, eventPublisher, cfg.Kafka.AccountsTopic, logger)
	deactivateAccountUC := usecase.NewDeactivateAccount(accountRepo, eventPublisher, cfg.Kafka.AccountsTopic, logger)
	postMovementUC := usecase.NewPostMovement(accountRepo, movementRepo, logger)
	getMovementUC := usecase.NewGetMovement(movementRepo, logger)
	listMovementsUC := usecase.NewListMovements(accountRepo, movementRepo, logger)
	statementUC := usecase.NewGenerateStatement(accountRepo, movementRepo, identityClient, cfg.ReportLocation(), logger)

	// Customer event consumer: deactivations upstream cascade to accounts.
	customerHandler := infraKafka.NewCustomerEventHandler(listAccountsUC, deactivateAccountUC, logger)
	consumer := pkgkafka.NewConsumer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
	}, cfg.Kafka.CustomersTopic, customerHandler.Handle, logger)
	defer consumer.Close()

	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	errCh := make(chan error, 3)

	go func() {
		if err := consumer.Start(consumerCtx); err != nil {
			errCh <- fmt.Errorf("customer consumer error: %w", err)
		}
	}()

	// gRPC server.
	handler := grpcPresentation.NewLedgerHandler(
		createAccountUC,
		getAccountUC,
		listAccountsUC,
		updateAccountUC,
		deactivateAccountUC,
		postMovementUC,
		getMovementUC,
		listMovementsUC,
		statementUC,
	)
	grpcServer := grpcPresentation.NewServer(handler, cfg.ServiceName, cfg.GRPCPort, logger)

	// HTTP operational server: health probes and metrics.
	healthHandler := rest.NewHealthHandler(cfg.ServiceName, map[string]rest.CheckFunc{
		"database": func(ctx context.Context) error {
			return pgpkg.HealthCheck(ctx, pool)
		},
	}, logger)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down servers")

	consumerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	grpcServer.Stop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("cuenta-ledger service stopped")
}

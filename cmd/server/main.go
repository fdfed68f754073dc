package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/bcsbank/restbank/internal/adapter/http"
	"github.com/bcsbank/restbank/internal/adapter/http/handler"
	"github.com/bcsbank/restbank/internal/adapter/http/middleware"
	"github.com/bcsbank/restbank/internal/adapter/repository/memory"
	"github.com/bcsbank/restbank/internal/infrastructure/config"
	"github.com/bcsbank/restbank/internal/infrastructure/eventpublisher"
	"github.com/bcsbank/restbank/internal/infrastructure/logger"
	"github.com/bcsbank/restbank/internal/infrastructure/metrics"
	"github.com/bcsbank/restbank/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zlog := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = zlog

	// Initialize ledger store and repositories
	store := memory.NewStore()
	txManager := memory.NewTxManager(store)
	accountRepo := memory.NewAccountRepository(store)
	transactionRepo := memory.NewTransactionRepository(store)
	ledgerRepo := memory.NewLedgerRepository(store)
	outboxRepo := memory.NewOutboxRepository(store)
	idGen := memory.NewULIDGenerator()

	var idempotencyStore usecase.IdempotencyStore
	var idempotencySweeper *memory.IdempotencyStore
	if cfg.IdempotencyEnabled {
		idempotencySweeper = memory.NewIdempotencyStore()
		idempotencyStore = idempotencySweeper
	}

	// Initialize use cases
	engineUC := usecase.NewTransactionUseCase(txManager, accountRepo, transactionRepo, outboxRepo, idGen)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, outboxRepo, engineUC, idGen)
	statementUC := usecase.NewStatementUseCase(transactionRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	// Initialize metrics and handlers
	m := metrics.New()
	accountHandler := handler.NewAccountHandler(accountUC, m)
	transactionHandler := handler.NewTransactionHandler(engineUC, statementUC, m)
	statementHandler := handler.NewStatementHandler(statementUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		StatementHandler:   statementHandler,
		LedgerHandler:      ledgerHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Logging:            middleware.NewLoggingMiddleware(zlog),
	})

	// Start outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()

	// Housekeeping: evict idle limiters and expired idempotency keys.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-publisherCtx.Done():
				return
			case <-ticker.C:
				if rateLimiter != nil {
					rateLimiter.Cleanup(30 * time.Minute)
				}
				if idempotencySweeper != nil {
					idempotencySweeper.Sweep()
				}
			}
		}
	}()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(slogger),
		Logger:     slogger,
		Metrics:    m,
		BatchSize:  cfg.PublisherBatchSize,
		Interval:   cfg.PublisherInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/atmledger/internal/adapter/http"
	"github.com/iho/atmledger/internal/adapter/http/handler"
	"github.com/iho/atmledger/internal/adapter/http/middleware"
	"github.com/iho/atmledger/internal/adapter/idgen"
	fileRepo "github.com/iho/atmledger/internal/adapter/repository/file"
	memoryRepo "github.com/iho/atmledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/atmledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/atmledger/internal/adapter/repository/redis"
	"github.com/iho/atmledger/internal/infrastructure/config"
	"github.com/iho/atmledger/internal/infrastructure/eventpublisher"
	"github.com/iho/atmledger/internal/infrastructure/logger"
	"github.com/iho/atmledger/internal/infrastructure/metrics"
	"github.com/iho/atmledger/internal/infrastructure/postgres"
	"github.com/iho/atmledger/internal/infrastructure/redis"
	"github.com/iho/atmledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New(logger.Config{Format: "console", Output: os.Stderr})
		bootstrap.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Connect to Redis
	var redisClient *goredis.Client
	if cfg.RedisEnabled() {
		client, err := redis.NewClient(ctx, redis.ClientConfig{URL: cfg.RedisURL})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()
		redisClient = client
		log.Info().Msg("connected to redis")
	}

	store, err := buildStore(ctx, cfg, redisClient)
	if err != nil {
		return err
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("state store ready")

	ledgerMetrics := metrics.New()

	ledger, err := usecase.NewLedgerUseCase(ctx, ledgerConfig(cfg, store, ledgerMetrics, log))
	if err != nil {
		store.Close()
		return fmt.Errorf("failed to open ledger: %w", err)
	}

	account := ledger.GetAccount(ctx)
	ledgerMetrics.SetAccount(account)
	log.Info().
		Str("name", account.Name).
		Str("cash", humanize.Comma(account.Cash)).
		Str("balance", humanize.Comma(account.Balance)).
		Str("total_assets", humanize.Comma(account.TotalAssets())).
		Msg("account loaded")

	// Event publishing runs off the ledger lock
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		Publishers: buildPublishers(cfg, redisClient, log),
		Logger:     log,
	})
	unsubscribe := ledger.Subscribe(publisher.Observer())

	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	publisherDone := make(chan struct{})
	go func() {
		defer close(publisherDone)
		publisher.Start(publisherCtx)
	}()

	healthChecks := []handler.HealthCheck{{Name: "store", Ping: ledger.Ping}}
	var idempotencyStore usecase.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient, cfg.RedisKeyPrefix)
		healthChecks = append(healthChecks, handler.HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	var rateLimiter *middleware.RateLimiter
	cleanupDone := make(chan struct{})
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go rateLimiter.RunCleanup(cleanupDone, time.Minute, 10*time.Minute)
	}
	defer close(cleanupDone)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(ledger),
		LedgerHandler:    handler.NewLedgerHandler(ledger),
		HealthHandler:    handler.NewHealthHandler(healthChecks...),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		Logger:           log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
	case err := <-serverErr:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	unsubscribe()
	stopPublisher()
	<-publisherDone

	// Save on exit
	if err := ledger.Close(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to flush ledger: %w", err))
	}

	log.Info().Msg("server stopped")

	return runErr
}

// buildStore opens the state store selected by cfg.StoreDriver.
// redisClient may be nil unless the driver is redis.
func buildStore(ctx context.Context, cfg *config.Config, redisClient *goredis.Client) (usecase.StateStore, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverFile:
		store, err := fileRepo.NewStateStore(cfg.StateFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open state file: %w", err)
		}
		return store, nil

	case config.StoreDriverRedis:
		if redisClient == nil {
			return nil, errors.New("redis store requires REDIS_URL")
		}
		return redisRepo.NewStateStore(redisClient, cfg.RedisKeyPrefix), nil

	case config.StoreDriverPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}

		return postgresRepo.NewStateStore(pool, postgresRepo.NewRetrier(slog.Default())), nil

	case config.StoreDriverMemory:
		return memoryRepo.NewStateStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func ledgerConfig(cfg *config.Config, store usecase.StateStore, recorder usecase.MetricsRecorder, log zerolog.Logger) usecase.LedgerConfig {
	return usecase.LedgerConfig{
		Store:              store,
		IDGen:              idgen.NewULIDGenerator(),
		Metrics:            recorder,
		Logger:             log.With().Str("component", "ledger").Logger(),
		Defaults:           cfg.DefaultAccount(),
		TransactionLimit:   cfg.MaxTransactionAmount,
		PersistHistory:     cfg.PersistHistory,
		ResetClearsHistory: cfg.ResetClearsHistory,
		QuickAmounts:       cfg.QuickAmounts,
	}
}

func buildPublishers(cfg *config.Config, redisClient *goredis.Client, log zerolog.Logger) []eventpublisher.Publisher {
	publishers := []eventpublisher.Publisher{
		eventpublisher.NewLogPublisher(log.With().Str("component", "events").Logger()),
	}
	if redisClient != nil && cfg.EventsChannel != "" {
		publishers = append(publishers, eventpublisher.NewRedisPublisher(redisClient, cfg.EventsChannel))
	}
	return publishers
}

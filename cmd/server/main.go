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

	"github.com/hashicorp/go-multierror"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"studyai-backend/internal/config"
	"studyai-backend/internal/database"
	"studyai-backend/internal/handlers"
	"studyai-backend/internal/llm"
	"studyai-backend/internal/logger"
	"studyai-backend/internal/middleware"
	"studyai-backend/internal/repository"
	"studyai-backend/internal/router"
	"studyai-backend/internal/services"
	"studyai-backend/internal/topics"
	"studyai-backend/internal/websocket"
	"studyai-backend/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("fatal error", logger.Err(err))
		os.Exit(1)
	}
}

func runMain() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.Options{
		Level:   logger.ParseLevel(cfg.LogLevel),
		NoColor: cfg.Env == "production",
	})))
	slog.Info("configuration loaded", "env", cfg.Env, "provider", cfg.Provider, "model", cfg.Model)

	// ──── Step 2: Optional PostgreSQL exchange log ────
	var (
		pgPool     *pgxpool.Pool
		workerPool *worker.Pool
		exchanges  services.ExchangeSink
	)
	if cfg.DatabaseURL != "" {
		pgPool, err = database.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if err := database.RunMigrations(ctx, pgPool, cfg.MigrationsDir); err != nil {
			pgPool.Close()
			return err
		}
		workerPool = worker.NewPool(repository.NewExchangeRepo(pgPool), cfg.ExchangeWorkers, cfg.ExchangeQueueSize)
		workerPool.Start()
		exchanges = workerPool
		slog.Info("exchange log enabled", "workers", cfg.ExchangeWorkers)
	}

	// ──── Step 3: Optional Redis request counter ────
	var (
		redisClient *redis.Client
		counter     interface {
			services.RequestCounter
			Total(ctx context.Context) (int64, error)
		} = repository.NewMemoryRequestCounter()
	)
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			closeStores(pgPool, nil)
			return err
		}
		counter = repository.NewRedisRequestCounter(redisClient)
		slog.Info("request counter backed by redis")
	}

	// ──── Step 4: Completion provider ────
	provider, closeProvider, err := newProvider(ctx, cfg)
	if err != nil {
		closeStores(pgPool, redisClient)
		return err
	}
	slog.Info("completion provider ready", "provider", provider.Name())

	// ──── Step 5: Services, handlers, router ────
	catalog := topics.Default()
	chat := services.NewChatService(services.ChatConfig{
		Catalog: catalog,
		Model:   cfg.Model,
	}, provider, counter, exchanges)

	limiter := middleware.NewRateLimiter(cfg.ChatRateLimitPerMin, cfg.ChatRateLimitBurst)
	wsHub := websocket.NewHub(chat, cfg.CORSOrigin, limiter)

	handler := router.New(
		handlers.NewChatHandler(chat),
		handlers.NewMetaHandler(catalog, counter, cfg.Model, cfg.ModelMaxTokens),
		wsHub,
		limiter,
		cfg.CORSOrigin,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ProviderTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ──── Step 6: Serve until a signal arrives ────
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("StudyAI server ready", "addr", "http://localhost:"+cfg.Port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var result *multierror.Error
		if err := server.Shutdown(shutdownCtx); err != nil {
			result = multierror.Append(result, fmt.Errorf("http shutdown: %w", err))
		}
		wsHub.Close()
		limiter.Stop()
		if workerPool != nil {
			workerPool.Stop()
		}
		if err := closeProvider(); err != nil {
			result = multierror.Append(result, fmt.Errorf("closing provider: %w", err))
		}
		if err := closeStores(pgPool, redisClient); err != nil {
			result = multierror.Append(result, err)
		}
		return result.ErrorOrNil()
	})

	return g.Wait()
}

func newProvider(ctx context.Context, cfg *config.Config) (llm.Provider, func() error, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := llm.NewGemini(ctx, cfg.APIKey())
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	default:
		c, err := llm.NewCerebras(cfg.APIKey(), cfg.CerebrasBaseURL, cfg.ProviderTimeout)
		if err != nil {
			return nil, nil, err
		}
		return c, func() error { return nil }, nil
	}
}

func closeStores(pgPool *pgxpool.Pool, redisClient *redis.Client) error {
	if pgPool != nil {
		pgPool.Close()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			return fmt.Errorf("closing redis: %w", err)
		}
	}
	return nil
}

package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_ledger/internal/adapters/notify"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/core/services"
	"github.com/SscSPs/expense_ledger/internal/platform/config"
	"github.com/SscSPs/expense_ledger/internal/repositories/cache"
	"github.com/SscSPs/expense_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_ledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App holds the long-lived resources shared by the HTTP server and the job CLI.
type App struct {
	Config   *config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client // nil when REDIS_URL is unset
	Services *portssvc.ServiceContainer
}

// New connects to Postgres (and Redis when configured) and wires every service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			dbPool.Close()
			_ = redisClient.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		logger.Info("Redis connection established.")
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	var cacheOpts []cache.Option
	if redisClient != nil {
		cacheOpts = append(cacheOpts, cache.WithRedisInvalidation(redisClient, cache.DefaultVersionKeyPrefix))
	}
	repos.CurrencyRateRepo = cache.NewCurrencyRateRepository(repos.CurrencyRateRepo, cfg.RateCacheTTL, cacheOpts...)

	var notifier portssvc.Notifier = notify.LogNotifier{}
	if redisClient != nil {
		notifier = notify.NewRedisOutbox(redisClient, cfg.NotifyQueue)
	} else {
		logger.Warn("REDIS_URL not set, mail jobs are only logged")
	}

	return &App{
		Config:   cfg,
		DB:       dbPool,
		Redis:    redisClient,
		Services: services.NewServiceContainer(cfg, repos, notifier),
	}, nil
}

// Close releases the pools.
func (a *App) Close(logger *slog.Logger) {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}
	database.ClosePgxPool(a.DB)
}

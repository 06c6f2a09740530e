package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/vendorconnect/vendorconnect-platform/internal/config"
	"github.com/vendorconnect/vendorconnect-platform/internal/marketplace"
	"github.com/vendorconnect/vendorconnect-platform/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildPostgresPool connects to DATABASE_URL. It returns nil, nil when no URL is configured.
func BuildPostgresPool(ctx context.Context, cfg *appconfig.Config) (*pgxpool.Pool, error) {
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
	}
	return pool, nil
}

// Catalog is the marketplace repository the chatbot reads, plus the cache
// layer in front of it when Redis is configured.
type Catalog struct {
	Repository marketplace.Repository
	Cache      *marketplace.CachedRepository
}

// BuildCatalog picks Postgres when a pool is available and the embedded sample
// catalog otherwise, then adds the Redis read-through cache when redisClient is set.
func BuildCatalog(cfg *appconfig.Config, pool *pgxpool.Pool, redisClient *redis.Client, logger *logging.Logger) (Catalog, error) {
	if cfg == nil {
		return Catalog{}, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	var repo marketplace.Repository
	switch {
	case pool != nil:
		repo = marketplace.NewPostgresRepository(pool)
		logger.Info("marketplace catalog backed by postgres")
	case cfg.SeedSampleData:
		sample, err := marketplace.NewSampleRepository()
		if err != nil {
			return Catalog{}, fmt.Errorf("bootstrap: load sample catalog: %w", err)
		}
		repo = sample
		logger.Info("marketplace catalog backed by sample data")
	default:
		repo = marketplace.NewMemoryRepository(marketplace.Catalog{})
		logger.Warn("no DATABASE_URL and sample data disabled; catalog is empty")
	}

	if redisClient == nil {
		return Catalog{Repository: repo}, nil
	}
	cached := marketplace.NewCachedRepository(repo, redisClient, cfg.CatalogCacheTTL, logger)
	logger.Info("marketplace catalog cache enabled", "ttl", cfg.CatalogCacheTTL)
	return Catalog{Repository: cached, Cache: cached}, nil
}

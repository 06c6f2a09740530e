package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vendorconnect/vendorconnect-platform/pkg/logging"
)

const (
	defaultCatalogTTL = 5 * time.Minute
	catalogKeyPrefix  = "catalog:"
)

// CachedRepository is a read-through Redis cache in front of another Repository.
// Redis failures degrade to the underlying repository.
type CachedRepository struct {
	next   Repository
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
	logger *logging.Logger
}

// NewCachedRepository wraps next. A non-positive ttl uses the default of five minutes.
func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, logger *logging.Logger) *CachedRepository {
	if next == nil {
		panic("marketplace: underlying repository cannot be nil")
	}
	if client == nil {
		panic("marketplace: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CachedRepository{
		next:   next,
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("vendorconnect.internal.marketplace.cache"),
		logger: logger,
	}
}

func (c *CachedRepository) Suppliers(ctx context.Context) ([]Supplier, error) {
	return readThrough(ctx, c, "suppliers:all", func(ctx context.Context) ([]Supplier, error) {
		return c.next.Suppliers(ctx)
	})
}

func (c *CachedRepository) VerifiedSuppliers(ctx context.Context, limit int) ([]Supplier, error) {
	return readThrough(ctx, c, fmt.Sprintf("suppliers:verified:%d", limit), func(ctx context.Context) ([]Supplier, error) {
		return c.next.VerifiedSuppliers(ctx, limit)
	})
}

func (c *CachedRepository) TopVerifiedSuppliers(ctx context.Context, limit int) ([]Supplier, error) {
	return readThrough(ctx, c, fmt.Sprintf("suppliers:top:%d", limit), func(ctx context.Context) ([]Supplier, error) {
		return c.next.TopVerifiedSuppliers(ctx, limit)
	})
}

func (c *CachedRepository) Products(ctx context.Context, limit int) ([]Product, error) {
	return readThrough(ctx, c, fmt.Sprintf("products:all:%d", limit), func(ctx context.Context) ([]Product, error) {
		return c.next.Products(ctx, limit)
	})
}

func (c *CachedRepository) ProductsInCategories(ctx context.Context, categories []string, limit int) ([]Product, error) {
	key := fmt.Sprintf("products:categories:%s:%d", strings.Join(categories, ","), limit)
	return readThrough(ctx, c, key, func(ctx context.Context) ([]Product, error) {
		return c.next.ProductsInCategories(ctx, categories, limit)
	})
}

func (c *CachedRepository) ProductsBySupplier(ctx context.Context, supplierID int64, limit int) ([]Product, error) {
	return readThrough(ctx, c, fmt.Sprintf("products:supplier:%d:%d", supplierID, limit), func(ctx context.Context) ([]Product, error) {
		return c.next.ProductsBySupplier(ctx, supplierID, limit)
	})
}

func (c *CachedRepository) ProductCategories(ctx context.Context, limit int) ([]string, error) {
	return readThrough(ctx, c, fmt.Sprintf("categories:%d", limit), func(ctx context.Context) ([]string, error) {
		return c.next.ProductCategories(ctx, limit)
	})
}

// VendorByID caches found vendors only; ErrVendorNotFound always reaches the
// underlying repository.
func (c *CachedRepository) VendorByID(ctx context.Context, id int64) (*Vendor, error) {
	return readThrough(ctx, c, fmt.Sprintf("vendor:%d", id), func(ctx context.Context) (*Vendor, error) {
		return c.next.VendorByID(ctx, id)
	})
}

// Invalidate drops every cached catalog entry.
func (c *CachedRepository) Invalidate(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "marketplace.cache.invalidate")
	defer span.End()

	iter := c.redis.Scan(ctx, 0, catalogKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("marketplace: scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("marketplace: delete cache keys: %w", err)
	}
	span.SetAttributes(attribute.Int("marketplace.cache.deleted", len(keys)))
	return nil
}

func readThrough[T any](ctx context.Context, c *CachedRepository, key string, load func(context.Context) (T, error)) (T, error) {
	ctx, span := c.tracer.Start(ctx, "marketplace.cache.read")
	defer span.End()
	key = catalogKeyPrefix + key
	span.SetAttributes(attribute.String("marketplace.cache.key", key))

	var zero T
	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out T
		if err := json.Unmarshal(data, &out); err == nil {
			span.SetAttributes(attribute.Bool("marketplace.cache.hit", true))
			return out, nil
		}
		c.logger.Warn("discarding undecodable catalog cache entry", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		span.RecordError(err)
		c.logger.Warn("catalog cache read failed", "key", key, "error", err)
	}
	span.SetAttributes(attribute.Bool("marketplace.cache.hit", false))

	out, err := load(ctx)
	if err != nil {
		return zero, err
	}
	data, err = json.Marshal(out)
	if err != nil {
		span.RecordError(err)
		return out, nil
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		span.RecordError(err)
		c.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}
	return out, nil
}

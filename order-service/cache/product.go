package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hktjayaranga/CoreBookingPlatform-Backend/order-service/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ProductFetcher interface {
	GetProduct(ctx context.Context, productID int) (*models.Product, error)
}

// ProductCache is a read-through cache in front of the product service.
// Redis errors never fail a lookup; they fall back to the fetcher.
type ProductCache struct {
	rdb    *redis.Client
	next   ProductFetcher
	ttl    time.Duration
	logger *zap.Logger
}

func NewProductCache(rdb *redis.Client, next ProductFetcher, ttl time.Duration, logger *zap.Logger) *ProductCache {
	return &ProductCache{rdb: rdb, next: next, ttl: ttl, logger: logger}
}

func productKey(productID int) string {
	return fmt.Sprintf("product:%d", productID)
}

func (c *ProductCache) GetProduct(ctx context.Context, productID int) (*models.Product, error) {
	key := productKey(productID)

	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var product models.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return &product, nil
		}
		c.logger.Warn("Discarding malformed cached product", zap.Int("product_id", productID))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Product cache read failed", zap.Int("product_id", productID), zap.Error(err))
	}

	product, err := c.next.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("Product cache write failed", zap.Int("product_id", productID), zap.Error(err))
		}
	}
	return product, nil
}

func (c *ProductCache) Invalidate(ctx context.Context, productID int) error {
	return c.rdb.Del(ctx, productKey(productID)).Err()
}

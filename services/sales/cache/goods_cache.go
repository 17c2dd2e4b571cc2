package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	goodsListKey    = "sales:goods:list"
	DefaultCacheTTL = 30 * time.Second
)

// GoodSummary is the cached projection of an in-stock good.
type GoodSummary struct {
	Name         string  `json:"name"`
	PricePerItem float64 `json:"price_per_item"`
}

// GoodsCache caches the in-stock goods listing in Redis. A nil client
// disables caching; every method then degrades to a miss or a no-op.
type GoodsCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewGoodsCache(client *redis.Client, logger *zap.Logger) *GoodsCache {
	return &GoodsCache{
		redis:  client,
		ttl:    DefaultCacheTTL,
		logger: logger,
	}
}

// GetGoodsList retrieves the cached listing. The second result reports a hit.
func (gc *GoodsCache) GetGoodsList(ctx context.Context) ([]GoodSummary, bool) {
	if gc.redis == nil {
		return nil, false
	}

	cached, err := gc.redis.Get(ctx, goodsListKey).Result()
	if err != nil {
		return nil, false
	}

	var goods []GoodSummary
	if err := json.Unmarshal([]byte(cached), &goods); err != nil {
		gc.logger.Warn("Failed to unmarshal cached goods list", zap.Error(err))
		return nil, false
	}
	return goods, true
}

// SetGoodsListAsync caches the listing without blocking the request.
func (gc *GoodsCache) SetGoodsListAsync(goods []GoodSummary) {
	if gc.redis == nil {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		jsonBytes, err := json.Marshal(goods)
		if err != nil {
			gc.logger.Warn("Failed to marshal goods list for cache", zap.Error(err))
			return
		}
		if err := gc.redis.Set(bgCtx, goodsListKey, jsonBytes, gc.ttl).Err(); err != nil {
			gc.logger.Warn("Failed to cache goods list", zap.Error(err))
		}
	}()
}

// NewRedisClient initializes a Redis client from a URL, or returns nil when
// the URL is empty (caching disabled).
func NewRedisClient(redisURL string, logger *zap.Logger) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("Invalid Redis URL, caching disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, caching disabled", zap.Error(err))
		return nil
	}

	logger.Info("Connected to Redis")
	return client
}

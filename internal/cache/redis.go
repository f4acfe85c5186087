package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisKeyPrefix = "ragcache:"

// RedisCache stores result sets in Redis with a TTL. Any backend error is
// treated as a forced miss so an unavailable Redis never fails a query.
// Entry expiry is delegated to Redis; capacity is managed by the server's
// own maxmemory policy.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	logger    *zap.Logger
	hits      int64
	misses    int64
	evictions int64
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key Key) ([]models.RankedResult, bool) {
	val, err := c.client.Get(ctx, redisKeyPrefix+string(key)).Result()
	if err == redis.Nil {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Redis cache read failed, treating as miss", zap.Error(err))
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	var results []models.RankedResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		c.logger.Warn("Corrupt cache entry, treating as miss", zap.Error(err))
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	if err := c.client.Incr(ctx, redisKeyPrefix+string(key)+":hits").Err(); err != nil {
		c.logger.Warn("Failed to bump cache hit count", zap.Error(err))
	}
	atomic.AddInt64(&c.hits, 1)
	return results, true
}

func (c *RedisCache) Put(ctx context.Context, key Key, results []models.RankedResult) {
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn("Failed to marshal results for cache", zap.Error(err))
		return
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+string(key), data, c.ttl)
	pipe.Set(ctx, redisKeyPrefix+string(key)+":hits", 0, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("Redis cache write failed", zap.Error(err))
	}
}

// HitCount returns the stored hit counter for key, or 0 when absent or
// unreadable.
func (c *RedisCache) HitCount(ctx context.Context, key Key) int64 {
	n, err := c.client.Get(ctx, redisKeyPrefix+string(key)+":hits").Int64()
	if err != nil {
		return 0
	}
	return n
}

// Stats counts live result entries by scanning the key prefix, excluding
// the hit-counter sidecars. A scan failure reports zero entries with a
// warning rather than failing the caller.
func (c *RedisCache) Stats(ctx context.Context) Stats {
	entries := 0
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, redisKeyPrefix+"*", 256).Result()
		if err != nil {
			c.logger.Warn("Redis cache stats scan failed", zap.Error(err))
			entries = 0
			break
		}
		for _, k := range keys {
			if !strings.HasSuffix(k, ":hits") {
				entries++
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return Stats{
		Entries:   entries,
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
	}
}

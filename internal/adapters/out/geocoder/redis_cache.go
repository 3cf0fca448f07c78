package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "geocode:"

type cachedResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}

var _ Cache = (*RedisCache)(nil)

// RedisCache keeps geocode results in Redis for ttl. Keys are the lower-cased
// address.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// NewRedisCacheFromURL parses a redis:// URL.
func NewRedisCacheFromURL(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return NewRedisCache(redis.NewClient(opt), ttl), nil
}

func (c *RedisCache) Get(ctx context.Context, address string) (ports.GeocodeResult, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(address)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.GeocodeResult{}, false, nil
	}
	if err != nil {
		return ports.GeocodeResult{}, false, err
	}

	var cached cachedResult
	if err = json.Unmarshal(raw, &cached); err != nil {
		return ports.GeocodeResult{}, false, err
	}
	loc, err := kernel.NewLocation(cached.Lat, cached.Lng)
	if err != nil {
		return ports.GeocodeResult{}, false, err
	}
	return ports.GeocodeResult{Location: loc, DisplayName: cached.DisplayName}, true, nil
}

func (c *RedisCache) Set(ctx context.Context, address string, result ports.GeocodeResult) error {
	raw, err := json.Marshal(cachedResult{
		Lat:         result.Location.Lat(),
		Lng:         result.Location.Lng(),
		DisplayName: result.DisplayName,
	})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(address), raw, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

func cacheKey(address string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(address))
}

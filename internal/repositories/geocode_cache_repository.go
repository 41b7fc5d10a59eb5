package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"moments/internal/models/response_models"
)

type GeocodeCacheInterface interface {
	Get(ctx context.Context, address string) (*response_models.Coordinates, bool, error)
	Set(ctx context.Context, address string, coords response_models.Coordinates, ttl time.Duration) error
}

type RedisGeocodeCache struct {
	rdb    *goredis.Client
	prefix string
}

func NewRedisGeocodeCache(rdb *goredis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{rdb: rdb, prefix: "moments:geocode:"}
}

func (c *RedisGeocodeCache) key(address string) string {
	return c.prefix + strings.ToLower(strings.TrimSpace(address))
}

func (c *RedisGeocodeCache) Get(ctx context.Context, address string) (*response_models.Coordinates, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(address)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var coords response_models.Coordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		return nil, false, err
	}
	return &coords, true, nil
}

func (c *RedisGeocodeCache) Set(ctx context.Context, address string, coords response_models.Coordinates, ttl time.Duration) error {
	raw, err := json.Marshal(coords)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(address), raw, ttl).Err()
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"film-vault/internal/geoip"

	"github.com/redis/go-redis/v9"
)

const geoKeyPrefix = "geo:"

// GeoCache 基于 Redis 的 GeoIP 查询缓存
type GeoCache struct {
	client redis.Cmdable
}

func NewGeoCache(client redis.Cmdable) *GeoCache {
	return &GeoCache{client: client}
}

func (c *GeoCache) Get(ctx context.Context, ip string) (geoip.Location, bool, error) {
	raw, err := c.client.Get(ctx, geoKeyPrefix+ip).Bytes()
	if errors.Is(err, redis.Nil) {
		return geoip.Location{}, false, nil
	}
	if err != nil {
		return geoip.Location{}, false, err
	}

	var loc geoip.Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return geoip.Location{}, false, err
	}
	return loc, true, nil
}

func (c *GeoCache) Set(ctx context.Context, ip string, loc geoip.Location, ttl time.Duration) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, geoKeyPrefix+ip, raw, ttl).Err()
}

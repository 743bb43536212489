package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// Redis backed cache for provider route polylines. Keys quantize the
// coordinate pair to five decimals (roughly one meter), so requests for
// the same origin and destination share an entry.
type RedisRouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRouteCache(redisURL string, ttl time.Duration) (*RedisRouteCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("route cache: parse redis url: %w", err)
	}
	if ttl <= 0 {
		return nil, errors.New("route cache: ttl must be positive")
	}

	return &RedisRouteCache{rdb: redis.NewClient(opts), ttl: ttl}, nil
}

func routeKey(origin, destination domain.Coordinate) string {
	return fmt.Sprintf("route:%.5f,%.5f:%.5f,%.5f",
		origin.Lat, origin.Lon, destination.Lat, destination.Lon)
}

// Get returns the cached polyline for the pair, reporting a miss when
// the key is absent or expired.
func (c *RedisRouteCache) Get(
	ctx context.Context,
	origin, destination domain.Coordinate,
) (domain.RoutePolyline, bool, error) {
	payload, err := c.rdb.Get(ctx, routeKey(origin, destination)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RoutePolyline{}, false, nil
	}
	if err != nil {
		return domain.RoutePolyline{}, false, fmt.Errorf("get route cache: %w", err)
	}

	var route domain.RoutePolyline
	if err := json.Unmarshal(payload, &route); err != nil {
		return domain.RoutePolyline{}, false, fmt.Errorf("get route cache: decode payload: %w", err)
	}

	return route, true, nil
}

// Put stores the polyline for the pair under the configured TTL.
func (c *RedisRouteCache) Put(
	ctx context.Context,
	origin, destination domain.Coordinate,
	route domain.RoutePolyline,
) error {
	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("put route cache: encode payload: %w", err)
	}

	if err := c.rdb.Set(ctx, routeKey(origin, destination), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: %w", err)
	}

	return nil
}

func (c *RedisRouteCache) Close() error {
	return c.rdb.Close()
}

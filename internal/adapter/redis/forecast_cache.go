// Package redis caches lake forecasts in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/observability"
)

const keyPrefix = "reel-report:forecast:"

// errMiss is returned by kv.get when the key is absent.
var errMiss = errors.New("cache miss")

// kv is the subset of Redis the cache needs.
type kv interface {
	get(ctx context.Context, key string) ([]byte, error)
	set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisKV struct {
	client *goredis.Client
}

func (r redisKV) get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, errMiss
	}
	return b, err
}

func (r redisKV) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.MaxRetries = 3

	client := goredis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

// ForecastCache is a read-through cache in front of a domain.Forecaster.
// Redis failures degrade to calling the provider directly.
type ForecastCache struct {
	inner   domain.Forecaster
	store   kv
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewForecastCache wraps inner with a Redis-backed cache.
func NewForecastCache(inner domain.Forecaster, client *goredis.Client, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *ForecastCache {
	return &ForecastCache{
		inner:   inner,
		store:   redisKV{client: client},
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// Forecast returns the cached forecast for the rounded coordinates, fetching
// and storing it on a miss.
func (c *ForecastCache) Forecast(ctx context.Context, lat, lon float64) ([]domain.DailyForecast, error) {
	key := fmt.Sprintf("%s%.4f,%.4f", keyPrefix, lat, lon)

	b, err := c.store.get(ctx, key)
	switch {
	case err == nil:
		var days []domain.DailyForecast
		if jsonErr := json.Unmarshal(b, &days); jsonErr == nil {
			c.metrics.ForecastCache.WithLabelValues("hit").Inc()
			return days, nil
		}
		c.logger.Warn("discarding corrupt forecast cache entry", "key", key)
		c.metrics.ForecastCache.WithLabelValues("error").Inc()
	case errors.Is(err, errMiss):
		c.metrics.ForecastCache.WithLabelValues("miss").Inc()
	default:
		c.logger.Warn("forecast cache read failed", "key", key, "error", err)
		c.metrics.ForecastCache.WithLabelValues("error").Inc()
	}

	days, err := c.inner.Forecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(days); err == nil {
		if err := c.store.set(ctx, key, b, c.ttl); err != nil {
			c.logger.Warn("forecast cache write failed", "key", key, "error", err)
		}
	}
	return days, nil
}

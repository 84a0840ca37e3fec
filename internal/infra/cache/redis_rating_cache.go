// Package cache stores provider rating aggregates.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"homeserve/config"
	"homeserve/internal/domain/entity"
	"homeserve/internal/domain/lifecycle"
	"homeserve/internal/domain/service"
	"homeserve/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const ratingKeyPrefix = "rating:provider:"

// RatingKey returns the cache key of a provider aggregate.
func RatingKey(providerID uuid.UUID) string {
	return ratingKeyPrefix + providerID.String()
}

type redisRatingCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisRatingCache wraps a go-redis client.
func NewRedisRatingCache(client redis.Cmdable, ttl time.Duration) service.RatingCache {
	return &redisRatingCache{client: client, ttl: ttl}
}

func (c *redisRatingCache) Get(ctx context.Context, providerID uuid.UUID) (*entity.ProviderRating, bool, error) {
	raw, err := c.client.Get(ctx, RatingKey(providerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get rating")
	}

	var rating entity.ProviderRating
	if err := json.Unmarshal(raw, &rating); err != nil {
		return nil, false, errors.Wrap(err, "decode cached rating")
	}

	return &rating, true, nil
}

func (c *redisRatingCache) Set(ctx context.Context, rating *entity.ProviderRating) error {
	raw, err := json.Marshal(rating)
	if err != nil {
		return errors.Wrap(err, "encode rating")
	}

	return errors.Wrap(c.client.Set(ctx, RatingKey(rating.ProviderID), raw, c.ttl).Err(), "redis set rating")
}

func (c *redisRatingCache) Invalidate(ctx context.Context, providerID uuid.UUID) error {
	return errors.Wrap(c.client.Del(ctx, RatingKey(providerID)).Err(), "redis del rating")
}

// noopRatingCache always misses.
type noopRatingCache struct{}

func NewNoopRatingCache() service.RatingCache {
	return noopRatingCache{}
}

func (noopRatingCache) Get(context.Context, uuid.UUID) (*entity.ProviderRating, bool, error) {
	return nil, false, nil
}

func (noopRatingCache) Set(context.Context, *entity.ProviderRating) error {
	return nil
}

func (noopRatingCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}

// Params defines the dependencies of the rating cache.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewRatingCache connects to redis when configured and falls back to the no-op cache.
func NewRatingCache(params Params) service.RatingCache {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured, rating cache disabled")

		return NewNoopRatingCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}
			params.Logger.Info("Redis rating cache connected", slog.String("addr", cfg.Addr), slog.Int("db", cfg.DB))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return NewRedisRatingCache(client, cfg.RatingTTL)
}

package http

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ltv-advisor/logger"
	"ltv-advisor/repository"
)

// RedisRateLimiter shares a fixed-window count per client across every
// instance that talks to the same Redis. If Redis is unreachable requests
// are let through.
type RedisRateLimiter struct {
	counter   repository.CounterRepository
	capacity  int64
	window    time.Duration
	keyPrefix string
}

func NewRedisRateLimiter(
	counter repository.CounterRepository,
	capacity int,
	window time.Duration,
	keyPrefix string,
) *RedisRateLimiter {
	return &RedisRateLimiter{
		counter:   counter,
		capacity:  int64(capacity),
		window:    window,
		keyPrefix: keyPrefix,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) bool {
	count, err := l.counter.Increment(ctx, l.keyPrefix+key, l.window)
	if err != nil {
		logger.Warn(ctx, "rate limit counter unavailable, allowing request",
			zap.String("client", key),
			zap.Error(err),
		)
		return true
	}
	return count <= l.capacity
}

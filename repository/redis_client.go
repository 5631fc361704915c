package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ltv-advisor/config"
	"ltv-advisor/logger"
)

type RedisClientConstructor func(opt *redis.Options) *redis.Client

// ConnectRedis builds a client from config and pings it so a bad address
// fails at startup rather than on the first request.
func ConnectRedis(
	ctx context.Context,
	cfg config.RedisConfig,
	newClientFunc RedisClientConstructor,
) (*redis.Client, error) {

	logger.Info(ctx, "connecting to redis",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
	)

	if newClientFunc == nil {
		newClientFunc = redis.NewClient
	}
	client := newClientFunc(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, config.Seconds(cfg.ConnectTimeoutSeconds))
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr, err)
	}

	logger.Info(ctx, "connected to redis")
	return client, nil
}

package redis

import (
	"coucou-server/config"
	"coucou-server/internal/global/sentry/tracing"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client 未配置 Redis 时为 nil
var Client *redis.Client

func Init() error {
	cfg := config.Get().Redis
	if cfg.Host == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if tracing.IsEnabled() {
		client.AddHook(tracing.NewRedisSentryHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}
	Client = client
	return nil
}

func Close() error {
	if Client == nil {
		return nil
	}
	return Client.Close()
}

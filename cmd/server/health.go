package server

import (
	"context"
	"coucou-server/internal/global/database"
	"coucou-server/internal/global/redis"
	"log/slog"
)

// newHealthCheck 定期检查数据库与 Redis，只在状态变化时记录日志
func newHealthCheck(log *slog.Logger) func(ctx context.Context) {
	healthy := true
	return func(ctx context.Context) {
		err := database.Ping(database.DB)
		if err == nil && redis.Client != nil {
			err = redis.Client.Ping(ctx).Err()
		}

		switch {
		case err != nil && healthy:
			log.Error("依赖服务不可用", "error", err)
		case err == nil && !healthy:
			log.Info("依赖服务已恢复")
		}
		healthy = err == nil
	}
}

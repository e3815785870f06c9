package tracing

import (
	"coucou-server/config"
	"context"
	"net"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
)

// RedisSentryHook 实现 redis.Hook 接口，用于追踪 Redis 操作
type RedisSentryHook struct {
	slowThreshold time.Duration
}

func NewRedisSentryHook() *RedisSentryHook {
	return &RedisSentryHook{
		slowThreshold: time.Duration(config.Get().Sentry.Tracing.RedisSlowThresholdMs) * time.Millisecond,
	}
}

func (h *RedisSentryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *RedisSentryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		span := StartSpanFromContext(ctx, "db.redis", cmd.Name())
		if span == nil {
			return next(ctx, cmd)
		}
		span.SetData("db.system", "redis")

		err := next(span.Context(), cmd)

		if h.slowThreshold > 0 && time.Since(start) < h.slowThreshold {
			span.Sampled = sentry.SampledFalse
		}
		if err != nil && err != redis.Nil {
			span.Status = sentry.SpanStatusInternalError
			span.SetData("db.error", err.Error())
		} else {
			span.Status = sentry.SpanStatusOK
		}
		span.Finish()
		return err
	}
}

func (h *RedisSentryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		span := StartSpanFromContext(ctx, "db.redis.pipeline", "pipeline")
		if span == nil {
			return next(ctx, cmds)
		}
		span.SetData("db.redis.commands", len(cmds))
		err := next(span.Context(), cmds)
		if err != nil {
			span.Status = sentry.SpanStatusInternalError
		} else {
			span.Status = sentry.SpanStatusOK
		}
		span.Finish()
		return err
	}
}

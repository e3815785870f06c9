// Package tracing 提供 Sentry 性能追踪的集成
// 包含 GORM、Redis 和 HTTP 客户端的追踪实现
package tracing

import (
	"coucou-server/config"
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// IsEnabled 检查 Sentry 追踪是否已启用
func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// ContextWithSpan 返回携带 sentrygin 事务的 context，供 GORM/Redis/resty 调用使用
func ContextWithSpan(c *gin.Context) context.Context {
	if c == nil || c.Request == nil {
		return context.Background()
	}
	return c.Request.Context()
}

// StartSpanFromContext 在 context 中的事务下创建子 span，无父 span 时返回 nil
func StartSpanFromContext(ctx context.Context, operation, description string) *sentry.Span {
	parentSpan := sentry.SpanFromContext(ctx)
	if parentSpan == nil {
		return nil
	}
	span := parentSpan.StartChild(operation)
	span.Description = description
	return span
}

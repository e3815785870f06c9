package sentry

import (
	"coucou-server/config"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// CodedError 定义带错误码的错误接口，用于判断是否需要上报
type CodedError interface {
	error
	GetCode() int32
}

// Init 初始化 Sentry SDK，未配置 DSN 时跳过
func Init() error {
	cfg := config.Get()
	if cfg.Sentry.Dsn == "" {
		return nil
	}

	tracesSampleRate := cfg.Sentry.SampleRate
	if tracesSampleRate <= 0 {
		tracesSampleRate = 1.0
	}
	environment := cfg.Sentry.Environment
	if environment == "" {
		environment = string(cfg.Mode)
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.Dsn,
		Environment:      environment,
		Release:          "coucou-server@1.0.0",
		SampleRate:       1.0, // 错误事件不采样
		EnableTracing:    true,
		TracesSampleRate: tracesSampleRate,
		EnableLogs:       true,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}

// Middleware 返回 Sentry Gin 中间件，未配置 DSN 时为空中间件
func Middleware() gin.HandlerFunc {
	if config.Get().Sentry.Dsn == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true, // 交给后续的 Recovery 中间件处理
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// CaptureException 仅上报服务器内部错误，不上报业务错误
func CaptureException(c *gin.Context, err error) {
	if config.Get().Sentry.Dsn == "" || !ShouldReport(err) {
		return
	}

	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(c.Request)
		scope.SetTag("path", c.Request.URL.Path)
		scope.SetTag("method", c.Request.Method)
		if payload, exists := c.Get("payload"); exists {
			scope.SetUser(sentry.User{
				Data: map[string]string{
					"payload": fmt.Sprintf("%+v", payload),
				},
			})
		}
		hub.CaptureException(err)
	})
}

// ShouldReport 只上报服务端错误（5xx 或 5xxxx 错误码），非自定义错误默认上报
func ShouldReport(err error) bool {
	var e CodedError
	if errors.As(err, &e) {
		code := e.GetCode()
		return code/100 == 5 || code/10000 == 5
	}
	return true
}

// Flush 程序退出前调用，确保事件发送完毕
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

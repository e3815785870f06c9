package httpclient

import (
	"coucou-server/config"
	"coucou-server/internal/global/sentry/tracing"
	"time"

	"github.com/go-resty/resty/v2"
)

var Client *resty.Client

func Init() {
	Client = New(time.Duration(config.Get().Polish.TimeoutSeconds) * time.Second)
}

// New 创建带超时的客户端，Sentry 启用时附加 HTTP 追踪
func New(timeout time.Duration) *resty.Client {
	client := resty.New().SetTimeout(timeout)
	if tracing.IsEnabled() {
		tracing.SetupRestyTracing(client, config.Get().Sentry.Tracing.TraceHTTPCalls)
	}
	return client
}

package server

import (
	"context"
	"coucou-server/config"
	"coucou-server/internal/global/database"
	"coucou-server/internal/global/httpclient"
	"coucou-server/internal/global/logger"
	"coucou-server/internal/global/metrics"
	"coucou-server/internal/global/middleware"
	internalOtel "coucou-server/internal/global/otel"
	"coucou-server/internal/global/poller"
	"coucou-server/internal/global/redis"
	"coucou-server/internal/global/sentry"
	"coucou-server/internal/global/session"
	"coucou-server/internal/module"
	"coucou-server/tools"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	log    *slog.Logger
	health *poller.Poller
)

func Init() {
	config.Init()
	log = logger.New("Server")

	if err := sentry.Init(); err != nil {
		log.Error("Sentry 初始化失败", "error", err)
	}

	database.Init()

	tools.PanicOnErr(redis.Init())
	session.Init(redis.Client)

	httpclient.Init()

	if config.Get().OTel.Enable {
		log.Info("OTel Enabled")
		tools.PanicOnErr(internalOtel.Init(context.Background()))
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}

	health = poller.New(time.Duration(config.Get().Health.IntervalSeconds)*time.Second, newHealthCheck(log))
}

func Run() {
	cfg := config.Get()
	gin.SetMode(string(cfg.Mode))
	r := gin.New()

	switch cfg.Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	if cfg.Sentry.Dsn != "" {
		r.Use(sentry.Middleware())
		r.Use(middleware.SentryEnrichIP())
	}
	if cfg.OTel.Enable {
		r.Use(middleware.Trace())
	}

	r.GET("/metrics", metrics.Handler())
	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + cfg.Prefix))
	}

	srv := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	health.Start(ctx)

	go func() {
		log.Info("服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("服务异常退出", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("正在关闭服务")
	shutdown(srv)
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("关闭 HTTP 服务失败", "error", err)
	}
	health.Stop()

	if config.Get().OTel.Enable {
		if err := internalOtel.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown TracerProvider", "error", err)
		}
	}
	if err := redis.Close(); err != nil {
		log.Warn("关闭 Redis 连接失败", "error", err)
	}
	sentry.Flush(2 * time.Second)
}

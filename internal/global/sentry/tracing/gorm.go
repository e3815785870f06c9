package tracing

import (
	"coucou-server/config"
	"time"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

const (
	gormSpanKey    = "sentry:span"
	gormStartKey   = "sentry:start"
	callbackPrefix = "sentry_tracing"
)

// GormTracingPlugin 实现 GORM Plugin 接口，用于追踪数据库操作
type GormTracingPlugin struct {
	dbSystem string
	// slowThreshold 为 0 表示记录所有查询
	slowThreshold time.Duration
}

func NewGormTracingPlugin(dbSystem string) *GormTracingPlugin {
	return &GormTracingPlugin{
		dbSystem:      dbSystem,
		slowThreshold: time.Duration(config.Get().Sentry.Tracing.DBSlowThresholdMs) * time.Millisecond,
	}
}

func (p *GormTracingPlugin) Name() string {
	return "SentryTracingPlugin"
}

// Initialize 在每类操作前后注册回调
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		name      string
		operation string
		before    func(string, func(*gorm.DB)) error
		after     func(string, func(*gorm.DB)) error
	}{
		{"create", "db.sql.create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", "db.sql.query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", "db.sql.update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", "db.sql.delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", "db.sql.row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", "db.sql.raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, h := range hooks {
		if err := h.before(callbackPrefix+":before_"+h.name, p.beforeCallback(h.operation)); err != nil {
			return err
		}
		if err := h.after(callbackPrefix+":after_"+h.name, p.afterCallback); err != nil {
			return err
		}
	}
	return nil
}

func (p *GormTracingPlugin) beforeCallback(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil || db.Statement.Context == nil {
			return
		}
		db.InstanceSet(gormStartKey, time.Now())

		// 使用表名作为描述，避免记录完整 SQL
		span := StartSpanFromContext(db.Statement.Context, operation, db.Statement.Table)
		if span == nil {
			return
		}
		span.SetData("db.system", p.dbSystem)
		db.InstanceSet(gormSpanKey, span)
		db.Statement.Context = span.Context()
	}
}

func (p *GormTracingPlugin) afterCallback(db *gorm.DB) {
	startVal, ok := db.InstanceGet(gormStartKey)
	if !ok {
		return
	}
	spanVal, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, ok := spanVal.(*sentry.Span)
	if !ok || span == nil {
		return
	}

	if start, ok := startVal.(time.Time); ok && p.slowThreshold > 0 && time.Since(start) < p.slowThreshold {
		span.Sampled = sentry.SampledFalse
	}

	span.SetData("db.rows_affected", db.RowsAffected)
	if db.Error != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("db.error", db.Error.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}

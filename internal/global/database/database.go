package database

import (
	"coucou-server/config"
	"coucou-server/internal/global/sentry/tracing"
	"coucou-server/internal/model"
	"coucou-server/tools"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表
var autoMigrateModels = []any{
	&model.User{},
	&model.Activity{},
	&model.ActivityParticipant{},
	&model.ChatMessage{},
}

func Init() {
	db, err := Open(config.Get())
	tools.PanicOnErr(err)
	DB = db
}

// Open 按配置的驱动打开数据库并完成自动迁移
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorOf(cfg.Database)
	if err != nil {
		return nil, err
	}

	// 表名使用默认的复数形式：users、activities、activity_participants、chat_messages
	gormConfig := &gorm.Config{
		TranslateError: true,
	}
	switch cfg.Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}

	if cfg.Sentry.Dsn != "" {
		if err := db.Use(tracing.NewGormTracingPlugin(string(cfg.Database.Driver))); err != nil {
			return nil, err
		}
	}

	if cfg.Database.Driver == config.DriverSqlite {
		// sqlite 单写者，内存库必须复用同一连接
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate 使用模型列表进行自动迁移
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(autoMigrateModels...)
}

func dialectorOf(c config.Database) (gorm.Dialector, error) {
	switch c.Driver {
	case config.DriverMysql:
		dsn := c.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				c.Username, c.Password, c.Host, c.Port, c.DBName)
		}
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		dsn := c.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=Asia/Shanghai",
				c.Host, c.Port, c.Username, c.Password, c.DBName)
		}
		return postgres.Open(dsn), nil
	case config.DriverSqlite:
		return sqlite.Open(c.DSN), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", c.Driver)
	}
}

// Ping 检查数据库连接是否可用
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

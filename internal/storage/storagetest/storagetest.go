// Package storagetest 为测试提供独立的 sqlite 内存数据库
package storagetest

import (
	"context"
	"coucou-server/config"
	"coucou-server/internal/global/database"
	"coucou-server/internal/model"
	"coucou-server/internal/storage"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB 每次调用得到一个全新的内存库，已完成迁移
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := config.Default()
	cfg.Mode = config.ModeRelease
	cfg.Database.Driver = config.DriverSqlite
	cfg.Database.DSN = ":memory:"

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func NewStore(t testing.TB) *storage.Store {
	t.Helper()
	return storage.New(NewDB(t))
}

// CreateUser 写入一个邮箱随机的用户
func CreateUser(t testing.TB, s *storage.Store, name string) *model.User {
	t.Helper()
	u := &model.User{
		Email:       uuid.NewString() + "@coucou.test",
		Password:    "x",
		Name:        name,
		CreditScore: model.DefaultCreditScore,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

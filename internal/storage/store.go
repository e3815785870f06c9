// Package storage 基于 gorm 的持久层，实现活动生命周期所需的 Gateway 与通知投递
package storage

import (
	"context"
	"coucou-server/internal/module/activity/lifecycle"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrDuplicate 唯一约束冲突，例如邮箱已注册
	ErrDuplicate = errors.New("duplicate key")
	// ErrNotFound 记录不存在，与 lifecycle.ErrRecordNotFound 是同一个值
	ErrNotFound = lifecycle.ErrRecordNotFound
)

var (
	_ lifecycle.Gateway  = (*Store)(nil)
	_ lifecycle.Notifier = (*Store)(nil)
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Atomic 在事务中执行 fn，fn 内只能使用传入的 Gateway
func (s *Store) Atomic(ctx context.Context, fn func(g lifecycle.Gateway) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isDuplicate 兼容 gorm 翻译后的错误、mysql 1062 与 sqlite 的原始报错
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// escapeLike 以 ! 作为 LIKE 转义符，三种数据库通用
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

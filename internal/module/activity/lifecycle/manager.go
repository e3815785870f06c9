// Package lifecycle 活动的创建、报名、退出、状态推导与编辑通知。
// 每次操作都从 Gateway 重新读取，Manager 本身不持有可变状态。
package lifecycle

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
)

type Manager struct {
	gw       Gateway
	notifier Notifier
	validate *validator.Validate
	log      *slog.Logger
	now      func() time.Time
}

func NewManager(gw Gateway, notifier Notifier, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		gw:       gw,
		notifier: notifier,
		validate: newValidator(),
		log:      log,
		now:      time.Now,
	}
}

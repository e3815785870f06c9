package lifecycle

import (
	"context"
	"coucou-server/internal/model"
	"errors"
)

var (
	// ErrRecordNotFound 由 Gateway 在查询单条记录不存在时返回
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateLink 由 Gateway 在 (activity, user) 参与关系已存在时返回
	ErrDuplicateLink = errors.New("participant link already exists")
)

// ActivityFilter 活动列表查询条件，零值表示不过滤
type ActivityFilter struct {
	Category    model.Category
	Search      string
	OrganizerID string
	// IDs 非 nil 时只返回这些活动；空切片返回空结果
	IDs []string
}

// Gateway 持久层。Manager 每次操作都重新读取，不缓存任何实体。
type Gateway interface {
	// Atomic 在同一事务中执行 fn，fn 返回错误时回滚
	Atomic(ctx context.Context, fn func(g Gateway) error) error

	GetActivity(ctx context.Context, id string) (*model.Activity, error)
	// LoadActivity 返回带组织者与参与者资料的完整活动
	LoadActivity(ctx context.Context, id string) (*model.Activity, error)
	// ListActivities 返回完整活动，按创建时间倒序
	ListActivities(ctx context.Context, filter ActivityFilter) ([]model.Activity, error)
	InsertActivity(ctx context.Context, a *model.Activity) error
	UpdateActivity(ctx context.Context, id string, fields map[string]any) error

	GetUser(ctx context.Context, id string) (*model.User, error)

	HasParticipant(ctx context.Context, activityID, userID string) (bool, error)
	InsertParticipant(ctx context.Context, p *model.ActivityParticipant) error
	DeleteParticipant(ctx context.Context, activityID, userID string) (int64, error)
	CountParticipants(ctx context.Context, activityID string) (int64, error)
	// ListParticipantIDs 按加入顺序返回当前参与者
	ListParticipantIDs(ctx context.Context, activityID string) ([]string, error)
	JoinedActivityIDs(ctx context.Context, userID string) ([]string, error)
}

// Notifier 通知投递，只追加不修改
type Notifier interface {
	Notify(ctx context.Context, recipientID, content, activityID string) error
}

package lifecycle

import (
	"context"
	"coucou-server/internal/model"
	"errors"
	"strings"
)

// List 按创建时间倒序列出活动。category 为空或 all 时不过滤；
// search 不区分大小写地匹配标题或地点。
func (m *Manager) List(ctx context.Context, category model.Category, search string) ([]model.Activity, error) {
	const op = "list"

	if category == model.CategoryAll {
		category = ""
	}
	if category != "" && !category.Valid() {
		return nil, validationError(op, "Category", errors.New("unknown category"))
	}
	list, err := m.gw.ListActivities(ctx, ActivityFilter{
		Category: category,
		Search:   strings.TrimSpace(search),
	})
	if err != nil {
		return nil, persistence(op, err)
	}
	return list, nil
}

// GetByID 活动不存在时返回 found=false 而不是错误
func (m *Manager) GetByID(ctx context.Context, id string) (a *model.Activity, found bool, err error) {
	a, err = m.gw.LoadActivity(ctx, id)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, persistence("getById", err)
	}
	return a, true, nil
}

type UserActivities struct {
	Organized []model.Activity `json:"organized"`
	// Joined 包含用户组织的活动，组织者创建时已自动报名
	Joined []model.Activity `json:"joined"`
}

func (m *Manager) GetForUser(ctx context.Context, userID string) (*UserActivities, error) {
	const op = "getForUser"

	organized, err := m.gw.ListActivities(ctx, ActivityFilter{OrganizerID: userID})
	if err != nil {
		return nil, persistence(op, err)
	}
	ids, err := m.gw.JoinedActivityIDs(ctx, userID)
	if err != nil {
		return nil, persistence(op, err)
	}
	joined := []model.Activity{}
	if len(ids) > 0 {
		joined, err = m.gw.ListActivities(ctx, ActivityFilter{IDs: ids})
		if err != nil {
			return nil, persistence(op, err)
		}
	}
	return &UserActivities{Organized: organized, Joined: joined}, nil
}

package lifecycle

import (
	"context"
	"coucou-server/internal/global/metrics"
	"coucou-server/internal/model"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CreateFields 创建活动时由组织者填写的字段
type CreateFields struct {
	Title           string         `json:"title" validate:"notblank,max=100"`
	Description     string         `json:"description"`
	Category        model.Category `json:"category" validate:"category"`
	Tag             string         `json:"tag" validate:"max=50"`
	Time            time.Time      `json:"time" validate:"required"`
	Location        string         `json:"location" validate:"notblank,max=255"`
	Address         string         `json:"address" validate:"max=255"`
	CostType        string         `json:"cost_type" validate:"max=50"`
	CostDetail      string         `json:"cost_detail" validate:"max=255"`
	MaxParticipants int            `json:"max_participants" validate:"gte=2"`
	Images          []string       `json:"images"`
}

// Patch 编辑活动的部分字段，nil 表示不修改。分类与组织者创建后不可变。
type Patch struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Time            *time.Time `json:"time"`
	Location        *string    `json:"location"`
	Address         *string    `json:"address"`
	CostType        *string    `json:"cost_type"`
	CostDetail      *string    `json:"cost_detail"`
	MaxParticipants *int       `json:"max_participants"`
}

// FanoutFailure 单个参与者通知投递失败
type FanoutFailure struct {
	RecipientID string
	Err         error
}

type EditResult struct {
	Activity *model.Activity
	// Notified 成功投递的通知数
	Notified int
	// FanoutFailures 投递失败不回滚已提交的修改，单独上报
	FanoutFailures []FanoutFailure
}

// UpdateNotice 活动编辑后发给参与者的通知内容
func UpdateNotice(title string) string {
	return fmt.Sprintf("【%s】活动信息已更新，请查看最新详情。", title)
}

// Create 创建活动，状态为 recruiting，组织者自动成为第一位参与者
func (m *Manager) Create(ctx context.Context, fields CreateFields, organizerID string) (*model.Activity, error) {
	const op = "create"

	fields.Title = strings.TrimSpace(fields.Title)
	fields.Location = strings.TrimSpace(fields.Location)
	if err := m.validate.Struct(fields); err != nil {
		return nil, fromValidator(op, err)
	}
	if err := m.requireUser(ctx, m.gw, op, organizerID); err != nil {
		return nil, err
	}

	images := model.Images(fields.Images)
	if images == nil {
		images = model.Images{}
	}
	a := &model.Activity{
		Title:           fields.Title,
		Description:     fields.Description,
		Category:        fields.Category,
		Tag:             fields.Tag,
		Time:            fields.Time,
		Location:        fields.Location,
		Address:         fields.Address,
		CostType:        fields.CostType,
		CostDetail:      fields.CostDetail,
		MaxParticipants: fields.MaxParticipants,
		Images:          images,
		Status:          model.StatusRecruiting,
		OrganizerID:     organizerID,
	}

	err := m.gw.Atomic(ctx, func(g Gateway) error {
		if err := g.InsertActivity(ctx, a); err != nil {
			return err
		}
		return m.join(ctx, g, a.ID, organizerID)
	})
	if err != nil {
		return nil, persistence(op, err)
	}
	metrics.ActivitiesCreated.Inc()
	m.log.Info("创建活动", "activity_id", a.ID, "organizer_id", organizerID, "category", a.Category)

	created, err := m.gw.LoadActivity(ctx, a.ID)
	if err != nil {
		return nil, persistence(op, err)
	}
	return created, nil
}

// Edit 组织者修改活动。先确认活动存在并鉴权，再校验字段，均在任何写入之前完成；
// 修改提交后逐个通知当前参与者，通知失败只记录不回滚。
func (m *Manager) Edit(ctx context.Context, activityID string, patch Patch, requesterID string) (*EditResult, error) {
	const op = "edit"

	a, err := m.gw.GetActivity(ctx, activityID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, notFound(op, "activity")
	}
	if err != nil {
		return nil, persistence(op, err)
	}
	if a.OrganizerID != requesterID {
		return nil, forbidden(op, errors.New("only the organizer can edit"))
	}

	updates, err := m.patchFields(op, patch)
	if err != nil {
		return nil, err
	}

	result := &EditResult{}
	if len(updates) > 0 {
		err = m.gw.Atomic(ctx, func(g Gateway) error {
			if err := g.UpdateActivity(ctx, activityID, updates); err != nil {
				return err
			}
			if _, ok := updates["max_participants"]; ok {
				_, err := m.recompute(ctx, g, activityID)
				return err
			}
			return nil
		})
		if err != nil {
			return nil, persistence(op, err)
		}

		title := a.Title
		if patch.Title != nil {
			title = strings.TrimSpace(*patch.Title)
		}
		m.fanout(ctx, activityID, UpdateNotice(title), result)
	}

	result.Activity, err = m.gw.LoadActivity(ctx, activityID)
	if err != nil {
		return nil, persistence(op, err)
	}
	return result, nil
}

// patchFields 校验并转换为列名到新值的映射
func (m *Manager) patchFields(op string, p Patch) (map[string]any, error) {
	updates := make(map[string]any)
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if err := m.validate.Var(title, "notblank,max=100"); err != nil {
			return nil, validationError(op, "Title", errors.New("title is required and at most 100 characters"))
		}
		updates["title"] = title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Time != nil {
		if p.Time.IsZero() {
			return nil, validationError(op, "Time", errors.New("time is required"))
		}
		updates["time"] = *p.Time
	}
	if p.Location != nil {
		location := strings.TrimSpace(*p.Location)
		if err := m.validate.Var(location, "notblank,max=255"); err != nil {
			return nil, validationError(op, "Location", errors.New("location is required and at most 255 characters"))
		}
		updates["location"] = location
	}
	if p.Address != nil {
		updates["address"] = *p.Address
	}
	if p.CostType != nil {
		updates["cost_type"] = *p.CostType
	}
	if p.CostDetail != nil {
		updates["cost_detail"] = *p.CostDetail
	}
	if p.MaxParticipants != nil {
		if err := m.validate.Var(*p.MaxParticipants, "gte=2"); err != nil {
			return nil, validationError(op, "MaxParticipants", errors.New("max participants must be at least 2"))
		}
		updates["max_participants"] = *p.MaxParticipants
	}
	return updates, nil
}

// fanout 按当前参与者逐个投递，不包含已退出的历史参与者
func (m *Manager) fanout(ctx context.Context, activityID, content string, result *EditResult) {
	recipients, err := m.gw.ListParticipantIDs(ctx, activityID)
	if err != nil {
		m.log.Warn("获取活动参与者失败，未发送更新通知", "activity_id", activityID, "error", err)
		result.FanoutFailures = append(result.FanoutFailures, FanoutFailure{Err: err})
		metrics.Fanout.WithLabelValues("failed").Inc()
		return
	}
	for _, id := range recipients {
		if err := m.notifier.Notify(ctx, id, content, activityID); err != nil {
			m.log.Warn("活动更新通知发送失败", "activity_id", activityID, "recipient_id", id, "error", err)
			result.FanoutFailures = append(result.FanoutFailures, FanoutFailure{RecipientID: id, Err: err})
			metrics.Fanout.WithLabelValues("failed").Inc()
			continue
		}
		result.Notified++
		metrics.Fanout.WithLabelValues("delivered").Inc()
	}
}

package lifecycle

import (
	"context"
	"coucou-server/internal/global/metrics"
	"coucou-server/internal/model"
	"errors"
)

// errAlreadyJoined 并发报名时唯一索引冲突，视为已报名
var errAlreadyJoined = errors.New("already joined")

// Join 报名活动。已报名时直接成功，不会产生重复记录；joined 表示本次是否新增了参与关系。
// 不做人数上限校验，满员后仍可加入，状态保持 full。
func (m *Manager) Join(ctx context.Context, activityID, userID string) (joined bool, err error) {
	const op = "join"
	defer func() {
		switch {
		case err != nil:
			metrics.Joins.WithLabelValues("failed").Inc()
		case joined:
			metrics.Joins.WithLabelValues("joined").Inc()
		default:
			metrics.Joins.WithLabelValues("already_joined").Inc()
		}
	}()

	if err := m.requireActivity(ctx, m.gw, op, activityID); err != nil {
		return false, err
	}
	if err := m.requireUser(ctx, m.gw, op, userID); err != nil {
		return false, err
	}

	exists, err := m.gw.HasParticipant(ctx, activityID, userID)
	if err != nil {
		return false, persistence(op, err)
	}
	if exists {
		if _, err := m.RecomputeStatus(ctx, activityID); err != nil {
			return false, err
		}
		return false, nil
	}

	err = m.gw.Atomic(ctx, func(g Gateway) error {
		return m.join(ctx, g, activityID, userID)
	})
	if errors.Is(err, errAlreadyJoined) {
		return false, nil
	}
	if err != nil {
		return false, persistence(op, err)
	}
	m.log.Info("用户报名活动", "activity_id", activityID, "user_id", userID)
	return true, nil
}

// join 插入参与关系后在同一事务内重算状态，插入失败则不重算
func (m *Manager) join(ctx context.Context, g Gateway, activityID, userID string) error {
	err := g.InsertParticipant(ctx, &model.ActivityParticipant{
		ActivityID: activityID,
		UserID:     userID,
		JoinedAt:   m.now(),
	})
	if errors.Is(err, ErrDuplicateLink) {
		return errAlreadyJoined
	}
	if err != nil {
		return err
	}
	_, err = m.recompute(ctx, g, activityID)
	return err
}

// Leave 退出活动。未报名时为空操作；组织者不能退出自己的活动。
func (m *Manager) Leave(ctx context.Context, activityID, userID string) error {
	const op = "leave"

	a, err := m.gw.GetActivity(ctx, activityID)
	if errors.Is(err, ErrRecordNotFound) {
		return notFound(op, "activity")
	}
	if err != nil {
		return persistence(op, err)
	}
	if a.OrganizerID == userID {
		return forbidden(op, errors.New("organizer cannot leave own activity"))
	}

	var removed int64
	err = m.gw.Atomic(ctx, func(g Gateway) error {
		n, err := g.DeleteParticipant(ctx, activityID, userID)
		if err != nil {
			return err
		}
		removed = n
		_, err = m.recompute(ctx, g, activityID)
		return err
	})
	if err != nil {
		return persistence(op, err)
	}
	if removed > 0 {
		metrics.Leaves.Inc()
		m.log.Info("用户退出活动", "activity_id", activityID, "user_id", userID)
	}
	return nil
}

func (m *Manager) requireActivity(ctx context.Context, g Gateway, op, id string) error {
	_, err := g.GetActivity(ctx, id)
	if errors.Is(err, ErrRecordNotFound) {
		return notFound(op, "activity")
	}
	if err != nil {
		return persistence(op, err)
	}
	return nil
}

func (m *Manager) requireUser(ctx context.Context, g Gateway, op, id string) error {
	_, err := g.GetUser(ctx, id)
	if errors.Is(err, ErrRecordNotFound) {
		return notFound(op, "user")
	}
	if err != nil {
		return persistence(op, err)
	}
	return nil
}

package lifecycle

import (
	"context"
	"coucou-server/internal/global/metrics"
	"coucou-server/internal/model"
	"errors"
)

// DeriveStatus 人数达到上限为 full，否则为 recruiting
func DeriveStatus(count int64, maxParticipants int) model.Status {
	if count >= int64(maxParticipants) {
		return model.StatusFull
	}
	return model.StatusRecruiting
}

// RecomputeStatus 根据当前人数重新推导活动状态，重复调用结果不变。
// ended 由外部设置，这里不会覆盖。
func (m *Manager) RecomputeStatus(ctx context.Context, activityID string) (model.Status, error) {
	return m.recompute(ctx, m.gw, activityID)
}

func (m *Manager) recompute(ctx context.Context, g Gateway, activityID string) (model.Status, error) {
	const op = "recomputeStatus"

	a, err := g.GetActivity(ctx, activityID)
	if errors.Is(err, ErrRecordNotFound) {
		return "", notFound(op, "activity")
	}
	if err != nil {
		return "", persistence(op, err)
	}
	if a.Status == model.StatusEnded {
		return a.Status, nil
	}

	count, err := g.CountParticipants(ctx, activityID)
	if err != nil {
		return "", persistence(op, err)
	}

	next := DeriveStatus(count, a.MaxParticipants)
	if next == a.Status {
		return next, nil
	}
	if err := g.UpdateActivity(ctx, activityID, map[string]any{"status": next}); err != nil {
		return "", persistence(op, err)
	}
	metrics.StatusTransitions.WithLabelValues(string(next)).Inc()
	m.log.Debug("活动状态变更", "activity_id", activityID, "from", a.Status, "to", next, "count", count)
	return next, nil
}

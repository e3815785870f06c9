package activity

import (
	"context"
	"coucou-server/internal/model"
	"fmt"
)

// notifyGroupBuyJoined 拼团报名成功后给报名者发系统通知，满员时使用生成的成团文案
func notifyGroupBuyJoined(ctx context.Context, a *model.Activity, userID string) {
	content := fmt.Sprintf("【%s】恭喜！您已成功加入拼团。", a.Title)
	if a.Status == model.StatusFull {
		content = fmt.Sprintf("【%s】%s", a.Title, polisher.SuccessMessage(ctx, a.Title))
	}
	if err := store.Notify(ctx, userID, content, a.ID); err != nil {
		log.Warn("拼团通知发送失败", "activity_id", a.ID, "user_id", userID, "error", err)
	}
}

package storage

import (
	"context"
	"coucou-server/internal/model"
)

// Notify 写入一条系统通知，没有独立的系统账号，发送者即接收者
func (s *Store) Notify(ctx context.Context, recipientID, content, activityID string) error {
	msg := &model.ChatMessage{
		SenderID:   recipientID,
		ReceiverID: recipientID,
		Content:    content,
		Type:       model.MessageSystem,
	}
	if activityID != "" {
		msg.ActivityID = &activityID
	}
	return s.InsertMessage(ctx, msg)
}

func (s *Store) InsertMessage(ctx context.Context, msg *model.ChatMessage) error {
	return s.db.WithContext(ctx).Omit("Sender").Create(msg).Error
}

// ListMessages 用户发出或收到的消息，最新在前
func (s *Store) ListMessages(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	list := make([]model.ChatMessage, 0)
	err := s.db.WithContext(ctx).
		Preload("Sender").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (s *Store) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// MarkRead 将 sender 发给 receiver 的未读消息置为已读
func (s *Store) MarkRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (s *Store) MarkAllRead(ctx context.Context, receiverID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

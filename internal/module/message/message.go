package message

import (
	"coucou-server/internal/global/context"
	"coucou-server/internal/global/response"
	"coucou-server/internal/model"
	"coucou-server/internal/storage"
	"coucou-server/tools"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ListConversations 当前用户的会话列表，最新在前
func ListConversations(c *gin.Context) {
	user, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	messages, err := store.ListMessages(c.Request.Context(), user.UserID)
	if err != nil {
		log.Error("查询消息失败", "error", err, "user_id", user.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	conversations := groupConversations(messages, user.UserID)
	if ids := missingPeers(conversations); len(ids) > 0 {
		peers, err := store.ListUsers(c.Request.Context(), ids)
		if err != nil {
			log.Error("查询会话对方资料失败", "error", err, "user_id", user.UserID)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		fillPeers(conversations, peers)
	}
	total := len(conversations)

	offset, limit := tools.GetPage(c)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)

	response.Success(c, gin.H{
		"conversations":    conversations[offset:end],
		"total":            total,
		"poll_interval_ms": PollInterval.Milliseconds(),
	})
}

func UnreadCount(c *gin.Context) {
	user, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	n, err := store.UnreadCount(c.Request.Context(), user.UserID)
	if err != nil {
		log.Error("查询未读数失败", "error", err, "user_id", user.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{
		"unread":           n,
		"poll_interval_ms": PollInterval.Milliseconds(),
	})
}

type readReq struct {
	SenderID string `json:"sender_id" binding:"required"`
}

// MarkAsRead 将某个发送者发来的未读消息置为已读，系统会话的发送者即当前用户
func MarkAsRead(c *gin.Context) {
	user, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	var req readReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	sender := req.SenderID
	if sender == SystemConversation {
		sender = user.UserID
	}

	n, err := store.MarkRead(c.Request.Context(), user.UserID, sender)
	if err != nil {
		log.Error("标记已读失败", "error", err, "user_id", user.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"updated": n})
}

func MarkAllAsRead(c *gin.Context) {
	user, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	n, err := store.MarkAllRead(c.Request.Context(), user.UserID)
	if err != nil {
		log.Error("标记全部已读失败", "error", err, "user_id", user.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"updated": n})
}

type sendReq struct {
	ReceiverID string            `json:"receiver_id" binding:"required"`
	Content    string            `json:"content" binding:"required"`
	Type       model.MessageType `json:"type"`
	ActivityID *string           `json:"activity_id"`
}

// Send 发送站内消息，系统消息只能由服务端产生
func Send(c *gin.Context) {
	user, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("消息内容不能为空"))
		return
	}
	switch req.Type {
	case "":
		req.Type = model.MessageUser
	case model.MessageUser, model.MessageGroup:
	default:
		response.Fail(c, response.ErrInvalidRequest.WithTips("消息类型不合法"))
		return
	}

	ctx := c.Request.Context()
	if _, err := store.GetUser(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("接收者不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	msg := &model.ChatMessage{
		SenderID:   user.UserID,
		ReceiverID: req.ReceiverID,
		Content:    content,
		Type:       req.Type,
		ActivityID: req.ActivityID,
	}
	if err := store.InsertMessage(ctx, msg); err != nil {
		log.Error("发送消息失败", "error", err, "user_id", user.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, msg)
}

package message

import (
	"coucou-server/internal/model"
	"time"
)

// SystemConversation 所有系统通知归入同一会话
const SystemConversation = "system"

// PollInterval 客户端拉取新消息的间隔
const PollInterval = 10 * time.Second

type Conversation struct {
	Key         string            `json:"key"`
	Type        model.MessageType `json:"type"`
	PeerID      string            `json:"peer_id,omitempty"`
	PeerName    string            `json:"peer_name,omitempty"`
	PeerAvatar  string            `json:"peer_avatar,omitempty"`
	LastMessage string            `json:"last_message"`
	ActivityID  *string           `json:"activity_id,omitempty"`
	Unread      int               `json:"unread"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// conversationKey 系统消息归入 system，其余按对方用户分组
func conversationKey(msg *model.ChatMessage, userID string) string {
	if msg.Type == model.MessageSystem {
		return SystemConversation
	}
	if msg.SenderID == userID {
		return msg.ReceiverID
	}
	return msg.SenderID
}

// groupConversations 输入按时间倒序，每个会话保留最新一条并统计未读数
func groupConversations(messages []model.ChatMessage, userID string) []Conversation {
	index := make(map[string]int)
	list := make([]Conversation, 0)
	for i := range messages {
		msg := &messages[i]
		key := conversationKey(msg, userID)
		unread := 0
		if msg.ReceiverID == userID && !msg.IsRead {
			unread = 1
		}

		if pos, ok := index[key]; ok {
			list[pos].Unread += unread
			continue
		}

		conv := Conversation{
			Key:         key,
			Type:        msg.Type,
			LastMessage: msg.Content,
			ActivityID:  msg.ActivityID,
			Unread:      unread,
			UpdatedAt:   msg.CreatedAt,
		}
		if key != SystemConversation {
			conv.PeerID = key
			if msg.SenderID == key {
				conv.PeerName = msg.Sender.Name
				conv.PeerAvatar = msg.Sender.Avatar
			}
		}
		index[key] = len(list)
		list = append(list, conv)
	}
	return list
}

// missingPeers 最新一条由自己发出的会话缺少对方资料
func missingPeers(list []Conversation) []string {
	ids := make([]string, 0)
	for _, conv := range list {
		if conv.PeerID != "" && conv.PeerName == "" {
			ids = append(ids, conv.PeerID)
		}
	}
	return ids
}

func fillPeers(list []Conversation, users []model.User) {
	byID := make(map[string]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range list {
		if u, ok := byID[list[i].PeerID]; ok && list[i].PeerName == "" {
			list[i].PeerName = u.Name
			list[i].PeerAvatar = u.Avatar
		}
	}
}

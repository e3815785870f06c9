package model

type MessageType string

const (
	MessageSystem MessageType = "system"
	MessageUser   MessageType = "user"
	MessageGroup  MessageType = "group"
)

// ChatMessage 站内消息，同时承担活动通知
type ChatMessage struct {
	Model
	SenderID   string      `gorm:"type:varchar(36);not null;index" json:"sender_id"`
	ReceiverID string      `gorm:"type:varchar(36);index:idx_receiver_read" json:"receiver_id"`
	ActivityID *string     `gorm:"type:varchar(36);index" json:"activity_id"`
	Content    string      `gorm:"type:text;not null" json:"content"`
	Type       MessageType `gorm:"type:varchar(10);not null;default:user" json:"type"`
	IsRead     bool        `gorm:"default:false;not null;index:idx_receiver_read" json:"is_read"`

	Sender User `gorm:"foreignKey:SenderID;references:ID" json:"sender"`
}

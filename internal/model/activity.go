package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryBadminton   Category = "badminton"
	CategoryBasketball  Category = "basketball"
	CategoryGroupBuy    Category = "group_buy"
	CategoryMysteryGame Category = "mystery_game"

	// CategoryAll 列表筛选时表示不过滤分类，不是合法的活动分类
	CategoryAll Category = "all"
)

var Categories = []Category{CategoryBadminton, CategoryBasketball, CategoryGroupBuy, CategoryMysteryGame}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusRecruiting Status = "recruiting"
	StatusFull       Status = "full"
	StatusEnded      Status = "ended"
)

type Activity struct {
	Model
	Title           string    `gorm:"type:varchar(100);not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Category        Category  `gorm:"type:varchar(20);not null;index" json:"category"`
	Tag             string    `gorm:"type:varchar(50)" json:"tag"`
	Time            time.Time `gorm:"not null" json:"time"`
	Location        string    `gorm:"type:varchar(255);not null" json:"location"`
	Address         string    `gorm:"type:varchar(255)" json:"address"`
	CostType        string    `gorm:"type:varchar(50)" json:"cost_type"`
	CostDetail      string    `gorm:"type:varchar(255)" json:"cost_detail"`
	MaxParticipants int       `gorm:"not null" json:"max_participants"`
	Images          Images    `gorm:"type:text" json:"images"`
	Status          Status    `gorm:"type:varchar(20);not null;default:recruiting" json:"status"`
	OrganizerID     string    `gorm:"type:varchar(36);not null;index" json:"organizer_id"`

	Organizer    User                  `gorm:"foreignKey:OrganizerID;references:ID" json:"organizer"`
	Participants []ActivityParticipant `gorm:"foreignKey:ActivityID;references:ID" json:"participants"`
}

// ActivityParticipant 用户与活动的参与关系，(activity_id, user_id) 唯一
type ActivityParticipant struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ActivityID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_activity_user" json:"activity_id"`
	UserID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_activity_user;index" json:"user_id"`
	JoinedAt   time.Time `gorm:"not null;index" json:"joined_at"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"user"`
}

func (p *ActivityParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.JoinedAt.IsZero() {
		p.JoinedAt = time.Now()
	}
	return nil
}

// Images 活动图片地址列表，以 JSON 数组存储
type Images []string

func (i Images) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	b, err := json.Marshal(i)
	return string(b), err
}

func (i *Images) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*i = Images{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("无法将 %T 转换为 Images", value)
	}
	if len(raw) == 0 {
		*i = Images{}
		return nil
	}
	return json.Unmarshal(raw, i)
}

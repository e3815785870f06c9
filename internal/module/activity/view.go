package activity

import (
	"coucou-server/internal/model"
	"time"
)

type UserBrief struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	CreditScore int    `json:"credit_score"`
	CreditLevel string `json:"credit_level"`
}

type ParticipantView struct {
	UserBrief
	JoinedAt time.Time `json:"joined_at"`
}

// ActivityView 返回给客户端的活动，时间保持原始时刻由客户端本地化
type ActivityView struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Category         model.Category    `json:"category"`
	Tag              string            `json:"tag"`
	Time             time.Time         `json:"time"`
	Location         string            `json:"location"`
	Address          string            `json:"address"`
	CostType         string            `json:"cost_type"`
	CostDetail       string            `json:"cost_detail"`
	MaxParticipants  int               `json:"max_participants"`
	ParticipantCount int               `json:"participant_count"`
	Images           []string          `json:"images"`
	Status           model.Status      `json:"status"`
	Organizer        UserBrief         `json:"organizer"`
	Participants     []ParticipantView `json:"participants"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func briefOf(u model.User) UserBrief {
	return UserBrief{
		ID:          u.ID,
		Name:        u.Name,
		Avatar:      u.Avatar,
		CreditScore: u.CreditScore,
		CreditLevel: model.LevelOf(u.CreditScore).Name,
	}
}

func toView(a *model.Activity) ActivityView {
	participants := make([]ParticipantView, 0, len(a.Participants))
	for _, p := range a.Participants {
		participants = append(participants, ParticipantView{UserBrief: briefOf(p.User), JoinedAt: p.JoinedAt})
	}
	images := []string(a.Images)
	if images == nil {
		images = []string{}
	}
	return ActivityView{
		ID:               a.ID,
		Title:            a.Title,
		Description:      a.Description,
		Category:         a.Category,
		Tag:              a.Tag,
		Time:             a.Time,
		Location:         a.Location,
		Address:          a.Address,
		CostType:         a.CostType,
		CostDetail:       a.CostDetail,
		MaxParticipants:  a.MaxParticipants,
		ParticipantCount: len(participants),
		Images:           images,
		Status:           a.Status,
		Organizer:        briefOf(a.Organizer),
		Participants:     participants,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func toViews(list []model.Activity) []ActivityView {
	views := make([]ActivityView, 0, len(list))
	for i := range list {
		views = append(views, toView(&list[i]))
	}
	return views
}

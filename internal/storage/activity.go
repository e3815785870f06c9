package storage

import (
	"context"
	"coucou-server/internal/model"
	"coucou-server/internal/module/activity/lifecycle"
	"strings"

	"gorm.io/gorm"
)

// materialized 预加载组织者与按加入顺序排列的参与者资料
func (s *Store) materialized(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Participants.User")
}

func (s *Store) GetActivity(ctx context.Context, id string) (*model.Activity, error) {
	var a model.Activity
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &a, nil
}

func (s *Store) LoadActivity(ctx context.Context, id string) (*model.Activity, error) {
	var a model.Activity
	if err := s.materialized(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &a, nil
}

func (s *Store) ListActivities(ctx context.Context, f lifecycle.ActivityFilter) ([]model.Activity, error) {
	list := make([]model.Activity, 0)
	if f.IDs != nil && len(f.IDs) == 0 {
		return list, nil
	}

	q := s.materialized(ctx)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.OrganizerID != "" {
		q = q.Where("organizer_id = ?", f.OrganizerID)
	}
	if f.IDs != nil {
		q = q.Where("id IN ?", f.IDs)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		q = q.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(location) LIKE ? ESCAPE '!')", pattern, pattern)
	}
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) InsertActivity(ctx context.Context, a *model.Activity) error {
	return s.db.WithContext(ctx).Omit("Organizer", "Participants").Create(a).Error
}

func (s *Store) UpdateActivity(ctx context.Context, id string, fields map[string]any) error {
	return s.db.WithContext(ctx).Model(&model.Activity{}).Where("id = ?", id).Updates(fields).Error
}

// CountOrganized 用户发起的活动数
func (s *Store) CountOrganized(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Activity{}).Where("organizer_id = ?", userID).Count(&n).Error
	return n, err
}

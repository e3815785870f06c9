package storage

import (
	"context"
	"coucou-server/internal/model"
)

func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &u, nil
}

// ListUsers 按 id 批量查询，不存在的 id 直接忽略
func (s *Store) ListUsers(ctx context.Context, ids []string) ([]model.User, error) {
	list := make([]model.User, 0, len(ids))
	if len(ids) == 0 {
		return list, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &u, nil
}

// CreateUser 邮箱已存在时返回 ErrDuplicate
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if isDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Store) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// CountJoined 用户的参与记录数，包含自己发起的活动
func (s *Store) CountJoined(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.ActivityParticipant{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

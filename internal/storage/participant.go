package storage

import (
	"context"
	"coucou-server/internal/model"
	"coucou-server/internal/module/activity/lifecycle"
)

func (s *Store) HasParticipant(ctx context.Context, activityID, userID string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.ActivityParticipant{}).
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		Count(&n).Error
	return n > 0, err
}

func (s *Store) InsertParticipant(ctx context.Context, p *model.ActivityParticipant) error {
	err := s.db.WithContext(ctx).Omit("User").Create(p).Error
	if isDuplicate(err) {
		return lifecycle.ErrDuplicateLink
	}
	return err
}

func (s *Store) DeleteParticipant(ctx context.Context, activityID, userID string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		Delete(&model.ActivityParticipant{})
	return res.RowsAffected, res.Error
}

func (s *Store) CountParticipants(ctx context.Context, activityID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.ActivityParticipant{}).
		Where("activity_id = ?", activityID).
		Count(&n).Error
	return n, err
}

func (s *Store) ListParticipantIDs(ctx context.Context, activityID string) ([]string, error) {
	ids := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&model.ActivityParticipant{}).
		Where("activity_id = ?", activityID).
		Order("joined_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (s *Store) JoinedActivityIDs(ctx context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&model.ActivityParticipant{}).
		Where("user_id = ?", userID).
		Pluck("activity_id", &ids).Error
	return ids, err
}

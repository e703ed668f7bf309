package repository

import (
	"BiuBiuStar/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type ModerationRepo interface {
	// UpdateStatusFromPending 条件更新，WHERE status='pending' 兜底并发，
	// 返回影响行数，0 表示帖子不存在或已被其他管理员审核。
	UpdateStatusFromPending(ctx context.Context, postID uint64, newStatus string, reason *string, adminID uint64) (int64, error)
	CreateHistory(ctx context.Context, history *model.PostModerationHistory) error
	ListHistoryByPostID(ctx context.Context, postID uint64) ([]*model.PostModerationHistory, error)
	CountActionsSince(ctx context.Context, action string, since time.Time) (int64, error)
}

type ModerationRepoImpl struct {
	db *gorm.DB
}

func NewModerationRepo(db *gorm.DB) ModerationRepo {
	return &ModerationRepoImpl{db: db}
}

func (s *ModerationRepoImpl) UpdateStatusFromPending(ctx context.Context, postID uint64, newStatus string, reason *string, adminID uint64) (int64, error) {
	now := time.Now()
	result := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND status = ?", postID, model.PostStatusPending).
		Updates(map[string]any{
			"status":           newStatus,
			"rejection_reason": reason,
			"reviewed_at":      now,
			"reviewed_by":      adminID,
		})
	return result.RowsAffected, result.Error
}

func (s *ModerationRepoImpl) CreateHistory(ctx context.Context, history *model.PostModerationHistory) error {
	return s.db.WithContext(ctx).Create(history).Error
}

func (s *ModerationRepoImpl) ListHistoryByPostID(ctx context.Context, postID uint64) ([]*model.PostModerationHistory, error) {
	var histories []*model.PostModerationHistory
	result := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at desc").
		Find(&histories)
	if result.Error != nil {
		return nil, result.Error
	}
	return histories, nil
}

func (s *ModerationRepoImpl) CountActionsSince(ctx context.Context, action string, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostModerationHistory{}).
		Where("action = ? AND created_at >= ?", action, since).
		Count(&count).Error
	return count, err
}

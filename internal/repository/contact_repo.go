package repository

import (
	"BiuBiuStar/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type ContactRepo interface {
	CreateContact(ctx context.Context, form *model.ContactForm) error
	ExistsRecentByEmail(ctx context.Context, email string, since time.Time) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type ContactRepoImpl struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) ContactRepo {
	return &ContactRepoImpl{db: db}
}

func (s *ContactRepoImpl) CreateContact(ctx context.Context, form *model.ContactForm) error {
	return s.db.WithContext(ctx).Create(form).Error
}

// ExistsRecentByEmail 同一邮箱窗口期内是否已提交
func (s *ContactRepoImpl) ExistsRecentByEmail(ctx context.Context, email string, since time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ContactForm{}).
		Where("email = ? AND created_at >= ?", email, since).
		Count(&count).Error
	return count > 0, err
}

func (s *ContactRepoImpl) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.ContactForm{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

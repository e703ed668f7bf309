package repository

import (
	"BiuBiuStar/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PostListFilter 帖子列表筛选条件
type PostListFilter struct {
	Statuses []string
	UserIDs  []uint64
	Limit    int
	Offset   int
	// OldestFirst 审核队列按提交时间正序出队
	OldestFirst bool
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, postID uint64) (*model.Post, error)
	ListPosts(ctx context.Context, filter *PostListFilter) ([]*model.Post, int64, error)
	DeletePost(ctx context.Context, postID uint64) error
	CountPosts(ctx context.Context) (int64, error)
	CountPostsByStatus(ctx context.Context) (map[string]int64, error)
	GetCreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error)
	CountPostsByUserID(ctx context.Context, userID uint64) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPostByID(ctx context.Context, postID uint64) (*model.Post, error) {
	var post model.Post
	result := s.db.WithContext(ctx).Where("id = ?", postID).First(&post)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &post, nil
}

func (s *PostRepoImpl) ListPosts(ctx context.Context, filter *PostListFilter) ([]*model.Post, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Post{})
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if len(filter.UserIDs) > 0 {
		query = query.Where("user_id IN ?", filter.UserIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at desc"
	if filter.OldestFirst {
		order = "created_at asc"
	}

	var posts []*model.Post
	result := query.Order(order).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&posts)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return posts, total, nil
}

// DeletePost 连同点赞和评论一起删，避免留下孤儿行
func (s *PostRepoImpl) DeletePost(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.PostComment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", postID).Delete(&model.Post{}).Error
	})
}

func (s *PostRepoImpl) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).Count(&count).Error
	return count, err
}

// CountPostsByStatus 审核统计用，GROUP BY 一次取全量
func (s *PostRepoImpl) CountPostsByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.Post{}).
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

func (s *PostRepoImpl) GetCreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &times).Error
	return times, err
}

func (s *PostRepoImpl) CountPostsByUserID(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("user_id = ? AND status = ?", userID, model.PostStatusPublished).
		Count(&count).Error
	return count, err
}

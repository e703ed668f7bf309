package repository

import (
	"BiuBiuStar/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostActionRepo interface {
	CreateLike(ctx context.Context, like *model.Like) (int64, error)
	DeleteLike(ctx context.Context, userID, postID uint64) (int64, error)
	GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error)
	GetLikeCountsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)
	GetLikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error)
	GetUserTotalLikes(ctx context.Context, userID uint64) (int64, error)

	CreateComment(ctx context.Context, comment *model.PostComment) error
	DeleteComment(ctx context.Context, commentID uint64) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.PostComment, error)
	GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.PostComment, error)
	GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error)
	GetCommentCountsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)
	ListComments(ctx context.Context, limit, offset int) ([]*model.PostComment, int64, error)
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db}
}

// CreateLike 冲突静默插入，返回影响行数，0 表示重复点赞
func (s *PostActionRepoImpl) CreateLike(ctx context.Context, like *model.Like) (int64, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	return result.RowsAffected, result.Error
}

func (s *PostActionRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

func (s *PostActionRepoImpl) GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// GetLikeCountsByPostIDs 批量 IN 查询避免 N+1
func (s *PostActionRepoImpl) GetLikeCountsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	type row struct {
		PostID uint64
		Count  int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.PostID] = r.Count
	}
	return counts, nil
}

// GetLikedPostIDs 当前用户在给定帖子集合内点赞过哪些
func (s *PostActionRepoImpl) GetLikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool, len(postIDs))
	if userID == 0 || len(postIDs) == 0 {
		return liked, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// GetUserTotalLikes 用户发布的帖子收到的点赞总数
func (s *PostActionRepoImpl) GetUserTotalLikes(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) CreateComment(ctx context.Context, comment *model.PostComment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *PostActionRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Where("id = ?", commentID).Delete(&model.PostComment{}).Error
}

func (s *PostActionRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.PostComment, error) {
	var comment model.PostComment
	result := s.db.WithContext(ctx).Where("id = ?", commentID).First(&comment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &comment, nil
}

func (s *PostActionRepoImpl) GetCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.PostComment, error) {
	var comments []*model.PostComment
	result := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at asc").
		Limit(limit).
		Offset(offset).
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}
	return comments, nil
}

func (s *PostActionRepoImpl) GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostComment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) GetCommentCountsByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	type row struct {
		PostID uint64
		Count  int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.PostComment{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.PostID] = r.Count
	}
	return counts, nil
}

// ListComments 后台评论管理的全量分页
func (s *PostActionRepoImpl) ListComments(ctx context.Context, limit, offset int) ([]*model.PostComment, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.PostComment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var comments []*model.PostComment
	result := s.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&comments)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return comments, total, nil
}

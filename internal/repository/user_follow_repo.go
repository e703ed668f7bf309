package repository

import (
	"BiuBiuStar/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserFollowRepo interface {
	GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error)
	GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error)
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowingIDs(ctx context.Context, userID uint64) ([]uint64, error)
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	CreateUserFollow(ctx context.Context, userFollow *model.UserFollow) (int64, error)
	DeleteUserFollow(ctx context.Context, followerID, followingID uint64) (int64, error)
}

type UserFollowRepoImpl struct {
	db *gorm.DB
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{db: db}
}

// GetFollowers 获取用户的粉丝列表，连表取展示字段
func (s *UserFollowRepoImpl) GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	result := s.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN user_follows ON user_follows.follower_id = users.id").
		Where("user_follows.following_id = ?", userID).
		Order("user_follows.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// GetFollowing 获取用户的关注列表
func (s *UserFollowRepoImpl) GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	result := s.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN user_follows ON user_follows.following_id = users.id").
		Where("user_follows.follower_id = ?", userID).
		Order("user_follows.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserFollowRepoImpl) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.UserFollow{}).
		Where("following_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *UserFollowRepoImpl) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.UserFollow{}).
		Where("follower_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetFollowingIDs 关注流查询用，一次取全量 id
func (s *UserFollowRepoImpl) GetFollowingIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (s *UserFollowRepoImpl) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var follow model.UserFollow
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// CreateUserFollow 冲突静默插入，返回影响行数，0 表示已存在
func (s *UserFollowRepoImpl) CreateUserFollow(ctx context.Context, userFollow *model.UserFollow) (int64, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(userFollow)
	return result.RowsAffected, result.Error
}

// DeleteUserFollow 删除关注关系，不存在时影响行数为 0
func (s *UserFollowRepoImpl) DeleteUserFollow(ctx context.Context, followerID, followingID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.UserFollow{})
	return result.RowsAffected, result.Error
}

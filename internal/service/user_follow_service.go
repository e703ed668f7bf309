package service

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/model"
	"BiuBiuStar/internal/pkg/consts"
	"BiuBiuStar/internal/pkg/redis"
	"BiuBiuStar/internal/repository"
	"context"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	redisv9 "github.com/redis/go-redis/v9"
)

type UserFollowService interface {
	Follow(ctx context.Context, followerID uint64, targetUsername string) error
	Unfollow(ctx context.Context, followerID uint64, targetUsername string) error
	GetFollowers(ctx context.Context, username string, limit, offset int) ([]*dto.UserDTO, error)
	GetFollowing(ctx context.Context, username string, limit, offset int) ([]*dto.UserDTO, error)
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
}

type UserFollowServiceImpl struct {
	followRepo repository.UserFollowRepo
	userRepo   repository.UserRepo
}

func NewUserFollowService(followRepo repository.UserFollowRepo, userRepo repository.UserRepo) UserFollowService {
	return &UserFollowServiceImpl{followRepo: followRepo, userRepo: userRepo}
}

// Follow 重复关注由冲突插入兜底，不做 check-then-act
func (s *UserFollowServiceImpl) Follow(ctx context.Context, followerID uint64, targetUsername string) error {
	target, err := s.userRepo.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if target.ID == followerID {
		return ErrUserFollowSelf
	}

	rows, err := s.followRepo.CreateUserFollow(ctx, &model.UserFollow{
		FollowerID:  followerID,
		FollowingID: target.ID,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserFollowExist
	}

	_ = s.userRepo.AdjustCounter(ctx, target.ID, "follower_count", 1)
	_ = s.userRepo.AdjustCounter(ctx, followerID, "following_count", 1)
	s.invalidateCountCache(ctx, followerID, target.ID, target.Username)
	return nil
}

// Unfollow 删除即成功，未关注时同样返回成功
func (s *UserFollowServiceImpl) Unfollow(ctx context.Context, followerID uint64, targetUsername string) error {
	target, err := s.userRepo.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	rows, err := s.followRepo.DeleteUserFollow(ctx, followerID, target.ID)
	if err != nil {
		return err
	}
	if rows > 0 {
		_ = s.userRepo.AdjustCounter(ctx, target.ID, "follower_count", -1)
		_ = s.userRepo.AdjustCounter(ctx, followerID, "following_count", -1)
		s.invalidateCountCache(ctx, followerID, target.ID, target.Username)
	}
	return nil
}

func (s *UserFollowServiceImpl) GetFollowers(ctx context.Context, username string, limit, offset int) ([]*dto.UserDTO, error) {
	return s.getFollowList(ctx, username, limit, offset, s.followRepo.GetFollowers)
}

func (s *UserFollowServiceImpl) GetFollowing(ctx context.Context, username string, limit, offset int) ([]*dto.UserDTO, error) {
	return s.getFollowList(ctx, username, limit, offset, s.followRepo.GetFollowing)
}

func (s *UserFollowServiceImpl) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(ctx, userID, consts.UserFollowerCountKey, s.followRepo.GetFollowerCount)
}

func (s *UserFollowServiceImpl) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(ctx, userID, consts.UserFollowingCountKey, s.followRepo.GetFollowingCount)
}

type fetchListFunc func(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error)
type fetchCountFunc func(ctx context.Context, userID uint64) (int64, error)

func (s *UserFollowServiceImpl) getFollowList(
	ctx context.Context,
	username string,
	limit, offset int,
	fetchDB fetchListFunc,
) ([]*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	users, err := fetchDB(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	dtos := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		userDTO := &dto.UserDTO{}
		_ = copier.Copy(userDTO, u)
		userDTO.Email = ""
		userDTO.Role = ""
		dtos = append(dtos, userDTO)
	}
	return dtos, nil
}

func (s *UserFollowServiceImpl) getCountCommon(
	ctx context.Context,
	userID uint64,
	keyPrefix string,
	fetchDB fetchCountFunc,
) (int64, error) {
	key := keyPrefix + strconv.FormatUint(userID, 10)

	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	if err != redisv9.Nil {
		return 0, err
	}

	count, err = fetchDB(ctx, userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, time.Hour)
	return count, nil
}

func (s *UserFollowServiceImpl) invalidateCountCache(ctx context.Context, followerID, followingID uint64, followingUsername string) {
	_ = redis.DeleteKey(ctx,
		consts.UserFollowerCountKey+strconv.FormatUint(followingID, 10),
		consts.UserFollowingCountKey+strconv.FormatUint(followerID, 10),
		consts.UserProfileKey+followingUsername,
	)
}

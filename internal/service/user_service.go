package service

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/model"
	"BiuBiuStar/internal/pkg/consts"
	"BiuBiuStar/internal/pkg/redis"
	"BiuBiuStar/internal/pkg/security"
	"BiuBiuStar/internal/repository"
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.AuthResultDTO, error)
	Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.AuthResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetMe(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	GetProfileByUsername(ctx context.Context, callerID uint64, username string) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, userID uint64, updateDTO *dto.UpdateProfileDTO) (*dto.UserDTO, error)
	SearchUsers(ctx context.Context, keyword string, limit, offset int) ([]*dto.UserDTO, error)
	GetUserStats(ctx context.Context, username string) (*dto.UserStatsDTO, error)
}

type UserServiceImpl struct {
	userRepo   repository.UserRepo
	followRepo repository.UserFollowRepo
	eventRepo  repository.EventRepo
	actionRepo repository.PostActionRepo
}

func NewUserService(
	userRepo repository.UserRepo,
	followRepo repository.UserFollowRepo,
	eventRepo repository.EventRepo,
	actionRepo repository.PostActionRepo,
) UserService {
	return &UserServiceImpl{
		userRepo:   userRepo,
		followRepo: followRepo,
		eventRepo:  eventRepo,
		actionRepo: actionRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.AuthResultDTO, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, regDTO.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExist
	}

	exists, err = s.userRepo.ExistsByUsername(ctx, regDTO.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    regDTO.Email,
		Username: regDTO.Username,
		Password: passwordHash,
		Role:     consts.RoleUser,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResultDTO{User: s.toUserDTO(user, true), Token: token}, nil
}

// Login 任何凭据错误一律返回同一个错误，不暴露邮箱是否注册
func (s *UserServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.AuthResultDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, loginDTO.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrCredentialIncorrect
	}
	if err = security.CheckPasswordHash(loginDTO.Password, user.Password); err != nil {
		return nil, ErrCredentialIncorrect
	}
	if user.IsBan {
		return nil, ErrUserBan
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResultDTO{User: s.toUserDTO(user, true), Token: token}, nil
}

// Logout 将 Token 签名写入黑名单，有效期与 Token 剩余寿命一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		// Token 已失效，无需拉黑
		return nil
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	remaining := security.TokenRemaining(claims)
	if remaining <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenDenyKey+signature, 1, remaining)
}

func (s *UserServiceImpl) GetMe(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserDTO(user, true), nil
}

// GetProfileByUsername 基础资料走缓存，关注状态与调用者相关，单独计算
func (s *UserServiceImpl) GetProfileByUsername(ctx context.Context, callerID uint64, username string) (*dto.UserDTO, error) {
	var userDTO *dto.UserDTO

	key := consts.UserProfileKey + username
	value, err := redis.GetValue(ctx, key)
	if err == nil && value != "" {
		cached := &dto.UserDTO{}
		if err = json.Unmarshal([]byte(value), cached); err == nil {
			userDTO = cached
		}
	}

	if userDTO == nil {
		user, err := s.userRepo.GetUserByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		userDTO = s.toUserDTO(user, false)
		if payload, err := json.Marshal(userDTO); err == nil {
			_ = redis.SetWithExpiration(ctx, key, string(payload), time.Hour)
		}
	}

	if callerID != 0 && callerID != userDTO.ID {
		isFollowing, err := s.followRepo.IsFollowing(ctx, callerID, userDTO.ID)
		if err != nil {
			return nil, err
		}
		userDTO.IsFollowing = isFollowing
	}
	return userDTO, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uint64, updateDTO *dto.UpdateProfileDTO) (*dto.UserDTO, error) {
	fields := map[string]any{}
	if updateDTO.DisplayName != nil {
		fields["display_name"] = *updateDTO.DisplayName
	}
	if updateDTO.Bio != nil {
		fields["bio"] = *updateDTO.Bio
	}
	if updateDTO.Location != nil {
		fields["location"] = *updateDTO.Location
	}
	if updateDTO.Website != nil {
		fields["website"] = *updateDTO.Website
	}
	if updateDTO.AvatarURL != nil {
		fields["avatar_url"] = *updateDTO.AvatarURL
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, fields); err != nil {
		return nil, err
	}

	userDTO, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}
	_ = redis.DeleteKey(ctx, consts.UserProfileKey+userDTO.Username)
	return userDTO, nil
}

func (s *UserServiceImpl) SearchUsers(ctx context.Context, keyword string, limit, offset int) ([]*dto.UserDTO, error) {
	users, err := s.userRepo.SearchUsers(ctx, keyword, limit, offset)
	if err != nil {
		return nil, err
	}
	dtos := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, s.toUserDTO(user, false))
	}
	return dtos, nil
}

// GetUserStats 各表计数并行聚合
func (s *UserServiceImpl) GetUserStats(ctx context.Context, username string) (*dto.UserStatsDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	stats := &dto.UserStatsDTO{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.FollowerCount, err = s.followRepo.GetFollowerCount(gCtx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.FollowingCount, err = s.followRepo.GetFollowingCount(gCtx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.EventCount, err = s.eventRepo.CountEventsByOrganizer(gCtx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.LikeCount, err = s.actionRepo.GetUserTotalLikes(gCtx, user.ID)
		return err
	})

	stats.PostCount = user.PostCount

	if err = g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// toUserDTO 含隐私字段的视图仅给本人/管理端
func (s *UserServiceImpl) toUserDTO(user *model.User, includePrivate bool) *dto.UserDTO {
	userDTO := &dto.UserDTO{}
	_ = copier.Copy(userDTO, user)
	if !includePrivate {
		userDTO.Email = ""
		userDTO.Role = ""
	}
	return userDTO
}

// IsTokenDenied 登出黑名单检查，供鉴权中间件调用
func IsTokenDenied(ctx context.Context, signature string) (bool, error) {
	return redis.Exists(ctx, consts.TokenDenyKey+signature)
}

package repository

import (
	"BiuBiuStar/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// UserListFilter 后台用户列表的筛选条件
type UserListFilter struct {
	Keyword    string
	Role       string
	IsVerified *bool
	Limit      int
	Offset     int
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint64) ([]*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, id uint64, fields map[string]any) error
	UpdateRole(ctx context.Context, id uint64, role string) error
	SetVerified(ctx context.Context, id uint64, verified bool) error
	SetBan(ctx context.Context, id uint64, ban bool) error
	AdjustCounter(ctx context.Context, id uint64, column string, delta int) error
	SearchUsers(ctx context.Context, keyword string, limit, offset int) ([]*model.User, error)
	ListUsers(ctx context.Context, filter *UserListFilter) ([]*model.User, int64, error)
	CountUsers(ctx context.Context) (int64, error)
	GetCreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepoImpl) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.firstUser(ctx, "id = ?", id)
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.firstUser(ctx, "email = ?", email)
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.firstUser(ctx, "username = ?", username)
}

func (s *UserRepoImpl) firstUser(ctx context.Context, query string, args ...any) (*model.User, error) {
	var user model.User
	result := s.db.WithContext(ctx).Where(query, args...).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUsersByIDs(ctx context.Context, ids []uint64) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	var users []*model.User
	result := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (s *UserRepoImpl) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// UpdateProfile 只更新调用方传入的白名单字段
func (s *UserRepoImpl) UpdateProfile(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (s *UserRepoImpl) UpdateRole(ctx context.Context, id uint64, role string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (s *UserRepoImpl) SetVerified(ctx context.Context, id uint64, verified bool) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("is_verified", verified).Error
}

func (s *UserRepoImpl) SetBan(ctx context.Context, id uint64, ban bool) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("is_ban", ban).Error
}

// AdjustCounter 冗余计数列的原子增减，column 仅限代码内的固定列名
func (s *UserRepoImpl) AdjustCounter(ctx context.Context, id uint64, column string, delta int) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// SearchUsers 用户名/昵称的子串搜索
func (s *UserRepoImpl) SearchUsers(ctx context.Context, keyword string, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	pattern := "%" + keyword + "%"
	result := s.db.WithContext(ctx).
		Where("username LIKE ? OR display_name LIKE ?", pattern, pattern).
		Order("follower_count desc").
		Limit(limit).
		Offset(offset).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) ListUsers(ctx context.Context, filter *UserListFilter) ([]*model.User, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.User{})
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("username LIKE ? OR email LIKE ? OR display_name LIKE ?", pattern, pattern, pattern)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*model.User
	result := query.Order("created_at desc").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&users)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return users, total, nil
}

func (s *UserRepoImpl) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

// GetCreatedAtSince 拉取注册时间用于按天聚合趋势
func (s *UserRepoImpl) GetCreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &times).Error
	return times, err
}

package service

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (UserService, *testRepos) {
	db := setupTestDB(t)
	repos := newTestRepos(db)
	return NewUserService(repos.user, repos.follow, repos.event, repos.action), repos
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &dto.RegisterDTO{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, "alice@example.com", result.User.Email)

	logged, err := svc.Login(ctx, &dto.LoginDTO{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, logged.Token)
	assert.Equal(t, result.User.ID, logged.User.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterDTO{Email: "bob@example.com", Username: "bob", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterDTO{Email: "bob@example.com", Username: "bob2", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailExist)

	_, err = svc.Register(ctx, &dto.RegisterDTO{Email: "bob2@example.com", Username: "bob", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameExist)
}

func TestLoginUniformFailure(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterDTO{Email: "carol@example.com", Username: "carol", Password: "password123"})
	require.NoError(t, err)

	// 密码错误与邮箱不存在返回同一个错误
	_, err = svc.Login(ctx, &dto.LoginDTO{Email: "carol@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrCredentialIncorrect)

	_, err = svc.Login(ctx, &dto.LoginDTO{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrCredentialIncorrect)
}

func TestLoginBannedUser(t *testing.T) {
	svc, repos := newUserService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &dto.RegisterDTO{Email: "dave@example.com", Username: "dave", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, repos.user.SetBan(ctx, result.User.ID, true))

	_, err = svc.Login(ctx, &dto.LoginDTO{Email: "dave@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrUserBan)
}

func TestUpdateProfileWhitelist(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &dto.RegisterDTO{Email: "erin@example.com", Username: "erin", Password: "password123"})
	require.NoError(t, err)

	bio := "hello"
	updated, err := svc.UpdateProfile(ctx, result.User.ID, &dto.UpdateProfileDTO{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "hello", *updated.Bio)
	assert.Equal(t, "erin", updated.Username)
}

func TestGetProfileStripsPrivateFields(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterDTO{Email: "frank@example.com", Username: "frank", Password: "password123"})
	require.NoError(t, err)

	profile, err := svc.GetProfileByUsername(ctx, 0, "frank")
	require.NoError(t, err)
	assert.Empty(t, profile.Email)
	assert.Empty(t, profile.Role)

	_, err = svc.GetProfileByUsername(ctx, 0, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserStats(t *testing.T) {
	svc, repos := newUserService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &dto.RegisterDTO{Email: "grace@example.com", Username: "grace", Password: "password123"})
	require.NoError(t, err)

	follower, err := svc.Register(ctx, &dto.RegisterDTO{Email: "heidi@example.com", Username: "heidi", Password: "password123"})
	require.NoError(t, err)

	rows, err := repos.follow.CreateUserFollow(ctx, &model.UserFollow{
		FollowerID:  follower.User.ID,
		FollowingID: result.User.ID,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	stats, err := svc.GetUserStats(ctx, "grace")
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.FollowerCount)
	assert.EqualValues(t, 0, stats.FollowingCount)
}

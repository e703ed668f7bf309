package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFollowService(t *testing.T) (UserFollowService, *testRepos) {
	db := setupTestDB(t)
	repos := newTestRepos(db)
	return NewUserFollowService(repos.follow, repos.user), repos
}

func TestFollowAndUnfollow(t *testing.T) {
	svc, repos := newFollowService(t)
	ctx := context.Background()

	follower := createTestUserWithRepos(t, repos, "ivan")
	target := createTestUserWithRepos(t, repos, "judy")

	require.NoError(t, svc.Follow(ctx, follower.ID, "judy"))

	following, err := repos.follow.IsFollowing(ctx, follower.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// 关注数双向更新
	updatedTarget, err := repos.user.GetUserByID(ctx, target.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, updatedTarget.FollowerCount)

	updatedFollower, err := repos.user.GetUserByID(ctx, follower.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, updatedFollower.FollowingCount)

	require.NoError(t, svc.Unfollow(ctx, follower.ID, "judy"))
	following, err = repos.follow.IsFollowing(ctx, follower.ID, target.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowSelf(t *testing.T) {
	svc, repos := newFollowService(t)
	ctx := context.Background()

	user := createTestUserWithRepos(t, repos, "kate")
	assert.ErrorIs(t, svc.Follow(ctx, user.ID, "kate"), ErrUserFollowSelf)
}

func TestFollowDuplicate(t *testing.T) {
	svc, repos := newFollowService(t)
	ctx := context.Background()

	follower := createTestUserWithRepos(t, repos, "leo")
	_ = createTestUserWithRepos(t, repos, "mia")

	require.NoError(t, svc.Follow(ctx, follower.ID, "mia"))
	assert.ErrorIs(t, svc.Follow(ctx, follower.ID, "mia"), ErrUserFollowExist)

	// 重复关注不会重复累计计数
	target, err := repos.user.GetUserByUsername(ctx, "mia")
	require.NoError(t, err)
	assert.EqualValues(t, 1, target.FollowerCount)
}

func TestUnfollowNotFollowed(t *testing.T) {
	svc, repos := newFollowService(t)
	ctx := context.Background()

	follower := createTestUserWithRepos(t, repos, "nick")
	_ = createTestUserWithRepos(t, repos, "olga")

	// 取消未关注的用户按成功处理
	assert.NoError(t, svc.Unfollow(ctx, follower.ID, "olga"))
}

func TestFollowUnknownUser(t *testing.T) {
	svc, repos := newFollowService(t)
	ctx := context.Background()

	follower := createTestUserWithRepos(t, repos, "pete")
	assert.ErrorIs(t, svc.Follow(ctx, follower.ID, "ghost"), ErrUserNotFound)
}

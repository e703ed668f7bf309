package service

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/model"
	"BiuBiuStar/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(t *testing.T) (AdminService, *testRepos) {
	db := setupTestDB(t)
	repos := newTestRepos(db)
	return NewAdminService(repos.user, repos.post, repos.action, repos.event, repos.moderation), repos
}

func TestApprovePostOnce(t *testing.T) {
	svc, repos := newAdminService(t)
	ctx := context.Background()

	admin := createTestUserWithRepos(t, repos, "root1")
	author := createTestUserWithRepos(t, repos, "carl")
	post := createTestPost(t, repos, author.ID, model.PostStatusPending)

	require.NoError(t, svc.ApprovePost(ctx, admin.ID, post.ID))

	got, err := repos.post.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusPublished, got.Status)

	// 审核发布同步发帖计数
	gotAuthor, err := repos.user.GetUserByID(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, gotAuthor.PostCount)

	history, err := svc.GetModerationHistory(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.ModerationActionApproved, history[0].Action)
	assert.Equal(t, model.PostStatusPending, history[0].PreviousStatus)
	assert.Equal(t, model.PostStatusPublished, history[0].NewStatus)

	// 已审核的帖子不能再次审核，历史不追加
	assert.ErrorIs(t, svc.ApprovePost(ctx, admin.ID, post.ID), ErrPostReviewed)
	history, err = svc.GetModerationHistory(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRejectPostKeepsReason(t *testing.T) {
	svc, repos := newAdminService(t)
	ctx := context.Background()

	admin := createTestUserWithRepos(t, repos, "root2")
	author := createTestUserWithRepos(t, repos, "dan")
	post := createTestPost(t, repos, author.ID, model.PostStatusPending)

	reason := "内容不符合社区规范"
	require.NoError(t, svc.RejectPost(ctx, admin.ID, post.ID, &reason))

	got, err := repos.post.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, reason, *got.RejectionReason)

	history, err := svc.GetModerationHistory(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].Reason)
	assert.Equal(t, reason, *history[0].Reason)
}

func TestBatchModerateMixed(t *testing.T) {
	svc, repos := newAdminService(t)
	ctx := context.Background()

	admin := createTestUserWithRepos(t, repos, "root3")
	author := createTestUserWithRepos(t, repos, "ed")
	pending := createTestPost(t, repos, author.ID, model.PostStatusPending)
	published := createTestPost(t, repos, author.ID, model.PostStatusPublished)

	result, err := svc.BatchModerate(ctx, admin.ID, &dto.BatchModerateDTO{
		PostIDs: []uint64{pending.ID, published.ID, 99999},
		Action:  "approve",
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{pending.ID}, result.Moderated)
	assert.ElementsMatch(t, []uint64{published.ID, 99999}, result.Skipped)
}

func TestUpdateUserRolePermissions(t *testing.T) {
	svc, repos := newAdminService(t)
	ctx := context.Background()

	target := createTestUserWithRepos(t, repos, "fred")

	// 普通管理员不能授予管理员角色
	err := svc.UpdateUserRole(ctx, consts.RoleAdmin, target.ID, consts.RoleAdmin)
	assert.ErrorIs(t, err, ErrRoleForbidden)

	require.NoError(t, svc.UpdateUserRole(ctx, consts.RoleSuperAdmin, target.ID, consts.RoleAdmin))

	got, err := repos.user.GetUserByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.RoleAdmin, got.Role)

	// 降级管理员为普通用户，普通管理员同样无权
	err = svc.UpdateUserRole(ctx, consts.RoleAdmin, target.ID, consts.RoleUser)
	assert.ErrorIs(t, err, ErrRoleForbidden)

	require.NoError(t, svc.UpdateUserRole(ctx, consts.RoleSuperAdmin, target.ID, consts.RoleUser))
	got, err = repos.user.GetUserByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.RoleUser, got.Role)
}

func TestBanUser(t *testing.T) {
	svc, repos := newAdminService(t)
	ctx := context.Background()

	admin := createTestUserWithRepos(t, repos, "root4")
	target := createTestUserWithRepos(t, repos, "gus")

	assert.ErrorIs(t, svc.SetUserBan(ctx, admin.ID, admin.ID, true), ErrUserBanSelf)

	require.NoError(t, svc.SetUserBan(ctx, admin.ID, target.ID, true))
	got, err := repos.user.GetUserByID(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, got.IsBan)

	require.NoError(t, svc.SetUserBan(ctx, admin.ID, target.ID, false))
	got, err = repos.user.GetUserByID(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, got.IsBan)
}

func TestDashboardStats(t *testing.T) {
	svc, repos := newAdminService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "hal")
	createTestPost(t, repos, author.ID, model.PostStatusPublished)
	createTestPost(t, repos, author.ID, model.PostStatusPending)

	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.UserCount)
	assert.EqualValues(t, 2, stats.PostCount)
	assert.EqualValues(t, 1, stats.PendingCount)
	assert.Len(t, stats.UserTrend7D, 7)
	assert.Len(t, stats.PostTrend7D, 7)

	var todayUsers int64
	for _, point := range stats.UserTrend7D {
		todayUsers += point.Count
	}
	assert.EqualValues(t, 1, todayUsers)
}

func TestAdminDeletePostCounter(t *testing.T) {
	svc, repos := newAdminService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "kay")
	published := createTestPost(t, repos, author.ID, model.PostStatusPublished)
	pending := createTestPost(t, repos, author.ID, model.PostStatusPending)
	require.NoError(t, repos.user.AdjustCounter(ctx, author.ID, "post_count", 1))

	// 未发布过的帖子删除不动计数
	require.NoError(t, svc.DeletePost(ctx, pending.ID))
	got, err := repos.user.GetUserByID(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.PostCount)

	require.NoError(t, svc.DeletePost(ctx, published.ID))
	got, err = repos.user.GetUserByID(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, got.PostCount)
}

func TestAdminDeleteComment(t *testing.T) {
	svc, repos := newAdminService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "ivy")
	post := createTestPost(t, repos, author.ID, model.PostStatusPublished)
	comment := &model.PostComment{PostID: post.ID, UserID: author.ID, Content: "first"}
	require.NoError(t, repos.action.CreateComment(ctx, comment))

	comments, total, err := svc.ListComments(ctx, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, comments, 1)

	require.NoError(t, svc.DeleteComment(ctx, comment.ID))
	assert.ErrorIs(t, svc.DeleteComment(ctx, comment.ID), ErrCommentNotFound)
}

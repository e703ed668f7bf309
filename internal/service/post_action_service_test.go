package service

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/model"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostActionService(t *testing.T) (PostActionService, *testRepos) {
	db := setupTestDB(t)
	repos := newTestRepos(db)
	return NewPostActionService(repos.action, repos.post, repos.user), repos
}

func TestLikeAndUnlike(t *testing.T) {
	svc, repos := newPostActionService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "jack")
	fan := createTestUserWithRepos(t, repos, "kira")
	post := createTestPost(t, repos, author.ID, model.PostStatusPublished)

	require.NoError(t, svc.LikePost(ctx, fan.ID, post.ID))

	count, err := svc.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// 重复点赞报错，计数不变
	assert.ErrorIs(t, svc.LikePost(ctx, fan.ID, post.ID), ErrLikeExist)
	count, err = svc.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.UnlikePost(ctx, fan.ID, post.ID))
	count, err = svc.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// 取消点赞幂等
	assert.NoError(t, svc.UnlikePost(ctx, fan.ID, post.ID))
}

func TestLikeHiddenPost(t *testing.T) {
	svc, repos := newPostActionService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "liam")
	fan := createTestUserWithRepos(t, repos, "mia")
	draft := createTestPost(t, repos, author.ID, model.PostStatusDraft)

	assert.ErrorIs(t, svc.LikePost(ctx, fan.ID, draft.ID), ErrPostNotFound)
	assert.ErrorIs(t, svc.LikePost(ctx, fan.ID, 99999), ErrPostNotFound)

	_, err := svc.GetComments(ctx, fan.ID, draft.ID, 10, 0)
	assert.ErrorIs(t, err, ErrPostNotFound)

	// 作者本人不受限
	assert.NoError(t, svc.LikePost(ctx, author.ID, draft.ID))
}

func TestCommentsChronological(t *testing.T) {
	svc, repos := newPostActionService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "nora")
	post := createTestPost(t, repos, author.ID, model.PostStatusPublished)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateComment(ctx, author.ID, post.ID, &dto.CommentCreateDTO{
			Content: fmt.Sprintf("第 %d 条评论", i),
		})
		require.NoError(t, err)
	}

	comments, err := svc.GetComments(ctx, author.ID, post.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "第 0 条评论", comments[0].Content)
	assert.Equal(t, "第 2 条评论", comments[2].Content)
	assert.Equal(t, "nora", comments[0].Username)

	count, err := svc.GetCommentCount(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestCommentOnHiddenPost(t *testing.T) {
	svc, repos := newPostActionService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "omar")
	pending := createTestPost(t, repos, author.ID, model.PostStatusPending)

	_, err := svc.CreateComment(ctx, author.ID, pending.ID, &dto.CommentCreateDTO{Content: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

package service

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService(t *testing.T) (PostService, *testRepos) {
	db := setupTestDB(t)
	repos := newTestRepos(db)
	return NewPostService(repos.post, repos.action, repos.user, repos.follow), repos
}

func createTestPost(t *testing.T, repos *testRepos, userID uint64, status string) *model.Post {
	t.Helper()
	post := &model.Post{
		UserID:  userID,
		Title:   "测试标题",
		Content: "测试内容",
		Status:  status,
	}
	require.NoError(t, repos.post.CreatePost(context.Background(), post))
	return post
}

func TestTimelineOnlyPublished(t *testing.T) {
	svc, repos := newPostService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "amy")
	createTestPost(t, repos, author.ID, model.PostStatusPublished)
	createTestPost(t, repos, author.ID, model.PostStatusDraft)
	createTestPost(t, repos, author.ID, model.PostStatusPending)
	createTestPost(t, repos, author.ID, model.PostStatusRejected)

	posts, total, err := svc.ListPosts(ctx, 0, PostListTimeline, "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, model.PostStatusPublished, posts[0].Status)
}

func TestGetPostVisibility(t *testing.T) {
	svc, repos := newPostService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "ben")
	stranger := createTestUserWithRepos(t, repos, "cleo")
	pending := createTestPost(t, repos, author.ID, model.PostStatusPending)

	// 非发布态帖子只有作者可见
	postDTO, err := svc.GetPost(ctx, author.ID, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusPending, postDTO.Status)

	_, err = svc.GetPost(ctx, stranger.ID, pending.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.GetPost(ctx, 0, pending.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFollowingFeedIncludesSelf(t *testing.T) {
	svc, repos := newPostService(t)
	ctx := context.Background()

	me := createTestUserWithRepos(t, repos, "dora")
	friend := createTestUserWithRepos(t, repos, "eli")
	outsider := createTestUserWithRepos(t, repos, "fay")

	_, err := repos.follow.CreateUserFollow(ctx, &model.UserFollow{FollowerID: me.ID, FollowingID: friend.ID})
	require.NoError(t, err)

	createTestPost(t, repos, me.ID, model.PostStatusPublished)
	createTestPost(t, repos, friend.ID, model.PostStatusPublished)
	createTestPost(t, repos, outsider.ID, model.PostStatusPublished)

	posts, total, err := svc.ListPosts(ctx, me.ID, PostListFollowing, "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	for _, post := range posts {
		assert.NotEqual(t, outsider.ID, post.UserID)
	}
}

func TestFollowingFeedRequiresAuth(t *testing.T) {
	svc, _ := newPostService(t)

	_, _, err := svc.ListPosts(context.Background(), 0, PostListFollowing, "", 10, 0)
	assert.ErrorIs(t, err, UnauthorizedError)
}

func TestListPostsUnknownType(t *testing.T) {
	svc, _ := newPostService(t)

	_, _, err := svc.ListPosts(context.Background(), 0, "weird", "", 10, 0)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	svc, repos := newPostService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "gil")
	stranger := createTestUserWithRepos(t, repos, "hana")
	post := createTestPost(t, repos, author.ID, model.PostStatusPublished)

	assert.ErrorIs(t, svc.DeletePost(ctx, stranger.ID, post.ID), ErrNotPostOwner)
	require.NoError(t, svc.DeletePost(ctx, author.ID, post.ID))

	_, err := svc.GetPost(ctx, author.ID, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePostCleansActions(t *testing.T) {
	svc, repos := newPostService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "ida")
	fan := createTestUserWithRepos(t, repos, "joy")
	post := createTestPost(t, repos, author.ID, model.PostStatusPublished)

	_, err := repos.action.CreateLike(ctx, &model.Like{UserID: fan.ID, PostID: post.ID})
	require.NoError(t, err)
	require.NoError(t, repos.action.CreateComment(ctx, &model.PostComment{
		PostID: post.ID, UserID: fan.ID, Content: "不错",
	}))

	require.NoError(t, svc.DeletePost(ctx, author.ID, post.ID))

	likeCount, err := repos.action.GetLikeCountByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, likeCount)

	_, total, err := repos.action.ListComments(ctx, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreatePostDefaultsPublished(t *testing.T) {
	svc, repos := newPostService(t)
	ctx := context.Background()

	author := createTestUserWithRepos(t, repos, "iris")
	postDTO, err := svc.CreatePost(ctx, author.ID, &dto.CreatePostDTO{Content: "hello world"})
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusPublished, postDTO.Status)

	// 发帖计数联动
	updated, err := repos.user.GetUserByID(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, updated.PostCount)
}

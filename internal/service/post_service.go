package service

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/model"
	"BiuBiuStar/internal/pkg/consts"
	"BiuBiuStar/internal/pkg/redis"
	"BiuBiuStar/internal/repository"
	"context"
	"strconv"

	"github.com/jinzhu/copier"
)

// PostListType 列表口径
const (
	PostListTimeline  = "timeline"
	PostListUser      = "user"
	PostListFollowing = "following"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, createDTO *dto.CreatePostDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, callerID, postID uint64) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, callerID uint64, listType, username string, limit, offset int) ([]*dto.PostDTO, int64, error)
	ListPostsByUsername(ctx context.Context, callerID uint64, username string, limit, offset int) ([]*dto.PostDTO, int64, error)
	DeletePost(ctx context.Context, userID, postID uint64) error
}

type postServiceImpl struct {
	postRepo   repository.PostRepo
	actionRepo repository.PostActionRepo
	userRepo   repository.UserRepo
	followRepo repository.UserFollowRepo
}

func NewPostService(
	postRepo repository.PostRepo,
	actionRepo repository.PostActionRepo,
	userRepo repository.UserRepo,
	followRepo repository.UserFollowRepo,
) PostService {
	return &postServiceImpl{
		postRepo:   postRepo,
		actionRepo: actionRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, createDTO *dto.CreatePostDTO) (*dto.PostDTO, error) {
	status := createDTO.Status
	if status == "" {
		status = model.PostStatusPublished
	}

	post := &model.Post{
		UserID:    userID,
		Title:     createDTO.Title,
		Content:   createDTO.Content,
		Category:  createDTO.Category,
		Tags:      createDTO.Tags,
		ImageURLs: createDTO.ImageURLs,
		Location:  createDTO.Location,
		Status:    status,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	if status == model.PostStatusPublished {
		_ = s.userRepo.AdjustCounter(ctx, userID, "post_count", 1)
	}

	dtos, err := s.attachAndConvert(ctx, userID, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

// GetPost 非已发布的帖子只有作者本人可见
func (s *postServiceImpl) GetPost(ctx context.Context, callerID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Status != model.PostStatusPublished && post.UserID != callerID {
		return nil, ErrPostNotFound
	}

	dtos, err := s.attachAndConvert(ctx, callerID, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context, callerID uint64, listType, username string, limit, offset int) ([]*dto.PostDTO, int64, error) {
	filter := &repository.PostListFilter{
		Statuses: []string{model.PostStatusPublished},
		Limit:    limit,
		Offset:   offset,
	}

	switch listType {
	case PostListUser:
		user, err := s.userRepo.GetUserByUsername(ctx, username)
		if err != nil {
			return nil, 0, err
		}
		if user == nil {
			return nil, 0, ErrUserNotFound
		}
		filter.UserIDs = []uint64{user.ID}
	case PostListFollowing:
		if callerID == 0 {
			return nil, 0, UnauthorizedError
		}
		ids, err := s.followRepo.GetFollowingIDs(ctx, callerID)
		if err != nil {
			return nil, 0, err
		}
		// 关注流并入自己的帖子
		filter.UserIDs = append(ids, callerID)
	case PostListTimeline, "":
		// 默认时间线，仅 published
	default:
		return nil, 0, ErrParamInvalid
	}

	posts, total, err := s.postRepo.ListPosts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	dtos, err := s.attachAndConvert(ctx, callerID, posts)
	if err != nil {
		return nil, 0, err
	}
	return dtos, total, nil
}

func (s *postServiceImpl) ListPostsByUsername(ctx context.Context, callerID uint64, username string, limit, offset int) ([]*dto.PostDTO, int64, error) {
	return s.ListPosts(ctx, callerID, PostListUser, username, limit, offset)
}

// DeletePost 仅作者可删，点赞和评论在仓储层一并清掉
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}

	if err = s.postRepo.DeletePost(ctx, postID); err != nil {
		return err
	}
	if post.Status == model.PostStatusPublished {
		_ = s.userRepo.AdjustCounter(ctx, userID, "post_count", -1)
	}
	s.invalidateCountCache(ctx, postID)
	return nil
}

// attachAndConvert 对一页帖子批量补齐计数、点赞状态与作者展示字段，
// 两次 IN 查询替代逐条回表。
func (s *postServiceImpl) attachAndConvert(ctx context.Context, callerID uint64, posts []*model.Post) ([]*dto.PostDTO, error) {
	if len(posts) == 0 {
		return []*dto.PostDTO{}, nil
	}

	postIDs := make([]uint64, 0, len(posts))
	userIDSet := make(map[uint64]struct{}, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
		userIDSet[post.UserID] = struct{}{}
	}

	likeCounts, err := s.actionRepo.GetLikeCountsByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.actionRepo.GetCommentCountsByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.actionRepo.GetLikedPostIDs(ctx, callerID, postIDs)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint64, 0, len(userIDSet))
	for userID := range userIDSet {
		userIDs = append(userIDs, userID)
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	authors := make(map[uint64]*model.User, len(users))
	for _, user := range users {
		authors[user.ID] = user
	}

	dtos := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		postDTO := &dto.PostDTO{}
		_ = copier.Copy(postDTO, post)
		postDTO.LikeCount = likeCounts[post.ID]
		postDTO.CommentCount = commentCounts[post.ID]
		postDTO.IsLiked = liked[post.ID]
		if author, ok := authors[post.UserID]; ok {
			postDTO.Username = author.Username
			postDTO.DisplayName = author.DisplayName
			postDTO.AvatarURL = author.AvatarURL
		}
		dtos = append(dtos, postDTO)
	}
	return dtos, nil
}

func (s *postServiceImpl) invalidateCountCache(ctx context.Context, postID uint64) {
	idStr := strconv.FormatUint(postID, 10)
	_ = redis.DeleteKey(ctx,
		consts.PostLikeCountKey+idStr,
		consts.PostCommentCountKey+idStr,
	)
}

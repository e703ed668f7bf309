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

const countCacheExpiration = 10 * time.Minute

type PostActionService interface {
	LikePost(ctx context.Context, userID, postID uint64) error
	UnlikePost(ctx context.Context, userID, postID uint64) error
	GetLikeCount(ctx context.Context, postID uint64) (int64, error)
	CreateComment(ctx context.Context, userID, postID uint64, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	GetComments(ctx context.Context, callerID, postID uint64, limit, offset int) ([]*dto.CommentDTO, error)
	GetCommentCount(ctx context.Context, postID uint64) (int64, error)
}

type postActionServiceImpl struct {
	actionRepo repository.PostActionRepo
	postRepo   repository.PostRepo
	userRepo   repository.UserRepo
}

func NewPostActionService(
	actionRepo repository.PostActionRepo,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
) PostActionService {
	return &postActionServiceImpl{
		actionRepo: actionRepo,
		postRepo:   postRepo,
		userRepo:   userRepo,
	}
}

// LikePost 冲突插入一步到位，影响行数为 0 即重复点赞
func (s *postActionServiceImpl) LikePost(ctx context.Context, userID, postID uint64) error {
	if err := s.checkPostVisible(ctx, userID, postID); err != nil {
		return err
	}

	rows, err := s.actionRepo.CreateLike(ctx, &model.Like{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLikeExist
	}

	_ = redis.DeleteKey(ctx, consts.PostLikeCountKey+strconv.FormatUint(postID, 10))
	return nil
}

// UnlikePost 未点赞时直接视为成功
func (s *postActionServiceImpl) UnlikePost(ctx context.Context, userID, postID uint64) error {
	if err := s.checkPostVisible(ctx, userID, postID); err != nil {
		return err
	}

	rows, err := s.actionRepo.DeleteLike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if rows > 0 {
		_ = redis.DeleteKey(ctx, consts.PostLikeCountKey+strconv.FormatUint(postID, 10))
	}
	return nil
}

func (s *postActionServiceImpl) GetLikeCount(ctx context.Context, postID uint64) (int64, error) {
	return s.getCountCached(ctx, postID, consts.PostLikeCountKey, s.actionRepo.GetLikeCountByPostID)
}

func (s *postActionServiceImpl) CreateComment(ctx context.Context, userID, postID uint64, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	if err := s.checkPostVisible(ctx, userID, postID); err != nil {
		return nil, err
	}

	comment := &model.PostComment{
		PostID:  postID,
		UserID:  userID,
		Content: createDTO.Content,
	}
	if err := s.actionRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	_ = redis.DeleteKey(ctx, consts.PostCommentCountKey+strconv.FormatUint(postID, 10))

	dtos, err := s.convertComments(ctx, []*model.PostComment{comment})
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

func (s *postActionServiceImpl) GetComments(ctx context.Context, callerID, postID uint64, limit, offset int) ([]*dto.CommentDTO, error) {
	if err := s.checkPostVisible(ctx, callerID, postID); err != nil {
		return nil, err
	}
	comments, err := s.actionRepo.GetCommentsByPostID(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.convertComments(ctx, comments)
}

func (s *postActionServiceImpl) GetCommentCount(ctx context.Context, postID uint64) (int64, error) {
	return s.getCountCached(ctx, postID, consts.PostCommentCountKey, s.actionRepo.GetCommentCountByPostID)
}

// checkPostVisible 非已发布的帖子对外等同于不存在，只有作者能操作
func (s *postActionServiceImpl) checkPostVisible(ctx context.Context, callerID, postID uint64) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.Status != model.PostStatusPublished && post.UserID != callerID {
		return ErrPostNotFound
	}
	return nil
}

func (s *postActionServiceImpl) getCountCached(
	ctx context.Context,
	postID uint64,
	keyPrefix string,
	fetchDB func(ctx context.Context, postID uint64) (int64, error),
) (int64, error) {
	key := keyPrefix + strconv.FormatUint(postID, 10)

	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	if err != redisv9.Nil {
		return 0, err
	}

	count, err = fetchDB(ctx, postID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, countCacheExpiration)
	return count, nil
}

func (s *postActionServiceImpl) convertComments(ctx context.Context, comments []*model.PostComment) ([]*dto.CommentDTO, error) {
	if len(comments) == 0 {
		return []*dto.CommentDTO{}, nil
	}

	userIDSet := make(map[uint64]struct{}, len(comments))
	for _, comment := range comments {
		userIDSet[comment.UserID] = struct{}{}
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

	dtos := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		commentDTO := &dto.CommentDTO{}
		_ = copier.Copy(commentDTO, comment)
		if author, ok := authors[comment.UserID]; ok {
			commentDTO.Username = author.Username
			commentDTO.DisplayName = author.DisplayName
			commentDTO.AvatarURL = author.AvatarURL
		}
		dtos = append(dtos, commentDTO)
	}
	return dtos, nil
}

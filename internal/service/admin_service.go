package service

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/model"
	"BiuBiuStar/internal/pkg/consts"
	"BiuBiuStar/internal/pkg/redis"
	"BiuBiuStar/internal/repository"
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

const dashboardCacheExpiration = 5 * time.Minute

type AdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error)

	ListUsers(ctx context.Context, filter *repository.UserListFilter) ([]*dto.AdminUserDTO, int64, error)
	UpdateUserRole(ctx context.Context, operatorRole string, targetID uint64, role string) error
	UpdateUserProfile(ctx context.Context, targetID uint64, updateDTO *dto.UpdateProfileDTO) error
	SetUserVerified(ctx context.Context, targetID uint64, verified bool) error
	SetUserBan(ctx context.Context, operatorID, targetID uint64, ban bool) error

	ListPosts(ctx context.Context, status string, limit, offset int) ([]*dto.PostDTO, int64, error)
	ListPendingPosts(ctx context.Context, limit, offset int) ([]*dto.PostDTO, int64, error)
	ApprovePost(ctx context.Context, adminID, postID uint64) error
	RejectPost(ctx context.Context, adminID, postID uint64, reason *string) error
	BatchModerate(ctx context.Context, adminID uint64, batchDTO *dto.BatchModerateDTO) (*dto.BatchModerateResultDTO, error)
	GetModerationHistory(ctx context.Context, postID uint64) ([]*dto.ModerationHistoryDTO, error)
	GetModerationStats(ctx context.Context) (*dto.ModerationStatsDTO, error)
	DeletePost(ctx context.Context, postID uint64) error

	ListComments(ctx context.Context, limit, offset int) ([]*dto.CommentDTO, int64, error)
	DeleteComment(ctx context.Context, commentID uint64) error

	ListEvents(ctx context.Context, filter *repository.EventListFilter) ([]*dto.EventDTO, int64, error)
	DeleteEvent(ctx context.Context, eventID uint64) error
}

type adminServiceImpl struct {
	userRepo       repository.UserRepo
	postRepo       repository.PostRepo
	actionRepo     repository.PostActionRepo
	eventRepo      repository.EventRepo
	moderationRepo repository.ModerationRepo
}

func NewAdminService(
	userRepo repository.UserRepo,
	postRepo repository.PostRepo,
	actionRepo repository.PostActionRepo,
	eventRepo repository.EventRepo,
	moderationRepo repository.ModerationRepo,
) AdminService {
	return &adminServiceImpl{
		userRepo:       userRepo,
		postRepo:       postRepo,
		actionRepo:     actionRepo,
		eventRepo:      eventRepo,
		moderationRepo: moderationRepo,
	}
}

// GetDashboardStats 总量计数并行聚合，近 7 天趋势按天分桶，整体短缓存
func (s *adminServiceImpl) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if cached, err := redis.GetValue(ctx, consts.DashboardStatsKey); err == nil {
		stats := &dto.DashboardStatsDTO{}
		if err = json.Unmarshal([]byte(cached), stats); err == nil {
			return stats, nil
		}
	}

	stats := &dto.DashboardStatsDTO{}
	since := time.Now().AddDate(0, 0, -6).Truncate(24 * time.Hour)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.UserCount, err = s.userRepo.CountUsers(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.PostCount, err = s.postRepo.CountPosts(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.EventCount, err = s.eventRepo.CountEvents(gCtx)
		return err
	})
	g.Go(func() error {
		counts, err := s.postRepo.CountPostsByStatus(gCtx)
		if err != nil {
			return err
		}
		stats.PendingCount = counts[model.PostStatusPending]
		return nil
	})
	g.Go(func() error {
		times, err := s.userRepo.GetCreatedAtSince(gCtx, since)
		if err != nil {
			return err
		}
		stats.UserTrend7D = bucketByDay(times, since)
		return nil
	})
	g.Go(func() error {
		times, err := s.postRepo.GetCreatedAtSince(gCtx, since)
		if err != nil {
			return err
		}
		stats.PostTrend7D = bucketByDay(times, since)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(stats); err == nil {
		if err = redis.SetWithExpiration(ctx, consts.DashboardStatsKey, string(raw), dashboardCacheExpiration); err != nil {
			slog.WarnContext(ctx, "刷新看板缓存失败", "error", err)
		}
	}
	return stats, nil
}

// bucketByDay 补零分桶，保证每个日期都有数据点
func bucketByDay(times []time.Time, since time.Time) []dto.TrendPointDTO {
	counts := make(map[string]int64, 7)
	for _, t := range times {
		counts[t.Format("2006-01-02")]++
	}
	points := make([]dto.TrendPointDTO, 0, 7)
	for i := 0; i < 7; i++ {
		date := since.AddDate(0, 0, i).Format("2006-01-02")
		points = append(points, dto.TrendPointDTO{Date: date, Count: counts[date]})
	}
	return points
}

func (s *adminServiceImpl) ListUsers(ctx context.Context, filter *repository.UserListFilter) ([]*dto.AdminUserDTO, int64, error) {
	users, total, err := s.userRepo.ListUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*dto.AdminUserDTO, 0, len(users))
	for _, user := range users {
		userDTO := &dto.AdminUserDTO{}
		_ = copier.Copy(&userDTO.UserDTO, user)
		userDTO.IsBan = user.IsBan
		dtos = append(dtos, userDTO)
	}
	return dtos, total, nil
}

// UpdateUserRole 授予 admin/super_admin、或改动超级管理员，都只有超级管理员有权限
func (s *adminServiceImpl) UpdateUserRole(ctx context.Context, operatorRole string, targetID uint64, role string) error {
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	// 授予管理员角色，或改动管理员账号，都只有超级管理员能做
	grantsElevated := role == consts.RoleAdmin || role == consts.RoleSuperAdmin
	targetElevated := target.Role == consts.RoleAdmin || target.Role == consts.RoleSuperAdmin
	if (grantsElevated || targetElevated) && operatorRole != consts.RoleSuperAdmin {
		return ErrRoleForbidden
	}

	return s.userRepo.UpdateRole(ctx, targetID, role)
}

func (s *adminServiceImpl) UpdateUserProfile(ctx context.Context, targetID uint64, updateDTO *dto.UpdateProfileDTO) error {
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

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

	if err = s.userRepo.UpdateProfile(ctx, targetID, fields); err != nil {
		return err
	}
	s.invalidateProfile(ctx, target.Username)
	return nil
}

func (s *adminServiceImpl) SetUserVerified(ctx context.Context, targetID uint64, verified bool) error {
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if err = s.userRepo.SetVerified(ctx, targetID, verified); err != nil {
		return err
	}
	s.invalidateProfile(ctx, target.Username)
	return nil
}

func (s *adminServiceImpl) SetUserBan(ctx context.Context, operatorID, targetID uint64, ban bool) error {
	if operatorID == targetID {
		return ErrUserBanSelf
	}
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if err = s.userRepo.SetBan(ctx, targetID, ban); err != nil {
		return err
	}
	s.invalidateProfile(ctx, target.Username)
	return nil
}

func (s *adminServiceImpl) ListPosts(ctx context.Context, status string, limit, offset int) ([]*dto.PostDTO, int64, error) {
	filter := &repository.PostListFilter{Limit: limit, Offset: offset}
	if status != "" {
		filter.Statuses = []string{status}
	}
	return s.listAndConvertPosts(ctx, filter)
}

// ListPendingPosts 审核队列，先提交的先出队
func (s *adminServiceImpl) ListPendingPosts(ctx context.Context, limit, offset int) ([]*dto.PostDTO, int64, error) {
	filter := &repository.PostListFilter{
		Statuses:    []string{model.PostStatusPending},
		Limit:       limit,
		Offset:      offset,
		OldestFirst: true,
	}
	return s.listAndConvertPosts(ctx, filter)
}

func (s *adminServiceImpl) ApprovePost(ctx context.Context, adminID, postID uint64) error {
	return s.moderate(ctx, adminID, postID, model.ModerationActionApproved, model.PostStatusPublished, nil)
}

func (s *adminServiceImpl) RejectPost(ctx context.Context, adminID, postID uint64, reason *string) error {
	return s.moderate(ctx, adminID, postID, model.ModerationActionRejected, model.PostStatusRejected, reason)
}

// moderate 条件更新保证同一帖子只被审核一次，流水与状态变更一一对应
func (s *adminServiceImpl) moderate(ctx context.Context, adminID, postID uint64, action, newStatus string, reason *string) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostReviewed
	}

	rows, err := s.moderationRepo.UpdateStatusFromPending(ctx, postID, newStatus, reason, adminID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostReviewed
	}

	// 审核通过即发布，补上作者的发帖计数
	if newStatus == model.PostStatusPublished {
		if err = s.userRepo.AdjustCounter(ctx, post.UserID, "post_count", 1); err != nil {
			slog.WarnContext(ctx, "回调帖子计数失败", "user_id", post.UserID, "error", err)
		}
	}

	return s.moderationRepo.CreateHistory(ctx, &model.PostModerationHistory{
		PostID:         postID,
		AdminID:        adminID,
		Action:         action,
		PreviousStatus: model.PostStatusPending,
		NewStatus:      newStatus,
		Reason:         reason,
	})
}

// BatchModerate 逐条处理，单条失败不影响其余，结果分 moderated/skipped 两组返回
func (s *adminServiceImpl) BatchModerate(ctx context.Context, adminID uint64, batchDTO *dto.BatchModerateDTO) (*dto.BatchModerateResultDTO, error) {
	action := model.ModerationActionApproved
	newStatus := model.PostStatusPublished
	if batchDTO.Action == "reject" {
		action = model.ModerationActionRejected
		newStatus = model.PostStatusRejected
	}

	result := &dto.BatchModerateResultDTO{
		Moderated: []uint64{},
		Skipped:   []uint64{},
	}
	for _, postID := range batchDTO.PostIDs {
		if err := s.moderate(ctx, adminID, postID, action, newStatus, batchDTO.Reason); err != nil {
			result.Skipped = append(result.Skipped, postID)
			continue
		}
		result.Moderated = append(result.Moderated, postID)
	}
	return result, nil
}

func (s *adminServiceImpl) GetModerationHistory(ctx context.Context, postID uint64) ([]*dto.ModerationHistoryDTO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	history, err := s.moderationRepo.ListHistoryByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*dto.ModerationHistoryDTO, 0, len(history))
	for _, record := range history {
		historyDTO := &dto.ModerationHistoryDTO{}
		_ = copier.Copy(historyDTO, record)
		dtos = append(dtos, historyDTO)
	}
	return dtos, nil
}

func (s *adminServiceImpl) GetModerationStats(ctx context.Context) (*dto.ModerationStatsDTO, error) {
	stats := &dto.ModerationStatsDTO{}
	today := time.Now().Truncate(24 * time.Hour)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.StatusCounts, err = s.postRepo.CountPostsByStatus(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TodayApproved, err = s.moderationRepo.CountActionsSince(gCtx, model.ModerationActionApproved, today)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TodayRejected, err = s.moderationRepo.CountActionsSince(gCtx, model.ModerationActionRejected, today)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *adminServiceImpl) DeletePost(ctx context.Context, postID uint64) error {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if err = s.postRepo.DeletePost(ctx, postID); err != nil {
		return err
	}
	// 只有发布过的帖子计入过 post_count
	if post.Status == model.PostStatusPublished {
		if err = s.userRepo.AdjustCounter(ctx, post.UserID, "post_count", -1); err != nil {
			slog.WarnContext(ctx, "回调帖子计数失败", "user_id", post.UserID, "error", err)
		}
	}
	return nil
}

func (s *adminServiceImpl) ListComments(ctx context.Context, limit, offset int) ([]*dto.CommentDTO, int64, error) {
	comments, total, err := s.actionRepo.ListComments(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	userIDs := make([]uint64, 0, len(comments))
	for _, comment := range comments {
		userIDs = append(userIDs, comment.UserID)
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, 0, err
	}
	userMap := make(map[uint64]*model.User, len(users))
	for _, user := range users {
		userMap[user.ID] = user
	}

	dtos := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		commentDTO := &dto.CommentDTO{}
		_ = copier.Copy(commentDTO, comment)
		if author, ok := userMap[comment.UserID]; ok {
			commentDTO.Username = author.Username
			commentDTO.DisplayName = author.DisplayName
			commentDTO.AvatarURL = author.AvatarURL
		}
		dtos = append(dtos, commentDTO)
	}
	return dtos, total, nil
}

func (s *adminServiceImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	comment, err := s.actionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if err = s.actionRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	_ = redis.DeleteKey(ctx, consts.PostCommentCountKey+strconv.FormatUint(comment.PostID, 10))
	return nil
}

func (s *adminServiceImpl) ListEvents(ctx context.Context, filter *repository.EventListFilter) ([]*dto.EventDTO, int64, error) {
	events, total, err := s.eventRepo.ListEvents(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	eventIDs := make([]uint64, 0, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
	}
	counts, err := s.eventRepo.GetParticipantCountsByEventIDs(ctx, eventIDs)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*dto.EventDTO, 0, len(events))
	for _, event := range events {
		eventDTO := &dto.EventDTO{}
		_ = copier.Copy(eventDTO, event)
		eventDTO.ParticipantCount = counts[event.ID]
		dtos = append(dtos, eventDTO)
	}
	return dtos, total, nil
}

func (s *adminServiceImpl) DeleteEvent(ctx context.Context, eventID uint64) error {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	return s.eventRepo.DeleteEvent(ctx, eventID)
}

// listAndConvertPosts 管理端帖子视图不做调用者可见性过滤，补齐互动计数与作者
func (s *adminServiceImpl) listAndConvertPosts(ctx context.Context, filter *repository.PostListFilter) ([]*dto.PostDTO, int64, error) {
	posts, total, err := s.postRepo.ListPosts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if len(posts) == 0 {
		return []*dto.PostDTO{}, total, nil
	}

	postIDs := make([]uint64, 0, len(posts))
	userIDs := make([]uint64, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
		userIDs = append(userIDs, post.UserID)
	}

	likeCounts, err := s.actionRepo.GetLikeCountsByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, 0, err
	}
	commentCounts, err := s.actionRepo.GetCommentCountsByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, 0, err
	}
	userMap := make(map[uint64]*model.User, len(users))
	for _, user := range users {
		userMap[user.ID] = user
	}

	dtos := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		postDTO := &dto.PostDTO{}
		_ = copier.Copy(postDTO, post)
		postDTO.LikeCount = likeCounts[post.ID]
		postDTO.CommentCount = commentCounts[post.ID]
		if author, ok := userMap[post.UserID]; ok {
			postDTO.Username = author.Username
			postDTO.DisplayName = author.DisplayName
			postDTO.AvatarURL = author.AvatarURL
		}
		dtos = append(dtos, postDTO)
	}
	return dtos, total, nil
}

func (s *adminServiceImpl) invalidateProfile(ctx context.Context, username string) {
	if err := redis.DeleteKey(ctx, consts.UserProfileKey+username); err != nil {
		slog.WarnContext(ctx, "清理用户资料缓存失败", "username", username, "error", err)
	}
}

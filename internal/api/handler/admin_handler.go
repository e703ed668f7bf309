package handler

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/pkg/response"
	"BiuBiuStar/internal/pkg/util"
	"BiuBiuStar/internal/repository"
	"BiuBiuStar/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminSvc   service.AdminService
	contactSvc service.ContactService
}

func NewAdminHandler(adminSvc service.AdminService, contactSvc service.ContactService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, contactSvc: contactSvc}
}

func (s *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := s.adminSvc.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

func (s *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := util.GetPagination(c)
	filter := &repository.UserListFilter{
		Keyword: c.Query("q"),
		Role:    c.Query("role"),
		Limit:   limit,
		Offset:  offset,
	}
	if verified := c.Query("is_verified"); verified != "" {
		value := verified == "true"
		filter.IsVerified = &value
	}

	users, total, err := s.adminSvc.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.PageDTO{
		Items:   users,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(users)) < total,
	})
}

func (s *AdminHandler) UpdateUserRole(c *gin.Context) {
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var roleDTO dto.UpdateUserRoleDTO
	if err = c.ShouldBind(&roleDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&roleDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = s.adminSvc.UpdateUserRole(c.Request.Context(), c.GetString("role"), targetID, roleDTO.Role); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) UpdateUserProfile(c *gin.Context) {
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var updateDTO dto.UpdateProfileDTO
	if err = c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = s.adminSvc.UpdateUserProfile(c.Request.Context(), targetID, &updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) SetUserVerified(c *gin.Context) {
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var verifyDTO dto.UpdateUserVerifyDTO
	if err = c.ShouldBind(&verifyDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = s.adminSvc.SetUserVerified(c.Request.Context(), targetID, verifyDTO.IsVerified); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) BanUser(c *gin.Context) {
	s.setBan(c, true)
}

func (s *AdminHandler) UnbanUser(c *gin.Context) {
	s.setBan(c, false)
}

func (s *AdminHandler) setBan(c *gin.Context, ban bool) {
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.adminSvc.SetUserBan(c.Request.Context(), getUID(c), targetID, ban); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) ListPosts(c *gin.Context) {
	limit, offset := util.GetPagination(c)
	posts, total, err := s.adminSvc.ListPosts(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.PageDTO{
		Items:   posts,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(posts)) < total,
	})
}

func (s *AdminHandler) ListPendingPosts(c *gin.Context) {
	limit, offset := util.GetPagination(c)
	posts, total, err := s.adminSvc.ListPendingPosts(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.PageDTO{
		Items:   posts,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(posts)) < total,
	})
}

func (s *AdminHandler) ApprovePost(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.adminSvc.ApprovePost(c.Request.Context(), getUID(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) RejectPost(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var moderateDTO dto.ModerateDTO
	if err = c.ShouldBind(&moderateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&moderateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = s.adminSvc.RejectPost(c.Request.Context(), getUID(c), postID, moderateDTO.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) BatchModerate(c *gin.Context) {
	var batchDTO dto.BatchModerateDTO
	if err := c.ShouldBind(&batchDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&batchDTO); err != nil {
		response.Error(c, err)
		return
	}
	result, err := s.adminSvc.BatchModerate(c.Request.Context(), getUID(c), &batchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *AdminHandler) ModerationHistory(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	history, err := s.adminSvc.GetModerationHistory(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, history)
}

func (s *AdminHandler) ModerationStats(c *gin.Context) {
	stats, err := s.adminSvc.GetModerationStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

func (s *AdminHandler) DeletePost(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.adminSvc.DeletePost(c.Request.Context(), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) ListComments(c *gin.Context) {
	limit, offset := util.GetPagination(c)
	comments, total, err := s.adminSvc.ListComments(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.PageDTO{
		Items:   comments,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(comments)) < total,
	})
}

func (s *AdminHandler) DeleteComment(c *gin.Context) {
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.adminSvc.DeleteComment(c.Request.Context(), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) ListEvents(c *gin.Context) {
	limit, offset := util.GetPagination(c)
	filter := &repository.EventListFilter{
		Status:   c.DefaultQuery("status", "all"),
		Location: c.Query("location"),
		Limit:    limit,
		Offset:   offset,
	}
	events, total, err := s.adminSvc.ListEvents(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.PageDTO{
		Items:   events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}

func (s *AdminHandler) DeleteEvent(c *gin.Context) {
	eventID, err := parseIDParam(c, "event_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.adminSvc.DeleteEvent(c.Request.Context(), eventID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) ContactStats(c *gin.Context) {
	stats, err := s.contactSvc.GetContactStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

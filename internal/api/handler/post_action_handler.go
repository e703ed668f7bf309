package handler

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/pkg/response"
	"BiuBiuStar/internal/pkg/util"
	"BiuBiuStar/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	actionSvc service.PostActionService
}

func NewPostActionHandler(actionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{actionSvc: actionSvc}
}

func (s *PostActionHandler) LikePost(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.actionSvc.LikePost(c.Request.Context(), getUID(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostActionHandler) UnlikePost(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.actionSvc.UnlikePost(c.Request.Context(), getUID(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostActionHandler) GetComments(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, offset := util.GetPagination(c)
	comments, err := s.actionSvc.GetComments(c.Request.Context(), getUID(c), postID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *PostActionHandler) CreateComment(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var createDTO dto.CommentCreateDTO
	if err = c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	commentDTO, err := s.actionSvc.CreateComment(c.Request.Context(), getUID(c), postID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, commentDTO)
}

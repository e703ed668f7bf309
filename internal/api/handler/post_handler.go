package handler

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/pkg/response"
	"BiuBiuStar/internal/pkg/util"
	"BiuBiuStar/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var createDTO dto.CreatePostDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	postDTO, err := s.postSvc.CreatePost(c.Request.Context(), getUID(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postDTO)
}

// ListPosts type=timeline|user|following，user 需带 username
func (s *PostHandler) ListPosts(c *gin.Context) {
	listType := c.DefaultQuery("type", "timeline")
	username := c.Query("username")
	limit, offset := util.GetPagination(c)

	posts, total, err := s.postSvc.ListPosts(c.Request.Context(), getUID(c), listType, username, limit, offset)
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

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	postDTO, err := s.postSvc.GetPost(c.Request.Context(), getUID(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postDTO)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.postSvc.DeletePost(c.Request.Context(), getUID(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) ListPostsByUsername(c *gin.Context) {
	username := c.Param("username")
	limit, offset := util.GetPagination(c)
	posts, total, err := s.postSvc.ListPostsByUsername(c.Request.Context(), getUID(c), username, limit, offset)
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

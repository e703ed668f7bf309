package handler

import (
	"BiuBiuStar/internal/pkg/response"
	"BiuBiuStar/internal/pkg/util"
	"BiuBiuStar/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowsHandler struct {
	followSvc service.UserFollowService
}

func NewUserFollowsHandler(followSvc service.UserFollowService) *UserFollowsHandler {
	return &UserFollowsHandler{followSvc: followSvc}
}

func (s *UserFollowsHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	if err := s.followSvc.Follow(c.Request.Context(), getUID(c), username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowsHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := s.followSvc.Unfollow(c.Request.Context(), getUID(c), username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowsHandler) GetFollowers(c *gin.Context) {
	username := c.Param("username")
	limit, offset := util.GetPagination(c)
	users, err := s.followSvc.GetFollowers(c.Request.Context(), username, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *UserFollowsHandler) GetFollowing(c *gin.Context) {
	username := c.Param("username")
	limit, offset := util.GetPagination(c)
	users, err := s.followSvc.GetFollowing(c.Request.Context(), username, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

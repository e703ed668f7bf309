package handler

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/pkg/response"
	"BiuBiuStar/internal/pkg/util"
	"BiuBiuStar/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	userDTO, err := s.userSvc.GetProfileByUsername(c.Request.Context(), getUID(c), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, userDTO)
}

func (s *UserHandler) UpdateProfile(c *gin.Context) {
	var updateDTO dto.UpdateProfileDTO
	if err := c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	userDTO, err := s.userSvc.UpdateProfile(c.Request.Context(), getUID(c), &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, userDTO)
}

func (s *UserHandler) SearchUsers(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, offset := util.GetPagination(c)
	users, err := s.userSvc.SearchUsers(c.Request.Context(), keyword, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *UserHandler) GetStats(c *gin.Context) {
	username := c.Param("username")
	stats, err := s.userSvc.GetUserStats(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

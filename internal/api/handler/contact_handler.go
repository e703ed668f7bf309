package handler

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/pkg/response"
	"BiuBiuStar/internal/pkg/util"
	"BiuBiuStar/internal/service"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactSvc service.ContactService
}

func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

func (s *ContactHandler) Submit(c *gin.Context) {
	var createDTO dto.ContactCreateDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.contactSvc.SubmitContact(c.Request.Context(), c.ClientIP(), &createDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

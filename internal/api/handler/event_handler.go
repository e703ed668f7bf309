package handler

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/pkg/response"
	"BiuBiuStar/internal/pkg/util"
	"BiuBiuStar/internal/repository"
	"BiuBiuStar/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventSvc service.EventService
}

func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

func (s *EventHandler) CreateEvent(c *gin.Context) {
	var createDTO dto.CreateEventDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	eventDTO, err := s.eventSvc.CreateEvent(c.Request.Context(), getUID(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, eventDTO)
}

func (s *EventHandler) ListEvents(c *gin.Context) {
	limit, offset := util.GetPagination(c)
	filter := &repository.EventListFilter{
		Status:   c.DefaultQuery("status", "all"),
		Location: c.Query("location"),
		Tag:      c.Query("tag"),
		Limit:    limit,
		Offset:   offset,
	}
	events, total, err := s.eventSvc.ListEvents(c.Request.Context(), getUID(c), filter)
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

func (s *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := parseIDParam(c, "event_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	eventDTO, err := s.eventSvc.GetEvent(c.Request.Context(), getUID(c), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, eventDTO)
}

func (s *EventHandler) UpdateEvent(c *gin.Context) {
	eventID, err := parseIDParam(c, "event_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var updateDTO dto.UpdateEventDTO
	if err = c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	eventDTO, err := s.eventSvc.UpdateEvent(c.Request.Context(), getUID(c), eventID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, eventDTO)
}

func (s *EventHandler) DeleteEvent(c *gin.Context) {
	eventID, err := parseIDParam(c, "event_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.eventSvc.DeleteEvent(c.Request.Context(), getUID(c), eventID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *EventHandler) JoinEvent(c *gin.Context) {
	eventID, err := parseIDParam(c, "event_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.eventSvc.JoinEvent(c.Request.Context(), getUID(c), eventID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *EventHandler) LeaveEvent(c *gin.Context) {
	eventID, err := parseIDParam(c, "event_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.eventSvc.LeaveEvent(c.Request.Context(), getUID(c), eventID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *EventHandler) ListParticipants(c *gin.Context) {
	eventID, err := parseIDParam(c, "event_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, offset := util.GetPagination(c)
	users, err := s.eventSvc.ListParticipants(c.Request.Context(), eventID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *EventHandler) ListCreatedByUsername(c *gin.Context) {
	username := c.Param("username")
	limit, offset := util.GetPagination(c)
	events, err := s.eventSvc.ListCreatedByUsername(c.Request.Context(), getUID(c), username, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, events)
}

func (s *EventHandler) ListJoinedByUsername(c *gin.Context) {
	username := c.Param("username")
	limit, offset := util.GetPagination(c)
	events, err := s.eventSvc.ListJoinedByUsername(c.Request.Context(), getUID(c), username, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, events)
}

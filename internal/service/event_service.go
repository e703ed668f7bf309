package service

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/model"
	"BiuBiuStar/internal/repository"
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type EventService interface {
	CreateEvent(ctx context.Context, organizerID uint64, createDTO *dto.CreateEventDTO) (*dto.EventDTO, error)
	GetEvent(ctx context.Context, callerID, eventID uint64) (*dto.EventDTO, error)
	UpdateEvent(ctx context.Context, callerID, eventID uint64, updateDTO *dto.UpdateEventDTO) (*dto.EventDTO, error)
	DeleteEvent(ctx context.Context, callerID, eventID uint64) error
	ListEvents(ctx context.Context, callerID uint64, filter *repository.EventListFilter) ([]*dto.EventDTO, int64, error)
	JoinEvent(ctx context.Context, userID, eventID uint64) error
	LeaveEvent(ctx context.Context, userID, eventID uint64) error
	ListParticipants(ctx context.Context, eventID uint64, limit, offset int) ([]*dto.UserDTO, error)
	ListCreatedByUsername(ctx context.Context, callerID uint64, username string, limit, offset int) ([]*dto.EventDTO, error)
	ListJoinedByUsername(ctx context.Context, callerID uint64, username string, limit, offset int) ([]*dto.EventDTO, error)
}

type eventServiceImpl struct {
	eventRepo repository.EventRepo
	userRepo  repository.UserRepo
}

func NewEventService(eventRepo repository.EventRepo, userRepo repository.UserRepo) EventService {
	return &eventServiceImpl{eventRepo: eventRepo, userRepo: userRepo}
}

func (s *eventServiceImpl) CreateEvent(ctx context.Context, organizerID uint64, createDTO *dto.CreateEventDTO) (*dto.EventDTO, error) {
	if !createDTO.EndDate.After(createDTO.StartDate) {
		return nil, ErrEventTimeInvalid
	}

	event := &model.Event{
		OrganizerID:     organizerID,
		Title:           createDTO.Title,
		Description:     createDTO.Description,
		StartDate:       createDTO.StartDate,
		EndDate:         createDTO.EndDate,
		Location:        createDTO.Location,
		MaxParticipants: createDTO.MaxParticipants,
		ImageURL:        createDTO.ImageURL,
		Tags:            createDTO.Tags,
		Status:          model.EventStatusUpcoming,
	}
	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	dtos, err := s.attachAndConvert(ctx, organizerID, []*model.Event{event})
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

func (s *eventServiceImpl) GetEvent(ctx context.Context, callerID, eventID uint64) (*dto.EventDTO, error) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	dtos, err := s.attachAndConvert(ctx, callerID, []*model.Event{event})
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

// UpdateEvent 仅组织者可改，时间变更后重新校验先后关系
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, callerID, eventID uint64, updateDTO *dto.UpdateEventDTO) (*dto.EventDTO, error) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if event.OrganizerID != callerID {
		return nil, ErrNotOrganizer
	}

	start := event.StartDate
	end := event.EndDate
	if updateDTO.StartDate != nil {
		start = *updateDTO.StartDate
	}
	if updateDTO.EndDate != nil {
		end = *updateDTO.EndDate
	}
	if !end.After(start) {
		return nil, ErrEventTimeInvalid
	}

	fields := map[string]any{}
	if updateDTO.Title != nil {
		fields["title"] = *updateDTO.Title
	}
	if updateDTO.Description != nil {
		fields["description"] = *updateDTO.Description
	}
	if updateDTO.StartDate != nil {
		fields["start_date"] = *updateDTO.StartDate
	}
	if updateDTO.EndDate != nil {
		fields["end_date"] = *updateDTO.EndDate
	}
	if updateDTO.Location != nil {
		fields["location"] = *updateDTO.Location
	}
	if updateDTO.MaxParticipants != nil {
		fields["max_participants"] = *updateDTO.MaxParticipants
	}
	if updateDTO.ImageURL != nil {
		fields["image_url"] = *updateDTO.ImageURL
	}
	if updateDTO.Tags != nil {
		// tags 列为 json 序列化存储，map 更新时手动编码
		raw, err := json.Marshal(updateDTO.Tags)
		if err != nil {
			return nil, err
		}
		fields["tags"] = string(raw)
	}
	if updateDTO.Status != nil {
		fields["status"] = *updateDTO.Status
	}

	if err = s.eventRepo.UpdateEvent(ctx, eventID, fields); err != nil {
		return nil, err
	}
	return s.GetEvent(ctx, callerID, eventID)
}

func (s *eventServiceImpl) DeleteEvent(ctx context.Context, callerID, eventID uint64) error {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	if event.OrganizerID != callerID {
		return ErrNotOrganizer
	}
	return s.eventRepo.DeleteEvent(ctx, eventID)
}

func (s *eventServiceImpl) ListEvents(ctx context.Context, callerID uint64, filter *repository.EventListFilter) ([]*dto.EventDTO, int64, error) {
	events, total, err := s.eventRepo.ListEvents(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	// 标签过滤在应用层做交集，标签列是 JSON 序列化存储
	if filter.Tag != "" {
		filtered := make([]*model.Event, 0, len(events))
		for _, event := range events {
			for _, tag := range event.Tags {
				if tag == filter.Tag {
					filtered = append(filtered, event)
					break
				}
			}
		}
		events = filtered
	}

	dtos, err := s.attachAndConvert(ctx, callerID, events)
	if err != nil {
		return nil, 0, err
	}
	return dtos, total, nil
}

// JoinEvent 活动开始后与满员后都不允许报名；容量校验在写入语句内完成
func (s *eventServiceImpl) JoinEvent(ctx context.Context, userID, eventID uint64) error {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	if event.Status == model.EventStatusCancelled {
		return ErrEventNotFound
	}
	if time.Now().After(event.StartDate) {
		return ErrEventStarted
	}

	rows, err := s.eventRepo.JoinEvent(ctx, eventID, userID, event.MaxParticipants)
	if err != nil {
		return err
	}
	if rows == 0 {
		joined, err := s.eventRepo.IsJoined(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if joined {
			return ErrEventJoinExist
		}
		return ErrEventFull
	}
	return nil
}

// LeaveEvent 活动开始后禁止退出，未报名时删除零行也算成功
func (s *eventServiceImpl) LeaveEvent(ctx context.Context, userID, eventID uint64) error {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	if time.Now().After(event.StartDate) {
		return ErrEventStarted
	}

	_, err = s.eventRepo.LeaveEvent(ctx, eventID, userID)
	return err
}

func (s *eventServiceImpl) ListParticipants(ctx context.Context, eventID uint64, limit, offset int) ([]*dto.UserDTO, error) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	users, err := s.eventRepo.ListParticipants(ctx, eventID, limit, offset)
	if err != nil {
		return nil, err
	}
	dtos := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		userDTO := &dto.UserDTO{}
		_ = copier.Copy(userDTO, user)
		userDTO.Email = ""
		userDTO.Role = ""
		dtos = append(dtos, userDTO)
	}
	return dtos, nil
}

func (s *eventServiceImpl) ListCreatedByUsername(ctx context.Context, callerID uint64, username string, limit, offset int) ([]*dto.EventDTO, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListEventsByOrganizer(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.attachAndConvert(ctx, callerID, events)
}

func (s *eventServiceImpl) ListJoinedByUsername(ctx context.Context, callerID uint64, username string, limit, offset int) ([]*dto.EventDTO, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListJoinedEvents(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.attachAndConvert(ctx, callerID, events)
}

func (s *eventServiceImpl) resolveUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// attachAndConvert 批量补齐报名人数与调用者的报名状态，状态按当前时间折算
func (s *eventServiceImpl) attachAndConvert(ctx context.Context, callerID uint64, events []*model.Event) ([]*dto.EventDTO, error) {
	if len(events) == 0 {
		return []*dto.EventDTO{}, nil
	}

	eventIDs := make([]uint64, 0, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
	}

	counts, err := s.eventRepo.GetParticipantCountsByEventIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}
	joined, err := s.eventRepo.GetJoinedEventIDs(ctx, callerID, eventIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dtos := make([]*dto.EventDTO, 0, len(events))
	for _, event := range events {
		eventDTO := &dto.EventDTO{}
		_ = copier.Copy(eventDTO, event)
		eventDTO.ParticipantCount = counts[event.ID]
		eventDTO.IsJoined = joined[event.ID]
		eventDTO.Status = computedStatus(event, now)
		dtos = append(dtos, eventDTO)
	}
	return dtos, nil
}

// computedStatus cancelled 保持原状，其余按时间推算
func computedStatus(event *model.Event, now time.Time) string {
	if event.Status == model.EventStatusCancelled {
		return model.EventStatusCancelled
	}
	switch {
	case now.Before(event.StartDate):
		return model.EventStatusUpcoming
	case now.After(event.EndDate):
		return model.EventStatusCompleted
	default:
		return model.EventStatusOngoing
	}
}

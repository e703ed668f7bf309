package repository

import (
	"BiuBiuStar/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventListFilter 活动列表筛选条件
type EventListFilter struct {
	// Status 为计算口径: upcoming / ongoing / past / all
	Status   string
	Location string
	Tag      string
	Limit    int
	Offset   int
}

type EventRepo interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	GetEventByID(ctx context.Context, eventID uint64) (*model.Event, error)
	UpdateEvent(ctx context.Context, eventID uint64, fields map[string]any) error
	DeleteEvent(ctx context.Context, eventID uint64) error
	ListEvents(ctx context.Context, filter *EventListFilter) ([]*model.Event, int64, error)
	ListEventsByOrganizer(ctx context.Context, organizerID uint64, limit, offset int) ([]*model.Event, error)
	ListJoinedEvents(ctx context.Context, userID uint64, limit, offset int) ([]*model.Event, error)
	CountEvents(ctx context.Context) (int64, error)
	CountEventsByOrganizer(ctx context.Context, organizerID uint64) (int64, error)

	JoinEvent(ctx context.Context, eventID, userID uint64, maxParticipants *int) (int64, error)
	LeaveEvent(ctx context.Context, eventID, userID uint64) (int64, error)
	IsJoined(ctx context.Context, eventID, userID uint64) (bool, error)
	GetParticipantCount(ctx context.Context, eventID uint64) (int64, error)
	GetParticipantCountsByEventIDs(ctx context.Context, eventIDs []uint64) (map[uint64]int64, error)
	GetJoinedEventIDs(ctx context.Context, userID uint64, eventIDs []uint64) (map[uint64]bool, error)
	ListParticipants(ctx context.Context, eventID uint64, limit, offset int) ([]*model.User, error)

	RollForwardStatus(ctx context.Context, now time.Time) (int64, error)
}

type EventRepoImpl struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return &EventRepoImpl{db: db}
}

func (s *EventRepoImpl) CreateEvent(ctx context.Context, event *model.Event) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *EventRepoImpl) GetEventByID(ctx context.Context, eventID uint64) (*model.Event, error) {
	var event model.Event
	result := s.db.WithContext(ctx).Where("id = ?", eventID).First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &event, nil
}

func (s *EventRepoImpl) UpdateEvent(ctx context.Context, eventID uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", eventID).
		Updates(fields).Error
}

func (s *EventRepoImpl) DeleteEvent(ctx context.Context, eventID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&model.EventParticipant{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", eventID).Delete(&model.Event{}).Error
	})
}

// ListEvents 状态按当前时间对 start/end 计算，不依赖持久化的 status 字段
func (s *EventRepoImpl) ListEvents(ctx context.Context, filter *EventListFilter) ([]*model.Event, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Event{}).
		Where("status <> ?", model.EventStatusCancelled)

	now := time.Now()
	switch filter.Status {
	case "upcoming":
		query = query.Where("start_date > ?", now)
	case "ongoing":
		query = query.Where("start_date <= ? AND end_date >= ?", now, now)
	case "past":
		query = query.Where("end_date < ?", now)
	}

	if filter.Location != "" {
		query = query.Where("location LIKE ?", "%"+filter.Location+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []*model.Event
	result := query.Order("start_date asc").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&events)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return events, total, nil
}

func (s *EventRepoImpl) ListEventsByOrganizer(ctx context.Context, organizerID uint64, limit, offset int) ([]*model.Event, error) {
	var events []*model.Event
	result := s.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("start_date desc").
		Limit(limit).
		Offset(offset).
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

func (s *EventRepoImpl) ListJoinedEvents(ctx context.Context, userID uint64, limit, offset int) ([]*model.Event, error) {
	var events []*model.Event
	result := s.db.WithContext(ctx).Model(&model.Event{}).
		Joins("JOIN event_participants ON event_participants.event_id = events.id").
		Where("event_participants.user_id = ?", userID).
		Order("event_participants.joined_at desc").
		Limit(limit).
		Offset(offset).
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

func (s *EventRepoImpl) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Event{}).Count(&count).Error
	return count, err
}

func (s *EventRepoImpl) CountEventsByOrganizer(ctx context.Context, organizerID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Event{}).
		Where("organizer_id = ?", organizerID).
		Count(&count).Error
	return count, err
}

// JoinEvent 报名写入。容量校验放进同一条语句的 count 子查询里，
// 并发报名不会超员；冲突静默处理重复报名。影响行数为 0 时由调用方
// 区分是重复报名还是已满。
func (s *EventRepoImpl) JoinEvent(ctx context.Context, eventID, userID uint64, maxParticipants *int) (int64, error) {
	now := time.Now()

	if maxParticipants == nil {
		result := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.EventParticipant{EventID: eventID, UserID: userID, JoinedAt: now})
		return result.RowsAffected, result.Error
	}

	result := s.db.WithContext(ctx).Exec(
		`INSERT INTO event_participants (event_id, user_id, joined_at)
		 SELECT ?, ?, ?
		 WHERE (SELECT COUNT(*) FROM event_participants WHERE event_id = ?) < ?
		 ON CONFLICT (event_id, user_id) DO NOTHING`,
		eventID, userID, now, eventID, *maxParticipants,
	)
	return result.RowsAffected, result.Error
}

func (s *EventRepoImpl) LeaveEvent(ctx context.Context, eventID, userID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&model.EventParticipant{})
	return result.RowsAffected, result.Error
}

func (s *EventRepoImpl) IsJoined(ctx context.Context, eventID, userID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *EventRepoImpl) GetParticipantCount(ctx context.Context, eventID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.EventParticipant{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (s *EventRepoImpl) GetParticipantCountsByEventIDs(ctx context.Context, eventIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}
	type row struct {
		EventID uint64
		Count   int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.EventParticipant{}).
		Select("event_id, count(*) as count").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.EventID] = r.Count
	}
	return counts, nil
}

func (s *EventRepoImpl) GetJoinedEventIDs(ctx context.Context, userID uint64, eventIDs []uint64) (map[uint64]bool, error) {
	joined := make(map[uint64]bool, len(eventIDs))
	if userID == 0 || len(eventIDs) == 0 {
		return joined, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.EventParticipant{}).
		Where("user_id = ? AND event_id IN ?", userID, eventIDs).
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		joined[id] = true
	}
	return joined, nil
}

func (s *EventRepoImpl) ListParticipants(ctx context.Context, eventID uint64, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	result := s.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN event_participants ON event_participants.user_id = users.id").
		Where("event_participants.event_id = ?", eventID).
		Order("event_participants.joined_at asc").
		Limit(limit).
		Offset(offset).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// RollForwardStatus 按时钟推进持久化状态: upcoming→ongoing→completed，cancelled 不动
func (s *EventRepoImpl) RollForwardStatus(ctx context.Context, now time.Time) (int64, error) {
	var affected int64

	result := s.db.WithContext(ctx).Model(&model.Event{}).
		Where("status = ? AND start_date <= ? AND end_date >= ?", model.EventStatusUpcoming, now, now).
		Update("status", model.EventStatusOngoing)
	if result.Error != nil {
		return affected, result.Error
	}
	affected += result.RowsAffected

	result = s.db.WithContext(ctx).Model(&model.Event{}).
		Where("status IN ? AND end_date < ?", []string{model.EventStatusUpcoming, model.EventStatusOngoing}, now).
		Update("status", model.EventStatusCompleted)
	if result.Error != nil {
		return affected, result.Error
	}
	affected += result.RowsAffected

	return affected, nil
}

package model

import "time"

// EventParticipant 联合主键保证同一用户对同一活动只能报名一次
type EventParticipant struct {
	EventID  uint64    `gorm:"primaryKey" json:"event_id"`
	UserID   uint64    `gorm:"primaryKey;index" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

func (EventParticipant) TableName() string {
	return "event_participants"
}

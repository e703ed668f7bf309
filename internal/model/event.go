package model

import (
	"time"
)

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

type Event struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	OrganizerID     uint64    `gorm:"not null;index" json:"organizer_id"`
	Title           string    `gorm:"type:varchar(255);not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	StartDate       time.Time `gorm:"not null;index" json:"start_date"`
	EndDate         time.Time `gorm:"not null" json:"end_date"`
	Location        *string   `gorm:"type:varchar(255)" json:"location"`
	MaxParticipants *int      `json:"max_participants"`
	ImageURL        *string   `gorm:"type:varchar(500)" json:"image_url"`
	Tags            []string  `gorm:"type:json;serializer:json" json:"tags"`
	Status          string    `gorm:"type:varchar(20);not null;default:upcoming;index" json:"status"`
	IsFeatured      bool      `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Organizer User `gorm:"foreignKey:OrganizerID;references:ID" json:"-"`
}

func (Event) TableName() string {
	return "events"
}

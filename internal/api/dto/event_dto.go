package dto

import "time"

type CreateEventDTO struct {
	Title           string    `json:"title" validate:"required,max=255"`
	Description     string    `json:"description" validate:"required"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required"`
	Location        *string   `json:"location" validate:"omitempty,max=255"`
	MaxParticipants *int      `json:"max_participants" validate:"omitempty,min=1"`
	ImageURL        *string   `json:"image_url" validate:"omitempty,max=500"`
	Tags            []string  `json:"tags" validate:"omitempty,max=10,dive,max=50"`
}

// UpdateEventDTO 缺省字段不更新
type UpdateEventDTO struct {
	Title           *string    `json:"title" validate:"omitempty,max=255"`
	Description     *string    `json:"description"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Location        *string    `json:"location" validate:"omitempty,max=255"`
	MaxParticipants *int       `json:"max_participants" validate:"omitempty,min=1"`
	ImageURL        *string    `json:"image_url" validate:"omitempty,max=500"`
	Tags            []string   `json:"tags" validate:"omitempty,max=10,dive,max=50"`
	Status          *string    `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

type EventDTO struct {
	ID              uint64    `json:"id"`
	OrganizerID     uint64    `json:"organizer_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Location        *string   `json:"location"`
	MaxParticipants *int      `json:"max_participants"`
	ImageURL        *string   `json:"image_url"`
	Tags            []string  `json:"tags"`
	Status          string    `json:"status"`
	IsFeatured      bool      `json:"is_featured"`
	CreatedAt       time.Time `json:"created_at"`

	ParticipantCount int64 `json:"participant_count"`
	IsJoined         bool  `json:"is_joined"`
}

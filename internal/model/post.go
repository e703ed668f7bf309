package model

import (
	"time"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusPending   = "pending"
	PostStatusRejected  = "rejected"
	PostStatusArchived  = "archived"
)

type Post struct {
	ID              uint64     `gorm:"primaryKey" json:"id"`
	UserID          uint64     `gorm:"not null;index" json:"user_id"`
	Title           string     `gorm:"type:varchar(255)" json:"title"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	Category        *string    `gorm:"type:varchar(50)" json:"category"`
	Tags            []string   `gorm:"type:json;serializer:json" json:"tags"`
	ImageURLs       []string   `gorm:"type:json;serializer:json" json:"image_urls"`
	Location        *string    `gorm:"type:varchar(100)" json:"location"`
	Status          string     `gorm:"type:varchar(20);not null;default:published;index" json:"status"`
	RejectionReason *string    `gorm:"type:varchar(500)" json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy      *uint64    `json:"reviewed_by,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

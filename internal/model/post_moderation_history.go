package model

import (
	"time"
)

const (
	ModerationActionApproved = "approved"
	ModerationActionRejected = "rejected"
)

// PostModerationHistory 审核流水，只追加不修改
type PostModerationHistory struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	PostID         uint64    `gorm:"not null;index" json:"post_id"`
	AdminID        uint64    `gorm:"not null" json:"admin_id"`
	Action         string    `gorm:"type:varchar(20);not null" json:"action"`
	PreviousStatus string    `gorm:"type:varchar(20);not null" json:"previous_status"`
	NewStatus      string    `gorm:"type:varchar(20);not null" json:"new_status"`
	Reason         *string   `gorm:"type:varchar(500)" json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (PostModerationHistory) TableName() string {
	return "post_moderation_history"
}

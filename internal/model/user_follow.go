package model

import "time"

type UserFollow struct {
	FollowerID  uint64    `gorm:"primaryKey" json:"follower_id"`
	FollowingID uint64    `gorm:"primaryKey;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}

package model

import (
	"time"
)

type User struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Username       string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Password       string    `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName    *string   `gorm:"type:varchar(50)" json:"display_name"`
	AvatarURL      *string   `gorm:"type:varchar(500)" json:"avatar_url"`
	Bio            *string   `gorm:"type:varchar(500)" json:"bio"`
	Location       *string   `gorm:"type:varchar(100)" json:"location"`
	Website        *string   `gorm:"type:varchar(255)" json:"website"`
	IsVerified     bool      `gorm:"not null;default:false" json:"is_verified"`
	IsBan          bool      `gorm:"not null;default:false" json:"-"`
	Role           string    `gorm:"type:varchar(20);not null;default:user" json:"role"` // user / admin / super_admin
	FollowerCount  int64     `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount int64     `gorm:"not null;default:0" json:"following_count"`
	PostCount      int64     `gorm:"not null;default:0" json:"post_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

package dto

import "time"

type UserDTO struct {
	ID             uint64    `json:"id"`
	Email          string    `json:"email,omitempty"`
	Username       string    `json:"username"`
	DisplayName    *string   `json:"display_name"`
	AvatarURL      *string   `json:"avatar_url"`
	Bio            *string   `json:"bio"`
	Location       *string   `json:"location"`
	Website        *string   `json:"website"`
	IsVerified     bool      `json:"is_verified"`
	Role           string    `json:"role,omitempty"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	PostCount      int64     `json:"post_count"`
	IsFollowing    bool      `json:"is_following"`
	CreatedAt      time.Time `json:"created_at"`
}

// UpdateProfileDTO 个人资料白名单字段，缺省的字段不更新
type UpdateProfileDTO struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=50"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	Website     *string `json:"website" validate:"omitempty,max=255,url"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,max=500"`
}

// UserStatsDTO 用户主页的聚合统计
type UserStatsDTO struct {
	PostCount      int64 `json:"post_count"`
	EventCount     int64 `json:"event_count"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
	LikeCount      int64 `json:"like_count"`
}

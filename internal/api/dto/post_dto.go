package dto

import "time"

type CreatePostDTO struct {
	Title     string   `json:"title" validate:"omitempty,max=255"`
	Content   string   `json:"content" validate:"required,max=2000"`
	Category  *string  `json:"category" validate:"omitempty,max=50"`
	Tags      []string `json:"tags" validate:"omitempty,max=10,dive,max=50"`
	ImageURLs []string `json:"image_urls" validate:"omitempty,max=4,dive,max=500"`
	Location  *string  `json:"location" validate:"omitempty,max=100"`
	// Status 仅允许 draft / published，缺省 published
	Status string `json:"status" validate:"omitempty,oneof=draft published"`
}

type PostDTO struct {
	ID              uint64     `json:"id"`
	UserID          uint64     `json:"user_id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Category        *string    `json:"category"`
	Tags            []string   `json:"tags"`
	ImageURLs       []string   `json:"image_urls"`
	Location        *string    `json:"location"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	IsLiked      bool  `json:"is_liked"`

	// 作者展示字段
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

type CommentCreateDTO struct {
	Content string `json:"content" validate:"required,max=1000"`
}

type CommentDTO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	UserID    uint64    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Username    string  `json:"username"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

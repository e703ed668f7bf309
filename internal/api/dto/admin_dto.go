package dto

import "time"

// UpdateUserRoleDTO 角色变更，admin/super_admin 的授予仅限超级管理员
type UpdateUserRoleDTO struct {
	Role string `json:"role" validate:"required,oneof=user admin super_admin"`
}

type UpdateUserVerifyDTO struct {
	IsVerified bool `json:"is_verified"`
}

type ModerateDTO struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type BatchModerateDTO struct {
	PostIDs []uint64 `json:"post_ids" validate:"required,min=1,max=100"`
	Action  string   `json:"action" validate:"required,oneof=approve reject"`
	Reason  *string  `json:"reason" validate:"omitempty,max=500"`
}

// BatchModerateResultDTO 批量审核的逐条结果
type BatchModerateResultDTO struct {
	Moderated []uint64 `json:"moderated"`
	Skipped   []uint64 `json:"skipped"`
}

// AdminUserDTO 管理端用户视图，含封禁与角色等运营字段
type AdminUserDTO struct {
	UserDTO
	IsBan bool `json:"is_ban"`
}

type ModerationHistoryDTO struct {
	ID             uint64  `json:"id"`
	PostID         uint64  `json:"post_id"`
	AdminID        uint64  `json:"admin_id"`
	Action         string  `json:"action"`
	PreviousStatus string  `json:"previous_status"`
	NewStatus      string  `json:"new_status"`
	Reason         *string   `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type TrendPointDTO struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type DashboardStatsDTO struct {
	UserCount    int64           `json:"user_count"`
	PostCount    int64           `json:"post_count"`
	EventCount   int64           `json:"event_count"`
	PendingCount int64           `json:"pending_count"`
	UserTrend7D  []TrendPointDTO `json:"user_trend_7d"`
	PostTrend7D  []TrendPointDTO `json:"post_trend_7d"`
}

type ModerationStatsDTO struct {
	StatusCounts  map[string]int64 `json:"status_counts"`
	TodayApproved int64            `json:"today_approved"`
	TodayRejected int64            `json:"today_rejected"`
}

package dto

type ContactCreateDTO struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Email           string  `json:"email" validate:"required,email"`
	Company         *string `json:"company" validate:"omitempty,max=100"`
	Phone           *string `json:"phone" validate:"omitempty,max=30"`
	CooperationType string  `json:"cooperation_type" validate:"required,oneof=technical business investment other"`
	Description     string  `json:"description" validate:"required,max=2000"`
}

type ContactStatsDTO struct {
	StatusCounts map[string]int64 `json:"status_counts"`
	Total        int64            `json:"total"`
}

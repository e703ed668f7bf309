package model

import (
	"time"
)

const (
	ContactStatusPending   = "pending"
	ContactStatusProcessed = "processed"
	ContactStatusSpam      = "spam"
)

type ContactForm struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Email           string    `gorm:"type:varchar(255);not null;index" json:"email"`
	Company         *string   `gorm:"type:varchar(100)" json:"company"`
	Phone           *string   `gorm:"type:varchar(30)" json:"phone"`
	CooperationType string    `gorm:"type:varchar(20);not null" json:"cooperation_type"` // technical / business / investment / other
	Description     string    `gorm:"type:varchar(2000);not null" json:"description"`
	Status          string    `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func (ContactForm) TableName() string {
	return "contact_forms"
}

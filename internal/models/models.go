package models

import (
	"time"

	"gorm.io/gorm"
)

// Application status values. Transitions are strictly
// pending -> sent -> followed_up, never reversed.
const (
	StatusPending    = "pending"
	StatusSent       = "sent"
	StatusFollowedUp = "followed_up"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusSent, StatusFollowedUp:
		return true
	}
	return false
}

type User struct {
	// ID is a UUID string issued at signup.
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// 'omitempty' prevents infinite loops when fetching a User -> Applications -> ...
	Applications []Application `json:"applications,omitempty"`
}

type Application struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign key to the owning user. Every query is scoped by it.
	UserID string `gorm:"index;not null" json:"user_id"`

	CompanyName    string `gorm:"not null" json:"company_name"`
	JobTitle       string `gorm:"not null" json:"job_title"`
	JobDescription string `gorm:"type:text" json:"job_description"`
	RecipientEmail string `gorm:"not null" json:"recipient_email"`

	// EmailBody is the cold-email body, set when the record moves to sent.
	// FollowupBody is a separate column; the cold body is never overwritten.
	EmailBody    *string `gorm:"type:text" json:"email_body"`
	FollowupBody *string `gorm:"type:text" json:"followup_body"`

	Status       string     `gorm:"default:'pending'" json:"status"`
	SentAt       *time.Time `json:"sent_at"`
	FollowedUpAt *time.Time `json:"followed_up_at"`
}

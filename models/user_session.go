package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSession tracks one issued console token
type UserSession struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	TokenHash      string    `json:"-" gorm:"not null;uniqueIndex"` // sha256 of the JWT
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent" gorm:"type:text"`
	Device         string    `json:"device"` // "Chrome on Windows (desktop)"
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	LastActivityAt time.Time `json:"last_activity_at" gorm:"index"`
	ExpiresAt      time.Time `json:"expires_at" gorm:"index"`
	IsActive       bool      `json:"is_active" gorm:"default:true;index"`
}

// BeforeCreate hook - auto-generate UUID v7
func (us *UserSession) BeforeCreate(tx *gorm.DB) error {
	if us.ID == uuid.Nil {
		us.ID = uuid.Must(uuid.NewV7())
	}
	if us.ExpiresAt.IsZero() {
		us.ExpiresAt = time.Now().Add(24 * time.Hour)
	}
	if us.LastActivityAt.IsZero() {
		us.LastActivityAt = time.Now()
	}
	return nil
}

func (UserSession) TableName() string {
	return "user_sessions"
}

func (us *UserSession) IsExpired() bool {
	return time.Now().After(us.ExpiresAt)
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"

	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"

	// DateOfBirthLayout is how the console sends and receives dates of birth
	DateOfBirthLayout = "2006-01-02"
)

// NormalizeRole maps any casing of a known role onto its stored form.
// Returns "" for unknown roles.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin":
		return RoleAdmin
	case "user":
		return RoleUser
	}
	return ""
}

// User is a console operator account
type User struct {
	ID             uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Username       string                      `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email          string                      `json:"email" gorm:"type:varchar(254);uniqueIndex;not null"`
	FullName       string                      `json:"full_name" gorm:"type:varchar(255)"`
	PasswordHash   string                      `json:"-" gorm:"not null"`
	Role           string                      `json:"role" gorm:"type:varchar(20);not null;index"`
	AccessLevel    datatypes.JSONSlice[string] `json:"access_level" gorm:"type:jsonb"`
	Country        string                      `json:"country" gorm:"type:varchar(100)"`
	DateOfBirth    *datatypes.Date             `json:"date_of_birth"`
	ProfileImage   string                      `json:"profile_image" gorm:"type:text"` // Cloudinary URL
	ProfileImageID string                      `json:"-" gorm:"type:text"`             // Cloudinary public ID
	GoogleID       *string                     `json:"-" gorm:"column:google_id;type:varchar(255);uniqueIndex"`
	Status         string                      `json:"status" gorm:"type:varchar(20);default:'active';index"`
	LastLoginAt    *time.Time                  `json:"last_login_at"`
	CreatedAt      time.Time                   `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV7())
	}
	if u.Status == "" {
		u.Status = UserStatusActive
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// IsAdmin reports whether the user bypasses module access checks
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ════════════════════════════════════════════════════════════
// Request Models
// ════════════════════════════════════════════════════════════

// LoginRequest accepts a username or an email in Username
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest binds both JSON and multipart bodies
type CreateUserRequest struct {
	Username    string   `json:"username" form:"username" binding:"required"`
	Password    string   `json:"password" form:"password" binding:"required"`
	Email       string   `json:"email" form:"email" binding:"required"`
	FullName    string   `json:"full_name" form:"full_name"`
	Role        string   `json:"role" form:"role" binding:"required"`
	DateOfBirth string   `json:"date_of_birth" form:"date_of_birth" binding:"required"`
	Country     string   `json:"country" form:"country" binding:"required"`
	Access      []string `json:"access" form:"access" binding:"required,min=1"`
}

// UpdateUserAccessRequest is what the user management edit dialog sends
type UpdateUserAccessRequest struct {
	Role   string   `json:"role" binding:"required"`
	Access []string `json:"access" binding:"required"`
}

// UpdateMeRequest carries self-service profile edits
type UpdateMeRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	Country     *string `json:"country"`
	DateOfBirth *string `json:"date_of_birth"`
}

// ════════════════════════════════════════════════════════════
// Response Models
// ════════════════════════════════════════════════════════════

type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	Access       []string   `json:"access"`
	Country      string     `json:"country"`
	DateOfBirth  string     `json:"date_of_birth"`
	ProfileImage string     `json:"profile_image"`
	Status       string     `json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func (u *User) ToResponse() UserResponse {
	access := []string(u.AccessLevel)
	if access == nil {
		access = []string{}
	}
	dob := ""
	if u.DateOfBirth != nil {
		dob = time.Time(*u.DateOfBirth).Format(DateOfBirthLayout)
	}
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         u.Role,
		Access:       access,
		Country:      u.Country,
		DateOfBirth:  dob,
		ProfileImage: u.ProfileImage,
		Status:       u.Status,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
	}
}

// ParseDateOfBirth parses a YYYY-MM-DD date into the column type
func ParseDateOfBirth(s string) (*datatypes.Date, error) {
	t, err := time.Parse(DateOfBirthLayout, strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}

// GoogleUserInfo represents data from Google OAuth
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CameraStatusActive   = "Active"
	CameraStatusInactive = "Inactive"

	// Camera visibility on the live dashboard
	CameraAccessAdmin = "admin"
	CameraAccessAll   = "all"
)

// Camera is a registered RTSP source placed in a region and sub-region
type Camera struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null;index"`
	RTSPURL     string    `json:"rtsp_url" gorm:"column:rtsp_url;not null"`
	RegionID    uuid.UUID `json:"region_id" gorm:"type:uuid;not null;index"`
	SubRegionID uuid.UUID `json:"sub_region_id" gorm:"type:uuid;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	AccessLevel string    `json:"access_level" gorm:"not null;default:all"`
	Status      string    `json:"status" gorm:"not null;default:Active;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Region    *Region    `json:"-" gorm:"foreignKey:RegionID"`
	SubRegion *SubRegion `json:"-" gorm:"foreignKey:SubRegionID"`
}

// BeforeCreate hook - auto-generate UUID v7
func (cam *Camera) BeforeCreate(tx *gorm.DB) error {
	if cam.ID == uuid.Nil {
		cam.ID = uuid.Must(uuid.NewV7())
	}
	if cam.Status == "" {
		cam.Status = CameraStatusActive
	}
	if cam.AccessLevel == "" {
		cam.AccessLevel = CameraAccessAll
	}
	return nil
}

func (Camera) TableName() string {
	return "cameras"
}

// IsActive reports whether the camera should be streamed
func (cam *Camera) IsActive() bool {
	return cam.Status == CameraStatusActive
}

// NormalizeCameraAccess maps the console's access dropdown values onto the stored form.
// Returns "" for anything unrecognised.
func NormalizeCameraAccess(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "admin", "admin only":
		return CameraAccessAdmin
	case "all", "all users":
		return CameraAccessAll
	}
	return ""
}

// ════════════════════════════════════════════════════════════
// Request Models
// ════════════════════════════════════════════════════════════

// CameraRequest is shared by create and full update
type CameraRequest struct {
	Name        string    `json:"name" binding:"required"`
	RTSPURL     string    `json:"rtsp_url" binding:"required"`
	RegionID    uuid.UUID `json:"region_id" binding:"required"`
	SubRegionID uuid.UUID `json:"sub_region_id" binding:"required"`
	Description string    `json:"description" binding:"required"`
	AccessLevel string    `json:"access_level" binding:"required"`
	Status      string    `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

type UpdateCameraStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ════════════════════════════════════════════════════════════
// Response Models
// ════════════════════════════════════════════════════════════

type CameraResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	RTSPURL       string    `json:"rtsp_url"`
	RegionID      uuid.UUID `json:"region_id"`
	RegionName    string    `json:"region_name"`
	SubRegionID   uuid.UUID `json:"sub_region_id"`
	SubRegionName string    `json:"sub_region_name"`
	Description   string    `json:"description"`
	AccessLevel   string    `json:"access_level"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CameraFeed is one entry of the live dashboard's camera list
type CameraFeed struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	RTSPURL       string    `json:"rtsp_url"`
	RegionName    string    `json:"region_name"`
	SubRegionName string    `json:"sub_region_name"`
	Status        string    `json:"status"`
	AccessLevel   string    `json:"access_level"`
}

// ToResponse expects Region and SubRegion to be preloaded; missing joins render as empty names
func (cam *Camera) ToResponse() CameraResponse {
	resp := CameraResponse{
		ID:          cam.ID,
		Name:        cam.Name,
		RTSPURL:     cam.RTSPURL,
		RegionID:    cam.RegionID,
		SubRegionID: cam.SubRegionID,
		Description: cam.Description,
		AccessLevel: cam.AccessLevel,
		Status:      cam.Status,
		CreatedAt:   cam.CreatedAt,
		UpdatedAt:   cam.UpdatedAt,
	}
	if cam.Region != nil {
		resp.RegionName = cam.Region.Name
	}
	if cam.SubRegion != nil {
		resp.SubRegionName = cam.SubRegion.Name
	}
	return resp
}

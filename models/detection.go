package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AlertTypeFire  = "Fire"
	AlertTypeSmoke = "Smoke"

	// MinDetectionConfidence matches the threshold the analytics workers run the model at
	MinDetectionConfidence = 0.2

	DetectionTimeLayout = "15:04:05"
	DetectionDateLayout = "02/01/06"
)

// NormalizeAlertType returns the canonical alert type or "" if unknown
func NormalizeAlertType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fire":
		return AlertTypeFire
	case "smoke":
		return AlertTypeSmoke
	}
	return ""
}

// Detection is one fire/smoke alert raised against a camera.
// Camera, region and sub-region names are copied at ingest time so
// the log report keeps its rows after renames or deletes.
type Detection struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CameraID      *uuid.UUID `json:"camera_id" gorm:"type:uuid;index"`
	CameraName    string     `json:"camera_name" gorm:"not null;index"`
	RegionName    string     `json:"region" gorm:"not null;index"`
	SubRegionName string     `json:"sub_region" gorm:"not null;index"`
	AlertType     string     `json:"alert_type" gorm:"type:varchar(20);not null;index"`
	Confidence    float64    `json:"confidence"`
	Description   string     `json:"description" gorm:"type:text"`
	SnapshotURL   string     `json:"snapshot_url" gorm:"type:text"`
	SnapshotID    string     `json:"-" gorm:"type:text"`
	Source        string     `json:"source" gorm:"type:varchar(20)"` // http, mqtt
	DetectedAt    time.Time  `json:"detected_at" gorm:"not null;index:idx_detections_detected_at,sort:desc"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (d *Detection) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.Must(uuid.NewV7())
	}
	if d.DetectedAt.IsZero() {
		d.DetectedAt = time.Now().UTC()
	}
	return nil
}

func (Detection) TableName() string {
	return "detections"
}

// ════════════════════════════════════════════════════════════
// Request Models
// ════════════════════════════════════════════════════════════

// DetectionEvent is what analytics workers publish, over HTTP or MQTT
type DetectionEvent struct {
	CameraID    uuid.UUID  `json:"camera_id" form:"camera_id" binding:"required"`
	AlertType   string     `json:"alert_type" form:"alert_type" binding:"required"`
	Confidence  float64    `json:"confidence" form:"confidence"`
	Description string     `json:"description" form:"description"`
	DetectedAt  *time.Time `json:"detected_at" form:"detected_at" time_format:"2006-01-02T15:04:05Z07:00"`
}

// DetectionQuery is the log report filter bound from the query string
type DetectionQuery struct {
	Region    string `form:"region"`
	SubRegion string `form:"sub_region"`
	Camera    string `form:"camera"`
	AlertType string `form:"alert_type"`
	From      string `form:"from"` // YYYY-MM-DD, inclusive
	To        string `form:"to"`   // YYYY-MM-DD, inclusive
}

// ════════════════════════════════════════════════════════════
// Response Models
// ════════════════════════════════════════════════════════════

// DetectionRow is one line of the log report table
type DetectionRow struct {
	ID          uuid.UUID `json:"id"`
	Region      string    `json:"region"`
	SubRegion   string    `json:"sub_region"`
	CameraName  string    `json:"camera_name"`
	AlertType   string    `json:"alert_type"`
	Confidence  float64   `json:"confidence"`
	Description string    `json:"description"`
	SnapshotURL string    `json:"snapshot_url,omitempty"`
	TimeStamp   string    `json:"time_stamp"`
	DateCreated string    `json:"date_created"`
	DetectedAt  time.Time `json:"detected_at"`
}

func (d *Detection) ToRow() DetectionRow {
	return DetectionRow{
		ID:          d.ID,
		Region:      d.RegionName,
		SubRegion:   d.SubRegionName,
		CameraName:  d.CameraName,
		AlertType:   d.AlertType,
		Confidence:  d.Confidence,
		Description: d.Description,
		SnapshotURL: d.SnapshotURL,
		TimeStamp:   d.DetectedAt.Format(DetectionTimeLayout),
		DateCreated: d.DetectedAt.Format(DetectionDateLayout),
		DetectedAt:  d.DetectedAt,
	}
}

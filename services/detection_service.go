package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/metrics"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DetectionSourceHTTP = "http"
	DetectionSourceMQTT = "mqtt"

	queryDateLayout = "2006-01-02"
)

var (
	ErrUnknownCamera    = errors.New("Camera not found")
	ErrUnknownAlertType = errors.New("alert_type must be Fire or Smoke")
	ErrLowConfidence    = fmt.Errorf("confidence below %.1f", models.MinDetectionConfidence)
	ErrInvalidDate      = errors.New("dates must use YYYY-MM-DD")
)

// ValidateDetectionEvent canonicalizes the alert type and applies the confidence floor
func ValidateDetectionEvent(ev *models.DetectionEvent) error {
	if ev.CameraID == uuid.Nil {
		return ErrUnknownCamera
	}
	alertType := models.NormalizeAlertType(ev.AlertType)
	if alertType == "" {
		return ErrUnknownAlertType
	}
	if ev.Confidence < models.MinDetectionConfidence {
		return ErrLowConfidence
	}
	ev.AlertType = alertType
	return nil
}

// ParseDetectionPayload decodes an MQTT message body
func ParseDetectionPayload(payload []byte) (models.DetectionEvent, error) {
	var ev models.DetectionEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return ev, fmt.Errorf("invalid detection payload: %w", err)
	}
	if err := ValidateDetectionEvent(&ev); err != nil {
		return ev, err
	}
	return ev, nil
}

// DetectionService stores detections raised by the analytics workers
type DetectionService struct{}

func NewDetectionService() *DetectionService {
	return &DetectionService{}
}

// Ingest validates ev, copies the camera's names onto it and stores it.
// snapshot is optional; it is uploaded when image storage is configured.
func (s *DetectionService) Ingest(ctx context.Context, ev models.DetectionEvent, source string, snapshot io.Reader) (*models.Detection, error) {
	if err := ValidateDetectionEvent(&ev); err != nil {
		metrics.DetectionsDropped.Inc()
		return nil, err
	}

	var camera models.Camera
	if err := config.ConsoleGorm.WithContext(ctx).
		Preload("Region").
		Preload("SubRegion").
		Where("id = ?", ev.CameraID).
		First(&camera).Error; err != nil {
		metrics.DetectionsDropped.Inc()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCamera
		}
		return nil, err
	}

	cameraID := camera.ID
	detection := &models.Detection{
		CameraID:    &cameraID,
		CameraName:  camera.Name,
		AlertType:   ev.AlertType,
		Confidence:  ev.Confidence,
		Description: strings.TrimSpace(ev.Description),
		Source:      source,
	}
	if camera.Region != nil {
		detection.RegionName = camera.Region.Name
	}
	if camera.SubRegion != nil {
		detection.SubRegionName = camera.SubRegion.Name
	}
	if ev.DetectedAt != nil {
		detection.DetectedAt = ev.DetectedAt.UTC()
	}

	if snapshot != nil {
		url, publicID, err := UploadImage(ctx, snapshot, "", DetectionSnapshotFolder)
		switch {
		case errors.Is(err, ErrMediaDisabled):
		case err != nil:
			log.Printf("[detection] snapshot upload failed for camera %s: %v", camera.Name, err)
		default:
			detection.SnapshotURL = url
			detection.SnapshotID = publicID
		}
	}

	if err := config.ConsoleGorm.WithContext(ctx).Create(detection).Error; err != nil {
		return nil, err
	}

	metrics.DetectionsIngested.WithLabelValues(source, detection.AlertType).Inc()
	log.Printf("[detection] %s on %s (%.2f) via %s", detection.AlertType, detection.CameraName, detection.Confidence, source)

	if mailer := GetAlertMailer(); mailer != nil {
		mailer.NotifyAsync(detection)
	}
	return detection, nil
}

// DetectionDayRange turns the inclusive YYYY-MM-DD bounds of a query into
// [from, to) instants. Empty bounds come back as zero times.
func DetectionDayRange(q models.DetectionQuery) (time.Time, time.Time, error) {
	var from, to time.Time
	if q.From != "" {
		t, err := time.Parse(queryDateLayout, q.From)
		if err != nil {
			return from, to, ErrInvalidDate
		}
		from = t
	}
	if q.To != "" {
		t, err := time.Parse(queryDateLayout, q.To)
		if err != nil {
			return from, to, ErrInvalidDate
		}
		to = t.AddDate(0, 0, 1)
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return from, to, errors.New("from must not be after to")
	}
	return from, to, nil
}

// ScopeDetections applies the log report filter. Empty fields match everything.
func ScopeDetections(db *gorm.DB, q models.DetectionQuery) (*gorm.DB, error) {
	from, to, err := DetectionDayRange(q)
	if err != nil {
		return nil, err
	}
	if q.Region != "" {
		db = db.Where("region_name = ?", q.Region)
	}
	if q.SubRegion != "" {
		db = db.Where("sub_region_name = ?", q.SubRegion)
	}
	if q.Camera != "" {
		db = db.Where("camera_name = ?", q.Camera)
	}
	if q.AlertType != "" {
		alertType := models.NormalizeAlertType(q.AlertType)
		if alertType == "" {
			return nil, ErrUnknownAlertType
		}
		db = db.Where("alert_type = ?", alertType)
	}
	if !from.IsZero() {
		db = db.Where("detected_at >= ?", from)
	}
	if !to.IsZero() {
		db = db.Where("detected_at < ?", to)
	}
	return db, nil
}

// ClearDetections deletes every detection and its stored snapshots
func (s *DetectionService) ClearDetections(ctx context.Context) (int64, error) {
	result := config.ConsoleGorm.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Detection{})
	if result.Error != nil {
		return 0, result.Error
	}

	if media := GetMediaService(); media != nil {
		go func() {
			bg, cancel := config.WithCustomTimeout(time.Minute)
			defer cancel()
			if err := media.DeleteFolder(bg, DetectionSnapshotFolder); err != nil {
				log.Printf("[detection] failed to delete snapshots: %v", err)
			}
		}()
	}

	log.Printf("[detection] cleared %d detections", result.RowsAffected)
	return result.RowsAffected, nil
}

var detectionService = NewDetectionService()

// GetDetectionService returns the global detection service
func GetDetectionService() *DetectionService {
	return detectionService
}

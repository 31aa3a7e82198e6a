package services

import (
	"context"
	"fmt"

	"github.com/Asadel-Surveillance/asadel-console/cache"
	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"gorm.io/gorm"
)

// LoadRegionTree returns every region with its sub-regions, name ordered
func LoadRegionTree(ctx context.Context) ([]models.Region, error) {
	if regions, ok := cache.GetRegions(); ok {
		return regions, nil
	}

	var regions []models.Region
	if err := config.ConsoleGorm.WithContext(ctx).
		Order("name ASC").
		Preload("SubRegions", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Find(&regions).Error; err != nil {
		return nil, err
	}

	cache.SetRegions(regions)
	return regions, nil
}

const cameraRecordsQuery = `
	SELECT c.id::text, c.name, r.name, s.name
	FROM cameras c
	JOIN regions r ON r.id = c.region_id
	JOIN sub_regions s ON s.id = c.sub_region_id
	ORDER BY r.name, s.name, c.name`

// LoadCameraRecords returns the (region, sub-region, camera) triples the pickers cascade over
func LoadCameraRecords(ctx context.Context) ([]models.CameraRecord, error) {
	if records, ok := cache.GetCameraRecords(); ok {
		return records, nil
	}

	rows, err := config.ConsoleDB.Query(ctx, cameraRecordsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list camera records: %w", err)
	}
	defer rows.Close()

	records := []models.CameraRecord{}
	for rows.Next() {
		var r models.CameraRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.RegionName, &r.SubRegionName); err != nil {
			return nil, fmt.Errorf("failed to scan camera record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate camera records: %w", err)
	}

	cache.SetCameraRecords(records)
	return records, nil
}

const activeFeedsQuery = `
	SELECT c.id, c.name, c.rtsp_url, r.name, s.name, c.status, c.access_level
	FROM cameras c
	JOIN regions r ON r.id = c.region_id
	JOIN sub_regions s ON s.id = c.sub_region_id
	WHERE c.status = $1
	ORDER BY r.name, s.name, c.name`

// LoadActiveFeeds returns the live dashboard's camera list
func LoadActiveFeeds(ctx context.Context) ([]models.CameraFeed, error) {
	if feeds, ok := cache.GetFeeds(); ok {
		return feeds, nil
	}

	rows, err := config.ConsoleDB.Query(ctx, activeFeedsQuery, models.CameraStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active feeds: %w", err)
	}
	defer rows.Close()

	feeds := []models.CameraFeed{}
	for rows.Next() {
		var f models.CameraFeed
		if err := rows.Scan(&f.ID, &f.Name, &f.RTSPURL, &f.RegionName, &f.SubRegionName, &f.Status, &f.AccessLevel); err != nil {
			return nil, fmt.Errorf("failed to scan feed: %w", err)
		}
		feeds = append(feeds, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feeds: %w", err)
	}

	cache.SetFeeds(feeds)
	return feeds, nil
}

// VisibleFeeds drops admin-only cameras for non-admin viewers
func VisibleFeeds(feeds []models.CameraFeed, role string) []models.CameraFeed {
	out := make([]models.CameraFeed, 0, len(feeds))
	for _, f := range feeds {
		if CanViewCamera(role, f.AccessLevel) {
			out = append(out, f)
		}
	}
	return out
}

// InvalidateCatalog drops every cached region, camera and feed read model
func InvalidateCatalog() {
	cache.Invalidate()
}

const detectionRecordsQuery = `
	SELECT region_name, sub_region_name, camera_name
	FROM detections
	GROUP BY region_name, sub_region_name, camera_name
	ORDER BY MAX(detected_at) DESC`

// LoadDetectionRecords returns the distinct placements that have detections,
// most recently alerted first. Not cached; detections arrive continuously.
func LoadDetectionRecords(ctx context.Context) ([]models.DetectionRow, error) {
	rows, err := config.ConsoleDB.Query(ctx, detectionRecordsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list detection records: %w", err)
	}
	defer rows.Close()

	records := []models.DetectionRow{}
	for rows.Next() {
		var r models.DetectionRow
		if err := rows.Scan(&r.Region, &r.SubRegion, &r.CameraName); err != nil {
			return nil, fmt.Errorf("failed to scan detection record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate detection records: %w", err)
	}
	return records, nil
}

package camera_controller

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errBadRTSP        = errors.New("RTSP URL must start with rtsp:// or rtsps:// and include a host")
	errBadAccess      = errors.New("Access level must be Admin Only or All Users")
	errBadStatus      = errors.New("Status must be Active or Inactive")
	errRegionMissing  = errors.New("Region not found")
	errSubRegionWrong = errors.New("Sub-region does not belong to the selected region")
)

// normalizeCameraRequest trims fields and canonicalizes access and status in place
func normalizeCameraRequest(req *models.CameraRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.RTSPURL = strings.TrimSpace(req.RTSPURL)
	req.Description = strings.TrimSpace(req.Description)

	if req.Name == "" || req.Description == "" {
		return errors.New("Name and description are required")
	}
	if err := validateRTSPURL(req.RTSPURL); err != nil {
		return err
	}

	access := models.NormalizeCameraAccess(req.AccessLevel)
	if access == "" {
		return errBadAccess
	}
	req.AccessLevel = access

	if req.Status == "" {
		req.Status = models.CameraStatusActive
	}
	if req.Status != models.CameraStatusActive && req.Status != models.CameraStatusInactive {
		return errBadStatus
	}
	return nil
}

func validateRTSPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return errBadRTSP
	}
	switch strings.ToLower(u.Scheme) {
	case "rtsp", "rtsps":
		return nil
	}
	return errBadRTSP
}

// checkPlacement verifies the region exists and owns the sub-region
func checkPlacement(ctx context.Context, regionID, subRegionID uuid.UUID) error {
	var region models.Region
	if err := config.ConsoleGorm.WithContext(ctx).Select("id").First(&region, "id = ?", regionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errRegionMissing
		}
		return err
	}

	var count int64
	if err := config.ConsoleGorm.WithContext(ctx).
		Model(&models.SubRegion{}).
		Where("id = ? AND region_id = ?", subRegionID, regionID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errSubRegionWrong
	}
	return nil
}

func isPlacementError(err error) bool {
	return errors.Is(err, errRegionMissing) || errors.Is(err, errSubRegionWrong)
}

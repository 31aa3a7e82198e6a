package user_controller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/google/uuid"
)

var (
	errUsernameTaken = errors.New("Username already exists")
	errEmailTaken    = errors.New("Email already exists")
	errInvalidRole   = errors.New("Role must be Admin or User")
	errInvalidDOB    = errors.New("Invalid date of birth, expected YYYY-MM-DD")
	errAccessEmpty   = errors.New("At least one access module is required")
)

// SplitAccessField accepts repeated form values, a JSON array string or a
// comma separated string, which is what the different console builds send
func SplitAccessField(values []string) []string {
	if len(values) == 1 {
		raw := strings.TrimSpace(values[0])
		if strings.HasPrefix(raw, "[") {
			var parsed []string
			if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
				return parsed
			}
		}
		if strings.Contains(raw, ",") {
			return strings.Split(raw, ",")
		}
	}
	return values
}

// normalizeRoleAndAccess returns the stored forms of role and access
func normalizeRoleAndAccess(role string, access []string) (string, []string, error) {
	normalizedRole := models.NormalizeRole(role)
	if normalizedRole == "" {
		return "", nil, errInvalidRole
	}
	access = SplitAccessField(access)
	if len(access) == 0 {
		return "", nil, errAccessEmpty
	}
	normalizedAccess, err := services.NormalizeAccess(access)
	if err != nil {
		return "", nil, err
	}
	if len(normalizedAccess) == 0 {
		return "", nil, errAccessEmpty
	}
	return normalizedRole, normalizedAccess, nil
}

// identityTaken checks username and email uniqueness, ignoring excludeID
func identityTaken(ctx context.Context, username, email string, excludeID uuid.UUID) error {
	if username != "" {
		var count int64
		q := config.ConsoleGorm.WithContext(ctx).Model(&models.User{}).
			Where("LOWER(username) = LOWER(?)", username)
		if excludeID != uuid.Nil {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errUsernameTaken
		}
	}
	if email != "" {
		var count int64
		q := config.ConsoleGorm.WithContext(ctx).Model(&models.User{}).
			Where("LOWER(email) = LOWER(?)", email)
		if excludeID != uuid.Nil {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errEmailTaken
		}
	}
	return nil
}

func isConflict(err error) bool {
	return errors.Is(err, errUsernameTaken) || errors.Is(err, errEmailTaken)
}

// UploadProfileImage validates and stores a profile image for userID
func UploadProfileImage(ctx context.Context, fh *multipart.FileHeader, userID uuid.UUID) (string, string, error) {
	if err := services.ValidateImageUpload(fh.Filename, fh.Size, config.App.MaxImageBytes); err != nil {
		return "", "", err
	}
	file, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	publicID := userID.String() + "-" + time.Now().Format("20060102150405")
	return services.UploadImage(ctx, file, publicID, services.ProfileImageFolder)
}

// DeleteProfileImageAsync removes a stored image without holding up the response
func DeleteProfileImageAsync(publicID string) {
	if publicID == "" {
		return
	}
	go func() {
		ctx, cancel := config.WithCustomTimeout(30 * time.Second)
		defer cancel()
		if err := services.DeleteImage(ctx, publicID); err != nil {
			log.Printf("[user] failed to delete profile image %s: %v", publicID, err)
		}
	}()
}

// IsImageError reports upload validation failures that map to 400
func IsImageError(err error) bool {
	return errors.Is(err, services.ErrImageTooLarge) ||
		errors.Is(err, services.ErrImageUnsupported) ||
		errors.Is(err, services.ErrMediaDisabled)
}

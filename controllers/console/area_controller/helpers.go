package area_controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/google/uuid"
)

// blockedByCameras explains why an area with attached cameras cannot be deleted
func blockedByCameras(kind string, names []string) string {
	return fmt.Sprintf(
		"Cannot delete %s. %d cameras are associated with it. Please reassign or delete these cameras first: %s",
		kind, len(names), strings.Join(names, ", "),
	)
}

// attachedCameraNames lists the cameras referencing column = id
func attachedCameraNames(ctx context.Context, column string, id uuid.UUID) ([]string, error) {
	var names []string
	err := config.ConsoleGorm.WithContext(ctx).
		Model(&models.Camera{}).
		Where(column+" = ?", id).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

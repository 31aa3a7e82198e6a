package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ════════════════════════════════════════════════════════════
// Configuration Maps
// ════════════════════════════════════════════════════════════

// pathToResourceType maps URL segments to resource types
var pathToResourceType = map[string]string{
	"regions":     models.ResourceTypeRegion,
	"sub-regions": models.ResourceTypeSubRegion,
	"cameras":     models.ResourceTypeCamera,
	"AddCamera":   models.ResourceTypeCamera,
	"users":       models.ResourceTypeUser,
	"settings":    models.ResourceTypeSettings,
	"detections":  models.ResourceTypeDetection,
}

// resourceTypeToNameField maps resource types to the JSON field naming them
var resourceTypeToNameField = map[string]string{
	models.ResourceTypeRegion:    "name",
	models.ResourceTypeSubRegion: "name",
	models.ResourceTypeCamera:    "name",
	models.ResourceTypeUser:      "username",
	models.ResourceTypeSettings:  "username",
	models.ResourceTypeDetection: "camera_name",
}

// methodToActionVerb maps HTTP methods to action verbs
var methodToActionVerb = map[string]string{
	http.MethodPost:   "created",
	http.MethodPatch:  "updated",
	http.MethodPut:    "updated",
	http.MethodDelete: "deleted",
}

// ════════════════════════════════════════════════════════════
// Activity Logging Middleware
// ════════════════════════════════════════════════════════════

// ActivityLoggingMiddleware records every console mutation with its before/after state.
// Must run after ConsoleAuthMiddleware.
func ActivityLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actionVerb := methodToActionVerb[c.Request.Method]
		if actionVerb == "" {
			c.Next()
			return
		}

		userID, ok := GetUserID(c)
		if !ok {
			// worker-key requests carry no console user
			c.Next()
			return
		}
		username := c.GetString(CtxUsername)

		resourceType := extractResourceType(c.Request.URL.Path)
		if resourceType == "" {
			log.Printf("[activity-logging] could not determine resource type from path: %s", c.Request.URL.Path)
			c.Next()
			return
		}

		resourceID := c.Param("id")
		if resourceID == "" && strings.HasSuffix(c.Request.URL.Path, "/me") {
			resourceID = userID.String()
		}

		action := actionVerb + "_" + resourceType

		var beforeObject interface{}
		if c.Request.Method != http.MethodPost && resourceID != "" {
			beforeObject = fetchResourceFromDB(resourceType, resourceID)
		}
		resourceName := extractResourceName(resourceType, beforeObject)

		c.Next()

		if resourceID == "" {
			resourceID = c.GetString(models.CtxCreatedResourceID)
		}

		statusCode := c.Writer.Status()
		if statusCode >= 200 && statusCode < 300 {
			var afterObject interface{}
			if resourceID != "" && c.Request.Method != http.MethodDelete {
				afterObject = fetchResourceFromDB(resourceType, resourceID)
			}
			if name := extractResourceName(resourceType, afterObject); name != "" {
				resourceName = name
			}

			_ = services.LogActivity(services.LogActivityRequest{
				UserID:       userID,
				Username:     username,
				Action:       action,
				ResourceType: resourceType,
				ResourceID:   resourceID,
				ResourceName: resourceName,
				Changes:      services.CreateChanges(beforeObject, afterObject),
				Status:       models.StatusSuccess,
				Context:      c,
			})
			return
		}

		errorMsg := "Request failed with status " + http.StatusText(statusCode)
		if len(c.Errors) > 0 {
			errorMsg = c.Errors.Last().Error()
		}

		_ = services.LogActivity(services.LogActivityRequest{
			UserID:       userID,
			Username:     username,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			ResourceName: resourceName,
			Status:       models.StatusFailed,
			ErrorMessage: errorMsg,
			Context:      c,
		})

		log.Printf("[activity-logging] failed: %s by %s - status %d", action, username, statusCode)
	}
}

// ════════════════════════════════════════════════════════════
// Helper Functions
// ════════════════════════════════════════════════════════════

// extractResourceType walks the path backwards to the first known resource segment
// e.g. "/api/v1/cameras/<uuid>/status" → "camera"
func extractResourceType(path string) string {
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if isIDParam(parts[i]) {
			continue
		}
		if resourceType, exists := pathToResourceType[parts[i]]; exists {
			return resourceType
		}
	}
	return ""
}

func isIDParam(segment string) bool {
	if segment == "" || strings.HasPrefix(segment, ":") {
		return true
	}
	_, err := uuid.Parse(segment)
	return err == nil
}

func fetchResourceFromDB(resourceType, resourceID string) interface{} {
	if config.ConsoleGorm == nil {
		return nil
	}
	if _, err := uuid.Parse(resourceID); err != nil {
		return nil
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var target interface{}
	switch resourceType {
	case models.ResourceTypeRegion:
		target = &models.Region{}
	case models.ResourceTypeSubRegion:
		target = &models.SubRegion{}
	case models.ResourceTypeCamera:
		target = &models.Camera{}
	case models.ResourceTypeUser, models.ResourceTypeSettings:
		target = &models.User{}
	case models.ResourceTypeDetection:
		target = &models.Detection{}
	default:
		return nil
	}

	if err := config.ConsoleGorm.WithContext(ctx).First(target, "id = ?", resourceID).Error; err != nil {
		log.Printf("[activity-logging] failed to fetch %s %s: %v", resourceType, resourceID, err)
		return nil
	}
	return target
}

// extractResourceName reads the naming field from the resource's JSON form
func extractResourceName(resourceType string, obj interface{}) string {
	if obj == nil {
		return ""
	}
	fieldName := resourceTypeToNameField[resourceType]
	if fieldName == "" {
		return ""
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	var resourceMap map[string]interface{}
	if err := json.Unmarshal(data, &resourceMap); err != nil {
		return ""
	}

	if value, exists := resourceMap[fieldName]; exists {
		return toString(value)
	}
	return ""
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

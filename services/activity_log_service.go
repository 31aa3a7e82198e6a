package services

import (
	"encoding/json"
	"log"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActivityLogService records who changed what in the console
type ActivityLogService struct{}

// NewActivityLogService creates a new activity log service
func NewActivityLogService() *ActivityLogService {
	return &ActivityLogService{}
}

// LogActivityRequest contains the parameters for logging an activity
type LogActivityRequest struct {
	UserID       uuid.UUID
	Username     string
	Action       string // create_camera, delete_region, ...
	ResourceType string // models.ResourceType*
	ResourceID   string
	ResourceName string
	Changes      map[string]interface{} // {before: {...}, after: {...}}
	Status       string
	ErrorMessage string
	Context      *gin.Context // IP and User-Agent source
}

// LogActivity stores an activity row. Failures are logged, never returned,
// so a broken audit trail does not fail the request that triggered it.
func (s *ActivityLogService) LogActivity(req LogActivityRequest) error {
	if req.UserID == uuid.Nil {
		log.Printf("[activity-log] warning: UserID is nil for action %s", req.Action)
		return nil
	}
	if config.ConsoleGorm == nil {
		return nil
	}

	ipAddress := ""
	userAgent := ""
	if req.Context != nil {
		ipAddress = utils.GetClientIP(req.Context)
		userAgent = req.Context.GetHeader("User-Agent")
	}

	var changesJSON []byte
	if req.Changes != nil {
		data, err := json.Marshal(req.Changes)
		if err != nil {
			log.Printf("[activity-log] failed to marshal changes: %v", err)
			changesJSON = []byte("{}")
		} else {
			changesJSON = data
		}
	}

	if req.Status == "" {
		req.Status = models.StatusSuccess
	}

	activityLog := models.ActivityLog{
		UserID:       req.UserID,
		Username:     req.Username,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		ResourceName: req.ResourceName,
		Changes:      changesJSON,
		Status:       req.Status,
		ErrorMessage: req.ErrorMessage,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.ConsoleGorm.WithContext(ctx).Create(&activityLog).Error; err != nil {
		log.Printf("[activity-log] failed to create activity log: %v", err)
		return nil
	}

	log.Printf("[activity-log] %s: %s/%s/%s by %s", req.Action, req.ResourceType, req.ResourceID, req.ResourceName, req.Username)
	return nil
}

var activityLogService *ActivityLogService

// GetActivityLogService returns the global activity log service
func GetActivityLogService() *ActivityLogService {
	if activityLogService == nil {
		activityLogService = NewActivityLogService()
	}
	return activityLogService
}

// LogActivity logs an activity using the global service
func LogActivity(req LogActivityRequest) error {
	return GetActivityLogService().LogActivity(req)
}

func CreateChanges(before, after interface{}) map[string]interface{} {
	return map[string]interface{}{
		"before": before,
		"after":  after,
	}
}

// ActorFromContext reads the identity the auth middleware stored on c
func ActorFromContext(c *gin.Context) (uuid.UUID, string) {
	var id uuid.UUID
	if v, ok := c.Get("userID"); ok {
		id, _ = v.(uuid.UUID)
	}
	return id, c.GetString("username")
}

// LogFromContext logs an action for the user behind c
func LogFromContext(c *gin.Context, action, resourceType, resourceID, resourceName string, changes map[string]interface{}) {
	userID, username := ActorFromContext(c)
	_ = LogActivity(LogActivityRequest{
		UserID:       userID,
		Username:     username,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		ResourceName: resourceName,
		Changes:      changes,
		Context:      c,
	})
}

// LogFailureFromContext logs a failed action for the user behind c
func LogFailureFromContext(c *gin.Context, action, resourceType, resourceID, resourceName string, cause error) {
	userID, username := ActorFromContext(c)
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	_ = LogActivity(LogActivityRequest{
		UserID:       userID,
		Username:     username,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		ResourceName: resourceName,
		Status:       models.StatusFailed,
		ErrorMessage: msg,
		Context:      c,
	})
}

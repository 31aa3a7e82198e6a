package client

import (
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/filter"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/google/uuid"
)

// ════════════════════════════════════════════════════════════
// Auth
// ════════════════════════════════════════════════════════════

// Login signs in and stores the token in the session
func (c *Client) Login(ctx context.Context, username, password string) (models.UserResponse, error) {
	if err := firstError(
		Required("username", "Username", username),
		Required("password", "Password", password),
	); err != nil {
		return models.UserResponse{}, err
	}

	var out models.LoginResponse
	if _, err := c.doJSON(ctx, http.MethodPost, "/login", nil, models.LoginRequest{
		Username: strings.TrimSpace(username),
		Password: password,
	}, &out); err != nil {
		return models.UserResponse{}, err
	}
	c.session.Set(out.Token, out.User)
	return out.User, nil
}

// Logout ends the server session. The local session is cleared even when
// the server cannot be reached.
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.Clear()
	if !c.session.Authenticated() {
		return nil
	}
	_, err := c.doJSON(ctx, http.MethodPost, "/logout", nil, nil, nil)
	return err
}

func (c *Client) Me(ctx context.Context) (models.UserResponse, error) {
	var out models.UserResponse
	_, err := c.doJSON(ctx, http.MethodGet, "/me", nil, nil, &out)
	return out, err
}

// ════════════════════════════════════════════════════════════
// Areas
// ════════════════════════════════════════════════════════════

func (c *Client) Regions(ctx context.Context) ([]models.RegionResponse, error) {
	var out []models.RegionResponse
	_, err := c.doJSON(ctx, http.MethodGet, "/regions", nil, nil, &out)
	return out, err
}

// RegionsList is the flat dropdown form used by the camera and user forms
func (c *Client) RegionsList(ctx context.Context) ([]models.RegionListItem, error) {
	var out []models.RegionListItem
	_, err := c.doJSON(ctx, http.MethodGet, "/regions-list", nil, nil, &out)
	return out, err
}

func (c *Client) CreateRegion(ctx context.Context, name string) (models.RegionResponse, error) {
	var out models.RegionResponse
	if err := Required("name", "Region name", name); err != nil {
		return out, err
	}
	_, err := c.doJSON(ctx, http.MethodPost, "/regions", nil, models.CreateRegionRequest{Name: strings.TrimSpace(name)}, &out)
	return out, err
}

func (c *Client) UpdateRegion(ctx context.Context, id uuid.UUID, name string) (models.RegionResponse, error) {
	var out models.RegionResponse
	if err := Required("name", "Region name", name); err != nil {
		return out, err
	}
	_, err := c.doJSON(ctx, http.MethodPut, "/regions/"+id.String(), nil, models.UpdateRegionRequest{Name: strings.TrimSpace(name)}, &out)
	return out, err
}

func (c *Client) DeleteRegion(ctx context.Context, id uuid.UUID) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/regions/"+id.String(), nil, nil, nil)
	return err
}

func (c *Client) CreateSubRegion(ctx context.Context, regionID uuid.UUID, name string) (models.SubRegionResponse, error) {
	var out models.SubRegionResponse
	if err := Required("name", "Sub-region name", name); err != nil {
		return out, err
	}
	if regionID == uuid.Nil {
		return out, &ValidationError{Field: "region_id", Message: "Region is required"}
	}
	_, err := c.doJSON(ctx, http.MethodPost, "/sub-regions", nil, models.CreateSubRegionRequest{
		Name:     strings.TrimSpace(name),
		RegionID: regionID,
	}, &out)
	return out, err
}

func (c *Client) UpdateSubRegion(ctx context.Context, id uuid.UUID, name string) (models.SubRegionResponse, error) {
	var out models.SubRegionResponse
	if err := Required("name", "Sub-region name", name); err != nil {
		return out, err
	}
	_, err := c.doJSON(ctx, http.MethodPut, "/sub-regions/"+id.String(), nil, models.UpdateSubRegionRequest{Name: strings.TrimSpace(name)}, &out)
	return out, err
}

func (c *Client) DeleteSubRegion(ctx context.Context, id uuid.UUID) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/sub-regions/"+id.String(), nil, nil, nil)
	return err
}

func (c *Client) AreaOptions(ctx context.Context, sel filter.Selection) (models.CascadeOptions, error) {
	return c.options(ctx, "/areas/options", sel)
}

// ════════════════════════════════════════════════════════════
// Cameras
// ════════════════════════════════════════════════════════════

// CameraQuery filters the camera management table
type CameraQuery struct {
	Page      int
	Limit     int
	Region    string
	SubRegion string
	Status    string
	Search    string
}

func (q CameraQuery) values() url.Values {
	v := pageValues(q.Page, q.Limit)
	setIf(v, "region", q.Region)
	setIf(v, "sub_region", q.SubRegion)
	setIf(v, "status", q.Status)
	setIf(v, "search", q.Search)
	return v
}

func (c *Client) Cameras(ctx context.Context, q CameraQuery) ([]models.CameraResponse, *models.Pagination, error) {
	var out []models.CameraResponse
	meta, err := c.doJSON(ctx, http.MethodGet, "/cameras", q.values(), nil, &out)
	return out, meta, err
}

func (c *Client) Camera(ctx context.Context, id uuid.UUID) (models.CameraResponse, error) {
	var out models.CameraResponse
	_, err := c.doJSON(ctx, http.MethodGet, "/cameras/"+id.String(), nil, nil, &out)
	return out, err
}

func validateCamera(req models.CameraRequest) error {
	if err := firstError(
		Required("name", "Camera name", req.Name),
		Required("rtsp_url", "RTSP URL", req.RTSPURL),
		Required("description", "Description", req.Description),
		Required("access_level", "Access level", req.AccessLevel),
	); err != nil {
		return err
	}
	if req.RegionID == uuid.Nil {
		return &ValidationError{Field: "region_id", Message: "Region is required"}
	}
	if req.SubRegionID == uuid.Nil {
		return &ValidationError{Field: "sub_region_id", Message: "Sub-region is required"}
	}
	return nil
}

func (c *Client) CreateCamera(ctx context.Context, req models.CameraRequest) (models.CameraResponse, error) {
	var out models.CameraResponse
	if err := validateCamera(req); err != nil {
		return out, err
	}
	_, err := c.doJSON(ctx, http.MethodPost, "/cameras", nil, req, &out)
	return out, err
}

func (c *Client) UpdateCamera(ctx context.Context, id uuid.UUID, req models.CameraRequest) (models.CameraResponse, error) {
	var out models.CameraResponse
	if err := validateCamera(req); err != nil {
		return out, err
	}
	_, err := c.doJSON(ctx, http.MethodPut, "/cameras/"+id.String(), nil, req, &out)
	return out, err
}

func (c *Client) UpdateCameraStatus(ctx context.Context, id uuid.UUID, status string) error {
	if status != models.CameraStatusActive && status != models.CameraStatusInactive {
		return &ValidationError{Field: "status", Message: "Status must be Active or Inactive"}
	}
	_, err := c.doJSON(ctx, http.MethodPut, "/cameras/"+id.String()+"/status", nil, models.UpdateCameraStatusRequest{Status: status}, nil)
	return err
}

func (c *Client) DeleteCamera(ctx context.Context, id uuid.UUID) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/cameras/"+id.String(), nil, nil, nil)
	return err
}

func (c *Client) CameraOptions(ctx context.Context, sel filter.Selection) (models.CascadeOptions, error) {
	return c.options(ctx, "/cameras/options", sel)
}

// ════════════════════════════════════════════════════════════
// Users and settings
// ════════════════════════════════════════════════════════════

// Image is an optional profile picture upload
type Image struct {
	Filename string
	Data     []byte
}

// NewUser is the add-user form
type NewUser struct {
	Username        string
	Password        string
	ConfirmPassword string
	Email           string
	FullName        string
	Role            string
	DateOfBirth     string // YYYY-MM-DD
	Country         string
	Access          []string
	ProfileImage    *Image
}

func (u NewUser) validate() error {
	if err := firstError(
		Required("username", "Username", u.Username),
		ValidateEmail(u.Email),
		ValidatePassword(u.Password),
		ValidatePasswordConfirmation(u.Password, u.ConfirmPassword),
		Required("role", "Role", u.Role),
		Required("date_of_birth", "Date of birth", u.DateOfBirth),
		Required("country", "Country", u.Country),
	); err != nil {
		return err
	}
	if len(u.Access) == 0 {
		return &ValidationError{Field: "access", Message: "At least one access module is required"}
	}
	return nil
}

func (c *Client) Users(ctx context.Context, page, limit int, search string) ([]models.UserResponse, *models.Pagination, error) {
	v := pageValues(page, limit)
	setIf(v, "search", search)
	var out []models.UserResponse
	meta, err := c.doJSON(ctx, http.MethodGet, "/users", v, nil, &out)
	return out, meta, err
}

func (c *Client) User(ctx context.Context, id uuid.UUID) (models.UserResponse, error) {
	var out models.UserResponse
	_, err := c.doJSON(ctx, http.MethodGet, "/users/"+id.String(), nil, nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, u NewUser) (models.UserResponse, error) {
	var out models.UserResponse
	if err := u.validate(); err != nil {
		return out, err
	}
	_, err := c.doMultipart(ctx, http.MethodPost, "/users", func(mw *multipart.Writer) error {
		fields := [][2]string{
			{"username", strings.TrimSpace(u.Username)},
			{"password", u.Password},
			{"email", strings.TrimSpace(u.Email)},
			{"full_name", u.FullName},
			{"role", u.Role},
			{"date_of_birth", u.DateOfBirth},
			{"country", u.Country},
		}
		for _, f := range fields {
			if err := mw.WriteField(f[0], f[1]); err != nil {
				return err
			}
		}
		for _, a := range u.Access {
			if err := mw.WriteField("access", a); err != nil {
				return err
			}
		}
		return writeImage(mw, u.ProfileImage)
	}, &out)
	return out, err
}

func (c *Client) UpdateUserAccess(ctx context.Context, id uuid.UUID, role string, access []string) (models.UserResponse, error) {
	var out models.UserResponse
	if err := Required("role", "Role", role); err != nil {
		return out, err
	}
	if len(access) == 0 {
		return out, &ValidationError{Field: "access", Message: "At least one access module is required"}
	}
	_, err := c.doJSON(ctx, http.MethodPut, "/users/"+id.String(), nil, models.UpdateUserAccessRequest{Role: role, Access: access}, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/users/"+id.String(), nil, nil, nil)
	return err
}

func (c *Client) UpdateMe(ctx context.Context, req models.UpdateMeRequest) (models.UserResponse, error) {
	var out models.UserResponse
	if req.Email != nil {
		if err := ValidateEmail(*req.Email); err != nil {
			return out, err
		}
	}
	_, err := c.doJSON(ctx, http.MethodPut, "/users/me", nil, req, &out)
	return out, err
}

// DeleteMyAccount removes the signed-in user and ends the local session
func (c *Client) DeleteMyAccount(ctx context.Context) error {
	if _, err := c.doJSON(ctx, http.MethodDelete, "/users/me", nil, nil, nil); err != nil {
		return err
	}
	c.session.Clear()
	return nil
}

func (c *Client) UserSettings(ctx context.Context, id uuid.UUID) (models.UserResponse, error) {
	var out models.UserResponse
	_, err := c.doJSON(ctx, http.MethodGet, "/settings/user/"+id.String(), nil, nil, &out)
	return out, err
}

// SettingsUpdate is the settings form. Empty fields are left unchanged.
type SettingsUpdate struct {
	Name               string
	Email              string
	Role               string
	Access             []string
	DateOfBirth        string
	Country            string
	OldPassword        string
	NewPassword        string
	ConfirmPassword    string
	ProfileImage       *Image
	RemoveProfileImage bool
}

func (s SettingsUpdate) validate() error {
	if s.Email != "" {
		if err := ValidateEmail(s.Email); err != nil {
			return err
		}
	}
	if s.NewPassword != "" {
		return firstError(
			Required("oldPassword", "Old password", s.OldPassword),
			ValidatePassword(s.NewPassword),
			ValidatePasswordConfirmation(s.NewPassword, s.ConfirmPassword),
		)
	}
	return nil
}

func (c *Client) UpdateUserSettings(ctx context.Context, id uuid.UUID, s SettingsUpdate) (models.UserResponse, error) {
	var out models.UserResponse
	if err := s.validate(); err != nil {
		return out, err
	}
	_, err := c.doMultipart(ctx, http.MethodPut, "/settings/user/"+id.String(), func(mw *multipart.Writer) error {
		fields := [][2]string{
			{"name", s.Name},
			{"email", s.Email},
			{"role", s.Role},
			{"dateOfBirth", s.DateOfBirth},
			{"country", s.Country},
			{"oldPassword", s.OldPassword},
			{"newPassword", s.NewPassword},
		}
		for _, f := range fields {
			if f[1] == "" {
				continue
			}
			if err := mw.WriteField(f[0], f[1]); err != nil {
				return err
			}
		}
		if len(s.Access) > 0 {
			if err := mw.WriteField("access", strings.Join(s.Access, ",")); err != nil {
				return err
			}
		}
		if s.RemoveProfileImage {
			return mw.WriteField("profileImage", "null")
		}
		return writeImage(mw, s.ProfileImage)
	}, &out)
	if err == nil && c.session.Authenticated() {
		if me, ok := c.session.User(); ok && me.ID == out.ID {
			c.session.Set(c.session.Token(), out)
		}
	}
	return out, err
}

// ════════════════════════════════════════════════════════════
// Dashboard and feeds
// ════════════════════════════════════════════════════════════

// DashboardCameras lists the active cameras the signed-in user may watch
func (c *Client) DashboardCameras(ctx context.Context) ([]models.CameraFeed, error) {
	var out []models.CameraFeed
	_, err := c.doJSON(ctx, http.MethodGet, "/dashboard/cameras", nil, nil, &out)
	return out, err
}

func (c *Client) DashboardOptions(ctx context.Context, sel filter.Selection) (models.CascadeOptions, error) {
	return c.options(ctx, "/dashboard/options", sel)
}

// FeedURL is the MJPEG address of a camera. The token rides in the query
// because image elements cannot send headers.
func (c *Client) FeedURL(cameraID uuid.UUID) string {
	v := url.Values{}
	if token := c.session.Token(); token != "" {
		v.Set("token", token)
	}
	return c.endpoint("/video_feed/"+cameraID.String(), v)
}

// ════════════════════════════════════════════════════════════
// Detections and reports
// ════════════════════════════════════════════════════════════

// DetectionQuery filters the log report
type DetectionQuery struct {
	Page      int
	Limit     int
	Selection filter.Selection
	AlertType string
	From      string // YYYY-MM-DD
	To        string
}

func (q DetectionQuery) values() url.Values {
	v := pageValues(q.Page, q.Limit)
	addSelection(v, q.Selection)
	setIf(v, "alert_type", q.AlertType)
	setIf(v, "from", q.From)
	setIf(v, "to", q.To)
	return v
}

func (c *Client) Detections(ctx context.Context, q DetectionQuery) ([]models.DetectionRow, *models.Pagination, error) {
	var out []models.DetectionRow
	meta, err := c.doJSON(ctx, http.MethodGet, "/detections", q.values(), nil, &out)
	return out, meta, err
}

func (c *Client) DetectionOptions(ctx context.Context, sel filter.Selection) (models.CascadeOptions, error) {
	return c.options(ctx, "/detections/options", sel)
}

func (c *Client) Detection(ctx context.Context, id uuid.UUID) (models.DetectionRow, error) {
	var out models.DetectionRow
	_, err := c.doJSON(ctx, http.MethodGet, "/detections/"+id.String(), nil, nil, &out)
	return out, err
}

func (c *Client) DetectionPDF(ctx context.Context, id uuid.UUID) (*Download, error) {
	return c.download(ctx, "/detections/"+id.String()+"/pdf", nil)
}

// DetectionReport downloads the filtered log as "pdf" or "xlsx"
func (c *Client) DetectionReport(ctx context.Context, format string, q DetectionQuery) (*Download, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "pdf" && format != "xlsx" {
		return nil, &ValidationError{Field: "format", Message: "Format must be pdf or xlsx"}
	}
	v := q.values()
	v.Del("page")
	v.Del("limit")
	v.Set("format", format)
	return c.download(ctx, "/detections/report", v)
}

// ClearDetections deletes every detection and returns how many went
func (c *Client) ClearDetections(ctx context.Context) (int64, error) {
	var out struct {
		Deleted int64 `json:"deleted"`
	}
	_, err := c.doJSON(ctx, http.MethodDelete, "/detections", nil, nil, &out)
	return out.Deleted, err
}

func (c *Client) ActivityLogs(ctx context.Context, page, limit int, resourceType string) ([]models.ActivityLogResponse, *models.Pagination, error) {
	v := pageValues(page, limit)
	setIf(v, "resource_type", resourceType)
	var out []models.ActivityLogResponse
	meta, err := c.doJSON(ctx, http.MethodGet, "/activity-logs", v, nil, &out)
	return out, meta, err
}

// ════════════════════════════════════════════════════════════
// helpers
// ════════════════════════════════════════════════════════════

func (c *Client) options(ctx context.Context, path string, sel filter.Selection) (models.CascadeOptions, error) {
	v := url.Values{}
	addSelection(v, sel.Normalize())
	var out models.CascadeOptions
	_, err := c.doJSON(ctx, http.MethodGet, path, v, nil, &out)
	return out, err
}

func addSelection(v url.Values, sel filter.Selection) {
	setIf(v, "region", sel.Region)
	setIf(v, "sub_region", sel.SubRegion)
	setIf(v, "camera", sel.Leaf)
}

func pageValues(page, limit int) url.Values {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

func setIf(v url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		v.Set(key, value)
	}
}

func writeImage(mw *multipart.Writer, img *Image) error {
	if img == nil || len(img.Data) == 0 {
		return nil
	}
	part, err := mw.CreateFormFile("profileImage", img.Filename)
	if err != nil {
		return err
	}
	_, err = part.Write(img.Data)
	return err
}

package settings_controller

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBuildSettingsUpdatesIgnoresRoleForNonAdmin(t *testing.T) {
	form := settingsForm{
		Name:   " Ada ",
		Role:   "Admin",
		Access: []string{"User Management"},
	}
	updates, err := buildSettingsUpdates(form, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updates["full_name"] != "Ada" {
		t.Errorf("full_name = %v", updates["full_name"])
	}
	if _, ok := updates["role"]; ok {
		t.Error("non-admin must not change role")
	}
	if _, ok := updates["access_level"]; ok {
		t.Error("non-admin must not change access")
	}
}

func TestBuildSettingsUpdatesAdmin(t *testing.T) {
	form := settingsForm{Role: "user", Access: []string{"Live Feed", "reports"}}
	updates, err := buildSettingsUpdates(form, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updates["role"] != models.RoleUser {
		t.Errorf("role = %v", updates["role"])
	}
	access, ok := updates["access_level"].(datatypes.JSONSlice[string])
	if !ok || len(access) != 2 || access[0] != models.ModuleDashboard || access[1] != models.ModuleReportsAnalytics {
		t.Errorf("access = %v", updates["access_level"])
	}
}

func TestBuildSettingsUpdatesRejects(t *testing.T) {
	cases := []settingsForm{
		{Email: "not-an-email"},
		{DateOfBirth: "yesterday"},
		{Role: "root"},
		{Access: []string{"Payroll"}},
	}
	for _, form := range cases {
		if _, err := buildSettingsUpdates(form, true); err == nil {
			t.Errorf("%+v: expected error", form)
		}
	}
}

func TestUpdateUserSettingsWeakNewPassword(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("oldPassword", "Old!pass1")
	_ = w.WriteField("newPassword", "short")
	_ = w.Close()

	r := gin.New()
	r.PUT("/settings/user/:id", UpdateUserSettings)
	req := httptest.NewRequest(http.MethodPut, "/settings/user/0190a3c4-0000-7000-8000-000000000001", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateUserSettingsNeedsOldPassword(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("newPassword", "N3w!password")
	_ = w.Close()

	r := gin.New()
	r.PUT("/settings/user/:id", UpdateUserSettings)
	req := httptest.NewRequest(http.MethodPut, "/settings/user/0190a3c4-0000-7000-8000-000000000001", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDiscardedImage(t *testing.T) {
	tests := []struct {
		name         string
		saved        bool
		oldID, newID string
		want         string
	}{
		{"upload saved", true, "users/old", "users/new", "users/old"},
		{"upload not saved", false, "users/old", "users/new", "users/new"},
		{"removal saved", true, "users/old", "", "users/old"},
		{"removal not saved", false, "users/old", "", ""},
		{"first upload not saved", false, "", "users/new", "users/new"},
	}
	for _, tt := range tests {
		if got := discardedImage(tt.saved, tt.oldID, tt.newID); got != tt.want {
			t.Errorf("%s: discardedImage = %q, want %q", tt.name, got, tt.want)
		}
	}
}

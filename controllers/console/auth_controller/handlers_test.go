package auth_controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLoginRequiresBothFields(t *testing.T) {
	r := gin.New()
	r.POST("/login", Login)

	for _, body := range []string{`{}`, `{"username":"admin"}`, `{"password":"x"}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestGoogleRoutesDisabledWithoutCredentials(t *testing.T) {
	r := gin.New()
	r.GET("/auth/google/login", GoogleLogin)
	r.GET("/auth/google/callback", GoogleCallback)

	for _, path := range []string{"/auth/google/login", "/auth/google/callback?state=x&code=y"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rec.Code)
		}
	}
}

func TestClearTokenCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/logout", nil)
	ClearTokenCookie(c)

	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, middleware.TokenCookie+"=") || !strings.Contains(cookie, "Max-Age=0") {
		t.Fatalf("Set-Cookie = %q", cookie)
	}
}

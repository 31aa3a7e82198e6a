package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Asadel-Surveillance/asadel-console/filter"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/google/uuid"
)

func writeEnvelope(w http.ResponseWriter, status int, resp models.ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/v1", NewSession(), WithHTTPClient(srv.Client())), srv
}

func TestLoginStoresSession(t *testing.T) {
	user := models.UserResponse{ID: uuid.New(), Username: "admin", Role: models.RoleAdmin}
	var gotAuth string

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/login":
			var req models.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Username != "admin" || req.Password != "Secret#123" {
				writeEnvelope(w, http.StatusUnauthorized, models.ApiResponse{Message: "Invalid credentials", Error: true})
				return
			}
			writeEnvelope(w, http.StatusOK, models.ApiResponse{Success: true, Data: models.LoginResponse{Token: "tok-1", User: user}})
		case "/api/v1/me":
			gotAuth = r.Header.Get("Authorization")
			writeEnvelope(w, http.StatusOK, models.ApiResponse{Success: true, Data: user})
		}
	})

	got, err := c.Login(context.Background(), " admin ", "Secret#123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != user.ID || c.Session().Token() != "tok-1" || !c.Session().IsAdmin() {
		t.Fatalf("session not populated: %+v token=%q", got, c.Session().Token())
	}

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("me: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestLoginRequiresFieldsBeforeSending(t *testing.T) {
	var hits int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	})

	_, err := c.Login(context.Background(), "admin", "  ")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "password" {
		t.Fatalf("err = %v, want password ValidationError", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("request was sent")
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, models.ApiResponse{Message: "Token has been revoked", Error: true})
	})
	c.Session().Set("stale", models.UserResponse{Username: "op"})

	_, err := c.DashboardCameras(context.Background())
	var serr *ServerError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %T, want *ServerError", err)
	}
	if !serr.Unauthorized() || serr.Message != "Token has been revoked" {
		t.Fatalf("got %+v", serr)
	}
	if c.Session().Authenticated() {
		t.Fatal("session should be cleared on 401")
	}
}

func TestServerErrorMessages(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		want   string
	}{
		"verbatim":      {http.StatusBadRequest, `{"success":false,"message":"Region with this name already exists","error":true}`, "Region with this name already exists"},
		"string error":  {http.StatusBadRequest, `{"error":"Camera not found"}`, "Camera not found"},
		"empty body":    {http.StatusInternalServerError, ``, genericErrorMessage},
		"html body":     {http.StatusBadGateway, `<html>bad gateway</html>`, genericErrorMessage},
		"blank message": {http.StatusInternalServerError, `{"success":false,"message":"  "}`, genericErrorMessage},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			err := c.DeleteRegion(context.Background(), uuid.New())
			var serr *ServerError
			if !errors.As(err, &serr) {
				t.Fatalf("err = %v, want *ServerError", err)
			}
			if serr.Status != tc.status || serr.Message != tc.want {
				t.Fatalf("got %d %q, want %d %q", serr.Status, serr.Message, tc.status, tc.want)
			}
		})
	}
}

func TestReportedFailureOnSuccessStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"message":"Camera is offline","error":true}`))
	})
	c.Session().Set("tok", models.UserResponse{Username: "admin"})

	cams, err := c.DashboardCameras(context.Background())
	var serr *ServerError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *ServerError", err)
	}
	if serr.Status != http.StatusOK || serr.Message != "Camera is offline" {
		t.Fatalf("got %d %q", serr.Status, serr.Message)
	}
	if cams != nil {
		t.Fatalf("cameras = %+v, want nil", cams)
	}
	if !c.Session().Authenticated() {
		t.Fatal("a reported failure must not clear the session")
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(base+"/api/v1", nil)
	_, err := c.Regions(context.Background())
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
	if err.Error() != "Failed to connect to the server" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestCamerasPaginationAndQuery(t *testing.T) {
	var query string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeEnvelope(w, http.StatusOK, models.ApiResponse{
			Success: true,
			Data:    []models.CameraResponse{{Name: "Lobby Cam", RegionName: "Building A"}},
			Meta:    models.NewPagination(2, 10, 11),
		})
	})

	cams, meta, err := c.Cameras(context.Background(), CameraQuery{Page: 2, Limit: 10, Region: "Building A", Status: " "})
	if err != nil {
		t.Fatalf("cameras: %v", err)
	}
	if len(cams) != 1 || meta == nil || meta.TotalPages != 2 {
		t.Fatalf("cams=%v meta=%+v", cams, meta)
	}
	if query != "limit=10&page=2&region=Building+A" {
		t.Fatalf("query = %q", query)
	}
}

func TestOptionsSendsSelection(t *testing.T) {
	var query string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeEnvelope(w, http.StatusOK, models.ApiResponse{Success: true, Data: models.CascadeOptions{
			Selection: filter.Selection{Region: "Building A"},
			Options:   filter.Options{Regions: []string{"Building A"}, SubRegions: []string{"Floor 1"}, Leaves: []string{}},
		}})
	})

	// the dangling camera is dropped before sending
	got, err := c.DetectionOptions(context.Background(), filter.Selection{Region: "Building A", Leaf: "Lobby Cam"})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if query != "region=Building+A" {
		t.Fatalf("query = %q", query)
	}
	if len(got.Options.SubRegions) != 1 || got.Selection.Region != "Building A" {
		t.Fatalf("got %+v", got)
	}
}

func TestCreateUserValidatesLocally(t *testing.T) {
	var hits int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	})

	base := NewUser{
		Username: "op", Email: "op@site.com", Password: "Secret#123", ConfirmPassword: "Secret#123",
		Role: "User", DateOfBirth: "1990-01-01", Country: "Ghana", Access: []string{"Dashboard"},
	}
	cases := map[string]struct {
		mutate func(*NewUser)
		field  string
	}{
		"email":    {func(u *NewUser) { u.Email = "op@site" }, "email"},
		"weak":     {func(u *NewUser) { u.Password, u.ConfirmPassword = "secret", "secret" }, "password"},
		"mismatch": {func(u *NewUser) { u.ConfirmPassword = "Secret#124" }, "confirm_password"},
		"access":   {func(u *NewUser) { u.Access = nil }, "access"},
		"country":  {func(u *NewUser) { u.Country = "" }, "country"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			u := base
			tc.mutate(&u)
			_, err := c.CreateUser(context.Background(), u)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("err = %v, want ValidationError on %s", err, tc.field)
			}
		})
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("invalid forms must not reach the server")
	}
}

func TestCreateUserSendsMultipart(t *testing.T) {
	var access []string
	var image string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse: %v", err)
		}
		access = r.MultipartForm.Value["access"]
		if fh := r.MultipartForm.File["profileImage"]; len(fh) == 1 {
			image = fh[0].Filename
		}
		writeEnvelope(w, http.StatusCreated, models.ApiResponse{Success: true, Data: models.UserResponse{Username: r.FormValue("username")}})
	})

	got, err := c.CreateUser(context.Background(), NewUser{
		Username: "op", Email: "op@site.com", Password: "Secret#123", ConfirmPassword: "Secret#123",
		Role: "User", DateOfBirth: "1990-01-01", Country: "Ghana",
		Access:       []string{"Dashboard", "Reports and Analytics"},
		ProfileImage: &Image{Filename: "me.png", Data: []byte{0x89, 'P', 'N', 'G'}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.Username != "op" || len(access) != 2 || image != "me.png" {
		t.Fatalf("got %+v access=%v image=%q", got, access, image)
	}
}

func TestFeedURLCarriesToken(t *testing.T) {
	s := NewSession()
	s.Set("a b", models.UserResponse{})
	c := New("http://console.local/api/v1/", s)
	id := uuid.MustParse("0190a3c4-0000-7000-8000-000000000001")

	want := "http://console.local/api/v1/video_feed/" + id.String() + "?token=a+b"
	if got := c.FeedURL(id); got != want {
		t.Fatalf("FeedURL = %q, want %q", got, want)
	}
}

func TestDetectionReportDownload(t *testing.T) {
	var query string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="detections_report.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	d, err := c.DetectionReport(context.Background(), "PDF", DetectionQuery{Page: 3, AlertType: "Fire"})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if d.Filename != "detections_report.pdf" || !strings.HasPrefix(string(d.Body), "%PDF") {
		t.Fatalf("got %+v", d)
	}
	if query != "alert_type=Fire&format=pdf" {
		t.Fatalf("query = %q", query)
	}

	if _, err := c.DetectionReport(context.Background(), "csv", DetectionQuery{}); err == nil {
		t.Fatal("csv should be rejected locally")
	}
}

func TestLogoutClearsEvenOnFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, models.ApiResponse{Message: "Failed to end session", Error: true})
	})
	c.Session().Set("tok", models.UserResponse{})

	if err := c.Logout(context.Background()); err == nil {
		t.Fatal("expected server error")
	}
	if c.Session().Authenticated() {
		t.Fatal("session should be cleared")
	}
}

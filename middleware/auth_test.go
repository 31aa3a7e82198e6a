package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUsers map[uuid.UUID]*models.User

func withStubs(t *testing.T, users stubUsers, revoked map[string]bool) {
	t.Helper()
	if err := services.InitJWTService("middleware-test-secret", time.Hour); err != nil {
		t.Fatal(err)
	}

	prevLoad, prevRevoked := loadUser, isRevoked
	loadUser = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		return nil, errors.New("record not found")
	}
	isRevoked = func(_ context.Context, hash string) (bool, error) {
		return revoked[hash], nil
	}
	t.Cleanup(func() {
		loadUser, isRevoked = prevLoad, prevRevoked
	})
}

func newUser(role string, access ...string) *models.User {
	return &models.User{
		ID:          uuid.New(),
		Username:    "operator",
		Role:        role,
		AccessLevel: datatypes.JSONSlice[string](access),
		Status:      models.UserStatusActive,
	}
}

func tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	token, _, err := services.GenerateConsoleJWT(u.ID.String(), u.Username)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func authRouter(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{ConsoleAuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": GetRole(c)})
	})
	r.GET("/protected/:id", handlers...)
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestConsoleAuthRejectsMissingAndMalformedTokens(t *testing.T) {
	withStubs(t, stubUsers{}, nil)
	r := authRouter()

	tests := []struct {
		name   string
		header string
	}{
		{"no token", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if rec := do(r, req); rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestConsoleAuthAcceptsHeaderCookieAndQuery(t *testing.T) {
	u := newUser("user", "Dashboard")
	withStubs(t, stubUsers{u.ID: u}, nil)
	r := authRouter()
	token := tokenFor(t, u)

	header := httptest.NewRequest(http.MethodGet, "/protected/x", nil)
	header.Header.Set("Authorization", "Bearer "+token)

	cookie := httptest.NewRequest(http.MethodGet, "/protected/x", nil)
	cookie.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})

	query := httptest.NewRequest(http.MethodGet, "/protected/x?token="+token, nil)

	for name, req := range map[string]*http.Request{"header": header, "cookie": cookie, "query": query} {
		if rec := do(r, req); rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200 (%s)", name, rec.Code, rec.Body.String())
		}
	}
}

func TestConsoleAuthRejectsRevokedAndDisabled(t *testing.T) {
	active := newUser("User", "Dashboard")
	disabled := newUser("User", "Dashboard")
	disabled.Status = models.UserStatusDisabled

	activeToken := tokenFor(t, active)
	withStubs(t, stubUsers{active.ID: active, disabled.ID: disabled}, map[string]bool{
		services.HashToken(activeToken): true,
	})
	r := authRouter()

	for name, token := range map[string]string{
		"revoked":  activeToken,
		"disabled": tokenFor(t, disabled),
		"unknown":  tokenFor(t, newUser("User")),
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected/x", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		if rec := do(r, req); rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rec.Code)
		}
	}
}

func TestRequireModule(t *testing.T) {
	reporter := newUser("User", "Reports & Analytics")
	admin := newUser("admin")
	withStubs(t, stubUsers{reporter.ID: reporter, admin.ID: admin}, nil)

	tests := []struct {
		name   string
		user   *models.User
		module string
		want   int
	}{
		{"legacy label grants reports", reporter, models.ModuleReportsAnalytics, http.StatusOK},
		{"user management denied", reporter, models.ModuleUserManagement, http.StatusForbidden},
		{"admin holds everything", admin, models.ModuleUserManagement, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authRouter(RequireModule(tt.module))
			req := httptest.NewRequest(http.MethodGet, "/protected/x", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, tt.user))
			if rec := do(r, req); rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	self := newUser("User", "Dashboard")
	other := newUser("User", "Dashboard")
	admin := newUser("Admin")
	withStubs(t, stubUsers{self.ID: self, other.ID: other, admin.ID: admin}, nil)
	r := authRouter(RequireSelfOrAdmin("id"))

	check := func(caller *models.User, target uuid.UUID, want int) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/protected/"+target.String(), nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, caller))
		if rec := do(r, req); rec.Code != want {
			t.Errorf("status = %d, want %d", rec.Code, want)
		}
	}
	check(self, self.ID, http.StatusOK)
	check(self, other.ID, http.StatusForbidden)
	check(admin, other.ID, http.StatusOK)
}

func TestRequireAdmin(t *testing.T) {
	user := newUser("User", "Dashboard")
	withStubs(t, stubUsers{user.ID: user}, nil)
	r := authRouter(RequireAdmin())
	req := httptest.NewRequest(http.MethodGet, "/protected/x", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	if rec := do(r, req); rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestWorkerOrConsoleAuth(t *testing.T) {
	withStubs(t, stubUsers{}, nil)
	t.Setenv("WORKER_API_KEY", "worker-secret")

	r := gin.New()
	r.POST("/frames", WorkerOrConsoleAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"worker": IsWorker(c)})
	})

	ok := httptest.NewRequest(http.MethodPost, "/frames", nil)
	ok.Header.Set(WorkerKeyHeader, "worker-secret")
	if rec := do(r, ok); rec.Code != http.StatusOK {
		t.Fatalf("worker key rejected: %d", rec.Code)
	}

	bad := httptest.NewRequest(http.MethodPost, "/frames", nil)
	bad.Header.Set(WorkerKeyHeader, "nope")
	if rec := do(r, bad); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key status = %d, want 401", rec.Code)
	}
}

func TestRequireWorkerOrAdmin(t *testing.T) {
	user := newUser("User", "Dashboard")
	admin := newUser("Admin")
	withStubs(t, stubUsers{user.ID: user, admin.ID: admin}, nil)
	t.Setenv("WORKER_API_KEY", "worker-secret")

	r := gin.New()
	r.POST("/frames", WorkerOrConsoleAuth(), RequireWorkerOrAdmin(), func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})

	worker := httptest.NewRequest(http.MethodPost, "/frames", nil)
	worker.Header.Set(WorkerKeyHeader, "worker-secret")
	if rec := do(r, worker); rec.Code != http.StatusAccepted {
		t.Errorf("worker: status = %d", rec.Code)
	}

	asUser := httptest.NewRequest(http.MethodPost, "/frames", nil)
	asUser.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	if rec := do(r, asUser); rec.Code != http.StatusForbidden {
		t.Errorf("user: status = %d, want 403", rec.Code)
	}

	asAdmin := httptest.NewRequest(http.MethodPost, "/frames", nil)
	asAdmin.Header.Set("Authorization", "Bearer "+tokenFor(t, admin))
	if rec := do(r, asAdmin); rec.Code != http.StatusAccepted {
		t.Errorf("admin: status = %d", rec.Code)
	}
}

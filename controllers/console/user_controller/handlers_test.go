package user_controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func post(t *testing.T, handler gin.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Handle(method, "/users/:id", handler)
	r.Handle(method, "/users", handler)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateUserValidation(t *testing.T) {
	base := `"username":"op1","role":"User","date_of_birth":"1990-01-01","country":"Nigeria","access":["Dashboard"]`
	cases := map[string]string{
		"missing fields": `{"username":"op1"}`,
		"bad email":      `{` + base + `,"email":"nope","password":"Str0ng!pass"}`,
		"weak password":  `{` + base + `,"email":"op1@asadel.io","password":"weak"}`,
		"bad role":       `{"username":"op1","role":"Root","date_of_birth":"1990-01-01","country":"NG","access":["Dashboard"],"email":"op1@asadel.io","password":"Str0ng!pass"}`,
		"bad module":     `{"username":"op1","role":"User","date_of_birth":"1990-01-01","country":"NG","access":["Billing"],"email":"op1@asadel.io","password":"Str0ng!pass"}`,
		"bad dob":        `{"username":"op1","role":"User","date_of_birth":"01/01/1990","country":"NG","access":["Dashboard"],"email":"op1@asadel.io","password":"Str0ng!pass"}`,
	}
	for name, body := range cases {
		if rec := post(t, CreateUser, http.MethodPost, "/users", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400 (%s)", name, rec.Code, rec.Body.String())
		}
	}
}

func TestUpdateUserAccessValidation(t *testing.T) {
	if rec := post(t, UpdateUserAccess, http.MethodPut, "/users/not-a-uuid", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d", rec.Code)
	}
	id := "0190a3c4-0000-7000-8000-000000000001"
	if rec := post(t, UpdateUserAccess, http.MethodPut, "/users/"+id, `{"role":"User","access":[]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty access: status = %d", rec.Code)
	}
	if rec := post(t, UpdateUserAccess, http.MethodPut, "/users/"+id, `{"role":"User","access":["Nope"]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown module: status = %d", rec.Code)
	}
}

func TestDeleteUserRejectsBadID(t *testing.T) {
	if rec := post(t, DeleteUser, http.MethodDelete, "/users/xyz", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

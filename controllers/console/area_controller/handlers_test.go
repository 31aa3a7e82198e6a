package area_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func router() *gin.Engine {
	r := gin.New()
	r.POST("/regions", CreateRegion)
	r.PUT("/regions/:id", UpdateRegion)
	r.DELETE("/regions/:id", DeleteRegion)
	r.POST("/sub-regions", CreateSubRegion)
	r.PUT("/sub-regions/:id", UpdateSubRegion)
	r.DELETE("/sub-regions/:id", DeleteSubRegion)
	return r
}

func TestAreaHandlersRejectBadInput(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		message string
	}{
		{"region without name", http.MethodPost, "/regions", `{}`, "Region name is required"},
		{"region blank name", http.MethodPost, "/regions", `{"name":"   "}`, "Region name is required"},
		{"update bad id", http.MethodPut, "/regions/abc", `{"name":"x"}`, "Invalid region ID"},
		{"delete bad id", http.MethodDelete, "/regions/abc", ``, "Invalid region ID"},
		{"sub-region without region", http.MethodPost, "/sub-regions", `{"name":"Floor 4"}`, "Sub-region name and region are required"},
		{"sub-region bad id", http.MethodPut, "/sub-regions/42", `{"name":"x"}`, "Invalid sub-region ID"},
		{"sub-region delete bad id", http.MethodDelete, "/sub-regions/42", ``, "Invalid sub-region ID"},
	}

	r := router()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp models.ApiResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Success || resp.Message != tt.message {
				t.Fatalf("response = %+v, want message %q", resp, tt.message)
			}
		})
	}
}

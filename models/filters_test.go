package models

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Asadel-Surveillance/asadel-console/filter"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func selectionFor(target string) filter.Selection {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return SelectionFromQuery(c)
}

func TestSelectionFromQuery(t *testing.T) {
	full := "/options?region=Building%20A&sub_region=Floor%201&camera=Lobby%20Cam"
	tests := map[string]struct {
		target string
		want   filter.Selection
	}{
		"no level":         {full, filter.Selection{Region: "Building A", SubRegion: "Floor 1", Leaf: "Lobby Cam"}},
		"region changed":   {full + "&level=region", filter.Selection{Region: "Building A"}},
		"sub-region alias": {full + "&level=subRegion", filter.Selection{Region: "Building A", SubRegion: "Floor 1"}},
		"camera changed":   {full + "&level=camera", filter.Selection{Region: "Building A", SubRegion: "Floor 1", Leaf: "Lobby Cam"}},
		"unknown level":    {full + "&level=floor", filter.Selection{Region: "Building A", SubRegion: "Floor 1", Leaf: "Lobby Cam"}},
		"orphaned camera":  {"/options?region=Building%20A&camera=Lobby%20Cam", filter.Selection{Region: "Building A"}},
		"no region":        {"/options?sub_region=Floor%201&camera=Lobby%20Cam", filter.Selection{}},
		"trimmed":          {"/options?region=%20Parking%20Area%20", filter.Selection{Region: "Parking Area"}},
	}
	for name, tt := range tests {
		if got := selectionFor(tt.target); got != tt.want {
			t.Errorf("%s: got %+v, want %+v", name, got, tt.want)
		}
	}
}

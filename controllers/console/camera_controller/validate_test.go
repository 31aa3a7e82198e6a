package camera_controller

import (
	"errors"
	"testing"

	"github.com/Asadel-Surveillance/asadel-console/models"
)

func TestNormalizeCameraRequest(t *testing.T) {
	req := models.CameraRequest{
		Name:        "  Lobby Cam ",
		RTSPURL:     "rtsp://10.0.0.12:554/stream1",
		Description: "Front desk",
		AccessLevel: "Admin Only",
	}
	if err := normalizeCameraRequest(&req); err != nil {
		t.Fatal(err)
	}
	if req.Name != "Lobby Cam" || req.AccessLevel != models.CameraAccessAdmin || req.Status != models.CameraStatusActive {
		t.Fatalf("normalized = %+v", req)
	}
}

func TestNormalizeCameraRequestRejects(t *testing.T) {
	base := func() models.CameraRequest {
		return models.CameraRequest{
			Name:        "Gate",
			RTSPURL:     "rtsps://cam.example.com/live",
			Description: "Gate",
			AccessLevel: "all",
		}
	}

	tests := []struct {
		name   string
		mutate func(*models.CameraRequest)
		want   error
	}{
		{"http url", func(r *models.CameraRequest) { r.RTSPURL = "http://cam/live" }, errBadRTSP},
		{"no host", func(r *models.CameraRequest) { r.RTSPURL = "rtsp:///live" }, errBadRTSP},
		{"unknown access", func(r *models.CameraRequest) { r.AccessLevel = "guests" }, errBadAccess},
		{"bad status", func(r *models.CameraRequest) { r.Status = "Broken" }, errBadStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)
			if err := normalizeCameraRequest(&req); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	req := base()
	req.Description = " "
	if err := normalizeCameraRequest(&req); err == nil {
		t.Fatal("blank description accepted")
	}
}

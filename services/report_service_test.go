package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []models.DetectionRow {
	at := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	d := models.Detection{
		ID:            uuid.Must(uuid.NewV7()),
		CameraName:    "Lobby Cam",
		RegionName:    "Building A",
		SubRegionName: "Floor 1",
		AlertType:     models.AlertTypeFire,
		Confidence:    0.87,
		DetectedAt:    at,
	}
	return []models.DetectionRow{d.ToRow()}
}

func TestGenerateDetectionReportPDF(t *testing.T) {
	buf, err := GenerateDetectionReportPDF(sampleRows(), models.DetectionQuery{Region: "Building A"}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestGenerateDetectionPDF(t *testing.T) {
	d := &models.Detection{
		ID:            uuid.Must(uuid.NewV7()),
		CameraName:    "Gate Cam",
		RegionName:    "Parking Area",
		SubRegionName: "VIP Parking",
		AlertType:     models.AlertTypeSmoke,
		Confidence:    0.4,
		Source:        "mqtt",
		DetectedAt:    time.Now(),
	}
	buf, err := GenerateDetectionPDF(d)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestGenerateDetectionReportXLSX(t *testing.T) {
	buf, err := GenerateDetectionReportXLSX(sampleRows(), models.DetectionQuery{})
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("failed to reopen xlsx: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(detectionSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "All detections" {
		t.Errorf("filter line = %q", rows[0][0])
	}
	if rows[1][2] != "Camera" {
		t.Errorf("header = %v", rows[1])
	}
	want := []string{"Building A", "Floor 1", "Lobby Cam", "Fire", "87%", "09:30:00", "15/01/26"}
	for i, v := range want {
		if rows[2][i] != v {
			t.Errorf("cell %d = %q, want %q", i, rows[2][i], v)
		}
	}
}

func TestReportFilename(t *testing.T) {
	at := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	if got := ReportFilename("xlsx", at); got != "detections-20260115-093000.xlsx" {
		t.Errorf("ReportFilename = %q", got)
	}
}

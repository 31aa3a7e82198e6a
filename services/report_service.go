package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"github.com/xuri/excelize/v2"
)

const detectionSheet = "Detections"

var (
	reportDarkGray   = color.Color{Red: 38, Green: 38, Blue: 34}
	reportMediumGray = color.Color{Red: 121, Green: 119, Blue: 109}
	reportAlertRed   = color.Color{Red: 192, Green: 57, Blue: 43}

	reportColumns = []string{"Region", "Sub Region", "Camera", "Alert", "Confidence", "Time", "Date"}
)

// ReportFilename builds the download name, e.g. detections-20260115-093000.pdf
func ReportFilename(ext string, now time.Time) string {
	return fmt.Sprintf("detections-%s.%s", now.Format("20060102-150405"), ext)
}

// describeFilter renders the active log report filter for report headers
func describeFilter(q models.DetectionQuery) string {
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
	}
	add("Region", q.Region)
	add("Sub Region", q.SubRegion)
	add("Camera", q.Camera)
	add("Alert", q.AlertType)
	add("From", q.From)
	add("To", q.To)
	if len(parts) == 0 {
		return "All detections"
	}
	return strings.Join(parts, " | ")
}

func reportRow(r models.DetectionRow) []string {
	return []string{
		r.Region,
		r.SubRegion,
		r.CameraName,
		r.AlertType,
		fmt.Sprintf("%.0f%%", r.Confidence*100),
		r.TimeStamp,
		r.DateCreated,
	}
}

// GenerateDetectionReportPDF renders the filtered log report table
func GenerateDetectionReportPDF(rows []models.DetectionRow, q models.DetectionQuery, generatedAt time.Time) (*bytes.Buffer, error) {
	m := pdf.NewMaroto(consts.Landscape, consts.A4)
	m.SetPageMargins(15, 15, 15)

	m.Row(14, func() {
		m.Col(12, func() {
			m.Text("DETECTION LOG REPORT", props.Text{
				Size:  20,
				Style: consts.Bold,
				Color: reportDarkGray,
			})
		})
	})

	m.Row(6, func() {
		m.Col(8, func() {
			m.Text(describeFilter(q), props.Text{
				Size:  9,
				Color: reportMediumGray,
			})
		})
		m.Col(4, func() {
			m.Text(fmt.Sprintf("Generated %s", generatedAt.Format("Jan 02, 2006 15:04")), props.Text{
				Size:  9,
				Color: reportMediumGray,
				Align: consts.Right,
			})
		})
	})

	m.Row(6, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("%d detections", len(rows)), props.Text{
				Size:  9,
				Style: consts.Bold,
				Color: reportDarkGray,
			})
		})
	})

	m.Row(6, func() {})

	widths := []uint{2, 2, 2, 1, 2, 2, 1}
	m.Row(7, func() {
		for i, title := range reportColumns {
			m.Col(widths[i], func() {
				m.Text(title, props.Text{
					Size:  8,
					Style: consts.Bold,
					Color: reportDarkGray,
				})
			})
		}
	})

	for _, r := range rows {
		cells := reportRow(r)
		m.Row(6, func() {
			for i, cell := range cells {
				textColor := reportDarkGray
				if i == 3 {
					textColor = reportAlertRed
				}
				m.Col(widths[i], func() {
					m.Text(cell, props.Text{
						Size:  8,
						Color: textColor,
					})
				})
			}
		})
	}

	if len(rows) == 0 {
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text("No detections match this filter.", props.Text{
					Size:  9,
					Color: reportMediumGray,
				})
			})
		})
	}

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return &buf, nil
}

// GenerateDetectionPDF renders a single alert, the way an incident sheet is printed
func GenerateDetectionPDF(d *models.Detection) (*bytes.Buffer, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text(strings.ToUpper(d.AlertType)+" ALERT", props.Text{
				Size:  24,
				Style: consts.Bold,
				Color: reportAlertRed,
			})
		})
	})

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text(d.CameraName, props.Text{
				Size:  16,
				Style: consts.Bold,
				Color: reportDarkGray,
			})
		})
	})

	m.Row(5, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("%s / %s", d.RegionName, d.SubRegionName), props.Text{
				Size:  9,
				Color: reportMediumGray,
			})
		})
	})

	m.Row(8, func() {})

	details := [][2]string{
		{"Detection ID", d.ID.String()},
		{"Detected at", d.DetectedAt.Format("Jan 02, 2006 15:04:05 MST")},
		{"Confidence", fmt.Sprintf("%.1f%%", d.Confidence*100)},
		{"Source", d.Source},
	}
	if d.Description != "" {
		details = append(details, [2]string{"Description", d.Description})
	}
	if d.SnapshotURL != "" {
		details = append(details, [2]string{"Snapshot", d.SnapshotURL})
	}

	for _, kv := range details {
		m.Row(6, func() {
			m.Col(4, func() {
				m.Text(kv[0], props.Text{
					Size:  9,
					Style: consts.Bold,
					Color: reportDarkGray,
				})
			})
			m.Col(8, func() {
				m.Text(kv[1], props.Text{
					Size:  9,
					Color: reportDarkGray,
				})
			})
		})
	}

	m.Row(12, func() {})

	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Asadel Surveillance Console", props.Text{
				Size:  8,
				Color: reportMediumGray,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return &buf, nil
}

// GenerateDetectionReportXLSX writes the filtered log report as a spreadsheet
func GenerateDetectionReportXLSX(rows []models.DetectionRow, q models.DetectionQuery) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", detectionSheet); err != nil {
		return nil, err
	}

	if err := f.SetCellValue(detectionSheet, "A1", describeFilter(q)); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(reportColumns))
	for i, title := range reportColumns {
		header[i] = title
	}
	if err := f.SetSheetRow(detectionSheet, "A2", &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(reportColumns))
	if err := f.SetCellStyle(detectionSheet, "A2", lastCol+"2", bold); err != nil {
		return nil, err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, err
		}
		cells := reportRow(r)
		values := make([]interface{}, len(cells))
		for j, v := range cells {
			values[j] = v
		}
		if err := f.SetSheetRow(detectionSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(detectionSheet, "A", lastCol, 18); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

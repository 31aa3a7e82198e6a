package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/models"
)

const resendEndpoint = "https://api.resend.com/emails"

// AlertMailer emails fire/smoke alerts, with the incident sheet attached, via Resend
type AlertMailer struct {
	apiKey   string
	from     string
	to       []string
	endpoint string
	client   *http.Client
}

func NewAlertMailer(apiKey, from string, to []string) *AlertMailer {
	if from == "" {
		from = "alerts@asadel.local"
	}
	return &AlertMailer{
		apiKey:   apiKey,
		from:     from,
		to:       to,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

var alertMailer *AlertMailer

// InitAlertMailer enables alert emails when RESEND_API_KEY and ALERT_EMAIL_TO are set
func InitAlertMailer() {
	apiKey := os.Getenv("RESEND_API_KEY")
	var to []string
	for _, addr := range strings.Split(os.Getenv("ALERT_EMAIL_TO"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	if apiKey == "" || len(to) == 0 {
		log.Println("⚠️  RESEND_API_KEY/ALERT_EMAIL_TO not set, alert emails disabled")
		return
	}
	alertMailer = NewAlertMailer(apiKey, os.Getenv("RESEND_FROM_EMAIL"), to)
	log.Printf("✅ Alert emails go to %d recipient(s)", len(to))
}

// GetAlertMailer returns nil when alert emails are disabled
func GetAlertMailer() *AlertMailer {
	return alertMailer
}

// NotifyAsync renders the incident sheet and sends it without holding up ingestion
func (m *AlertMailer) NotifyAsync(d *models.Detection) {
	detection := *d
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var attachment []byte
		if buf, err := GenerateDetectionPDF(&detection); err != nil {
			log.Printf("[alert-mail] pdf failed for %s: %v", detection.ID, err)
		} else {
			attachment = buf.Bytes()
		}
		if err := m.SendDetectionAlert(ctx, &detection, attachment); err != nil {
			log.Printf("[alert-mail] %v", err)
		}
	}()
}

// SendDetectionAlert sends one alert email. pdf may be nil.
func (m *AlertMailer) SendDetectionAlert(ctx context.Context, d *models.Detection, pdf []byte) error {
	payload := map[string]any{
		"from":    m.from,
		"to":      m.to,
		"subject": fmt.Sprintf("%s alert: %s (%s / %s)", d.AlertType, d.CameraName, d.RegionName, d.SubRegionName),
		"html":    buildAlertHTML(d),
	}
	if len(pdf) > 0 {
		payload["attachments"] = []map[string]any{
			{
				"filename": fmt.Sprintf("detection-%s.pdf", d.ID),
				"content":  base64.StdEncoding.EncodeToString(pdf),
			},
		}
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[alert-mail] api returned status %d: %s", resp.StatusCode, string(body))
		return fmt.Errorf("resend api error: status %d", resp.StatusCode)
	}

	log.Printf("[alert-mail] %s alert for %s sent to %d recipient(s)", d.AlertType, d.CameraName, len(m.to))
	return nil
}

func buildAlertHTML(d *models.Detection) string {
	row := func(label, value string) string {
		return fmt.Sprintf(`<tr><td style="padding: 6px 0; font-size: 14px; color: #79776d;">%s</td><td style="padding: 6px 0; font-size: 14px; color: #262622;">%s</td></tr>`,
			label, html.EscapeString(value))
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="en"><body style="margin: 0; padding: 16px; font-family: -apple-system, 'Segoe UI', sans-serif; background-color: #fafaf7;">`)
	b.WriteString(`<table width="100%" cellpadding="0" cellspacing="0" border="0" style="max-width: 600px; margin: auto; background: #ffffff; padding: 24px;">`)
	fmt.Fprintf(&b, `<tr><td colspan="2"><h1 style="margin: 0 0 16px; font-size: 24px; color: #c62828;">%s ALERT</h1></td></tr>`,
		html.EscapeString(strings.ToUpper(d.AlertType)))
	b.WriteString(row("Camera", d.CameraName))
	b.WriteString(row("Region", d.RegionName))
	b.WriteString(row("Sub-region", d.SubRegionName))
	b.WriteString(row("Confidence", fmt.Sprintf("%.0f%%", d.Confidence*100)))
	b.WriteString(row("Detected at", d.DetectedAt.Format("02/01/06 15:04:05")))
	if d.Description != "" {
		b.WriteString(row("Description", d.Description))
	}
	if d.SnapshotURL != "" {
		fmt.Fprintf(&b, `<tr><td colspan="2" style="padding-top: 16px;"><img src="%s" alt="Snapshot" style="max-width: 100%%;"></td></tr>`,
			html.EscapeString(d.SnapshotURL))
	}
	b.WriteString(`</table></body></html>`)
	return b.String()
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerExposesConsoleMetrics(t *testing.T) {
	DetectionsIngested.WithLabelValues("http", "Fire").Inc()
	FeedViewers.Inc()
	defer FeedViewers.Dec()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{
		"asadel_detections_ingested_total",
		"asadel_feed_viewers",
		"go_goroutines",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("missing %s", name)
		}
	}
}

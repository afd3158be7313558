package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CollectorがMetricsCollectorインターフェースを満たすことを検証
func TestCollector_ImplementsInterface(t *testing.T) {
	var _ MetricsCollector = (*Collector)(nil)
}

// 記録したメトリクスが/metricsで公開されることを検証
func TestCollector_RecordAndServe(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)
	c.RecordRequestDuration(25 * time.Millisecond)
	c.RecordTaskCreated()
	c.RecordTaskCompleted()
	c.RecordSuggestionGenerated()
	c.RecordAuthFailure()

	handler := Handler(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	for _, metric := range []string{
		"taskman_http_status_total",
		"taskman_http_request_duration_seconds",
		"taskman_tasks_created_total",
		"taskman_tasks_completed_total",
		"taskman_suggestions_generated_total",
		"taskman_auth_failures_total",
	} {
		if !strings.Contains(bodyStr, metric) {
			t.Errorf("response should contain %s", metric)
		}
	}

	if !strings.Contains(bodyStr, `taskman_http_status_total{status_code="404"} 1`) {
		t.Error("status 404 counter should be 1")
	}
}

// 同一レジストリへの二重登録がpanicすることを検証（登録は起動時1回）
func TestNewCollector_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewCollector(reg)

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	_ = NewCollector(reg)
}

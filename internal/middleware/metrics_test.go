package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// mockHTTPMetrics はHTTPメトリクス記録のモック。
type mockHTTPMetrics struct {
	statuses  []int
	durations []time.Duration
}

func (m *mockHTTPMetrics) RecordHTTPStatus(code int) {
	m.statuses = append(m.statuses, code)
}

func (m *mockHTTPMetrics) RecordRequestDuration(d time.Duration) {
	m.durations = append(m.durations, d)
}

// レスポンスのステータスコードと処理時間が記録されることを検証
func TestMetricsMiddleware_RecordsStatusAndDuration(t *testing.T) {
	recorder := &mockHTTPMetrics{}
	handler := NewMetricsMiddleware(recorder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/missing", nil))

	if len(recorder.statuses) != 1 || recorder.statuses[0] != http.StatusNotFound {
		t.Errorf("statuses = %v, want [404]", recorder.statuses)
	}
	if len(recorder.durations) != 1 {
		t.Errorf("durations = %v, want 1 entry", recorder.durations)
	}
}

// WriteHeader未呼び出しのハンドラーで200が記録されることを検証
func TestMetricsMiddleware_ImplicitOK(t *testing.T) {
	recorder := &mockHTTPMetrics{}
	handler := NewMetricsMiddleware(recorder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if len(recorder.statuses) != 1 || recorder.statuses[0] != http.StatusOK {
		t.Errorf("statuses = %v, want [200]", recorder.statuses)
	}
}

// recorderがnilでもリクエストが処理されることを検証
func TestMetricsMiddleware_NilRecorder(t *testing.T) {
	handler := NewMetricsMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

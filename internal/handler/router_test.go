package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/taskman/internal/analytics"
	"github.com/hitoshi/taskman/internal/middleware"
	"github.com/hitoshi/taskman/internal/model"
)

// stubVerifier はテスト用のTokenVerifier。
// トークン文字列をキーにユーザーを解決する。
type stubVerifier struct {
	users map[string]*model.User
}

func (s *stubVerifier) VerifyUser(_ context.Context, rawToken string) (*model.User, *model.APIError) {
	user, ok := s.users[rawToken]
	if !ok {
		return nil, model.NewUnauthorizedError()
	}
	return user, nil
}

// stubHealthChecker はテスト用のHealthChecker。
type stubHealthChecker struct {
	err error
}

func (s *stubHealthChecker) PingContext(_ context.Context) error {
	return s.err
}

func newTestRouter(t *testing.T, health *stubHealthChecker) http.Handler {
	t.Helper()

	rl := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	t.Cleanup(rl.Stop)

	verifier := &stubVerifier{users: map[string]*model.User{
		"free-token": {ID: "u-free", Plan: "free"},
		"pro-token":  {ID: "u-pro", Plan: "pro"},
	}}

	return NewRouter(&RouterDeps{
		HealthChecker:     health,
		TokenVerifier:     verifier,
		CORSAllowedOrigin: "http://localhost:3000",
		RateLimiter:       rl,

		AuthService: &mockAuthService{registerResult: testAuthResult()},
		TaskService: &mockTaskService{
			listResult:   []*model.Task{sampleTask()},
			createResult: sampleTask(),
		},
		AnalyticsService: &mockAnalyticsService{
			overview: &analytics.Overview{},
		},
	})
}

// ヘルスチェックが認証なしで応答することを検証
func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t, &stubHealthChecker{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// DB疎通失敗でヘルスチェックが503になることを検証
func TestRouter_Health_Unhealthy(t *testing.T) {
	router := newTestRouter(t, &stubHealthChecker{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

// プラン一覧が認証なしで取得できることを検証
func TestRouter_PlansPublic(t *testing.T) {
	router := newTestRouter(t, &stubHealthChecker{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plans", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// トークンなしのタスクアクセスが401になることを検証
func TestRouter_TasksRequireAuth(t *testing.T) {
	router := newTestRouter(t, &stubHealthChecker{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// 有効なトークンでタスク一覧が取得できることを検証
func TestRouter_TasksWithToken(t *testing.T) {
	router := newTestRouter(t, &stubHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer free-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// freeユーザーのpro限定ルートアクセスが403になることを検証
func TestRouter_ProGate(t *testing.T) {
	router := newTestRouter(t, &stubHealthChecker{})

	proRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/tasks/analytics"},
		{http.MethodPost, "/tasks/ai-suggestions"},
		{http.MethodGet, "/users/stats"},
	}

	for _, route := range proRoutes {
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer free-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: status = %d, want 403", route.method, route.path, w.Code)
			continue
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["currentPlan"] != "free" || body["requiredPlan"] != "pro" {
			t.Errorf("%s: plan fields = %v", route.path, body)
		}
	}
}

// proユーザーが分析ルートにアクセスできることを検証
func TestRouter_ProUserAnalytics(t *testing.T) {
	router := newTestRouter(t, &stubHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/tasks/analytics", nil)
	req.Header.Set("Authorization", "Bearer pro-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// 購読情報ルートが認証のみで（プラン制限なしに）応答することを検証
func TestRouter_CurrentSubscription(t *testing.T) {
	router := newTestRouter(t, &stubHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/current", nil)
	req.Header.Set("Authorization", "Bearer free-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// CORSプリフライトが204で応答することを検証
func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, &stubHealthChecker{})

	req := httptest.NewRequest(http.MethodOptions, "/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

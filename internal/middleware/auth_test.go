package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/taskman/internal/model"
)

// mockVerifier はテスト用のTokenVerifier。
type mockVerifier struct {
	user      *model.User
	lastToken string
}

func (m *mockVerifier) VerifyUser(_ context.Context, rawToken string) (*model.User, *model.APIError) {
	m.lastToken = rawToken
	if m.user == nil {
		return nil, model.NewUnauthorizedError()
	}
	return m.user, nil
}

// 有効なトークンでユーザーがコンテキストに注入されることを検証
func TestAuthMiddleware_ValidToken(t *testing.T) {
	verifier := &mockVerifier{user: &model.User{ID: "u1", Plan: "free"}}

	var gotUser *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := NewAuthMiddleware(verifier)(next)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if verifier.lastToken != "valid-token" {
		t.Errorf("verified token = %q, want valid-token", verifier.lastToken)
	}
	if gotUser == nil || gotUser.ID != "u1" {
		t.Errorf("context user = %+v, want u1", gotUser)
	}
}

// ヘッダー欠落・形式不正・空トークンが401になることを検証
func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	verifier := &mockVerifier{user: &model.User{ID: "u1"}}
	handler := NewAuthMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be reached")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"lowercase scheme", "bearer token"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

// トークン検証失敗で401になることを検証
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	verifier := &mockVerifier{user: nil}
	handler := NewAuthMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// UserFromContextがユーザー未注入のコンテキストでエラーになることを検証
func TestUserFromContext_Missing(t *testing.T) {
	if _, err := UserFromContext(context.Background()); err == nil {
		t.Error("expected error for context without user")
	}
}

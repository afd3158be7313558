package auth

import (
	"testing"
	"time"
)

// 発行したトークンの検証でユーザーIDが復元されることを検証
func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, apiErr := svc.Verify(token)
	if apiErr != nil {
		t.Fatalf("Verify failed: %v", apiErr)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q, want user-1", userID)
	}
}

// 期限切れトークンが認証エラーになることを検証
func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// 現在時刻に戻すとTTL1時間を超過している
	svc.now = time.Now

	if _, apiErr := svc.Verify(token); apiErr == nil {
		t.Error("expired token should be rejected")
	}
}

// 異なる鍵で署名されたトークンが拒否されることを検証
func TestTokenService_Verify_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, apiErr := verifier.Verify(token); apiErr == nil {
		t.Error("token signed with a different secret should be rejected")
	}
}

// 形式不正なトークンが拒否されることを検証
func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, apiErr := svc.Verify(raw); apiErr == nil {
			t.Errorf("malformed token %q should be rejected", raw)
		}
	}
}

// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと、プラン不足時の現在/必要プランを含む。
type APIError struct {
	Code         string // エラーコード
	Message      string // エラーメッセージ
	Category     string // カテゴリ: auth, validation, task, plan, system
	CurrentPlan  string // プラン不足時のみ: 現在のプラン
	RequiredPlan string // プラン不足時のみ: 必要なプラン
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation   = "VALIDATION_FAILED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodePlanRequired = "PLAN_REQUIRED"
	ErrCodeTaskNotFound = "TASK_NOT_FOUND"
	ErrCodeUserNotFound = "USER_NOT_FOUND"
	ErrCodeEmailTaken   = "EMAIL_TAKEN"
)

// NewValidationError はバリデーションエラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
	}
}

// NewUnauthorizedError は認証エラーを生成する。
// トークン欠落・不正・期限切れ・ユーザー不在はすべてこのエラーに収束させ、
// 失敗理由をクライアントに区別させない。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
	}
}

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// メールアドレス不在とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
	}
}

// NewPlanRequiredError はプラン不足エラーを生成する。
// レスポンスボディに現在のプランと必要なプランを含める。
func NewPlanRequiredError(currentPlan, requiredPlan string) *APIError {
	return &APIError{
		Code:         ErrCodePlanRequired,
		Message:      fmt.Sprintf("この機能には%sプラン以上が必要です。", requiredPlan),
		Category:     "plan",
		CurrentPlan:  currentPlan,
		RequiredPlan: requiredPlan,
	}
}

// NewTaskNotFoundError はタスク未検出エラーを生成する。
// 他ユーザーが所有するタスクも「存在しない」として扱う。
func NewTaskNotFoundError(taskID string) *APIError {
	return &APIError{
		Code:     ErrCodeTaskNotFound,
		Message:  fmt.Sprintf("指定されたタスクが見つかりません: %s", taskID),
		Category: "task",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
	}
}

// NewEmailTakenError はメールアドレス重複エラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "validation",
	}
}

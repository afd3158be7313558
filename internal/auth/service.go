package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/plan"
	"github.com/hitoshi/taskman/internal/repository"
)

// Result は認証操作の明示的な結果値。
// 成功時はUserとTokenが設定され、失敗時はErrに理由が入る。
type Result struct {
	User  *model.User
	Token string
}

// MetricsRecorder は認証関連メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordAuthFailure()
}

// Service は登録・ログイン・トークン検証のビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	tokens   *TokenService
	metrics  MetricsRecorder
	now      func() time.Time
}

// NewService はServiceを生成する。metricsはnil可。
func NewService(userRepo repository.UserRepository, tokens *TokenService, metrics MetricsRecorder) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Register は新規ユーザーを登録し、ログイン済みトークンを発行する。
// メールアドレスが既に使用されている場合はEMAIL_TAKENを返す。
// 新規ユーザーのプランはfreeで開始する。
func (s *Service) Register(ctx context.Context, email, name, password string) (*Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailTakenError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:                 uuid.New().String(),
		Email:              email,
		Name:               name,
		PasswordHash:       string(hash),
		Plan:               string(plan.TierFree),
		SubscriptionStatus: "active",
		CreatedAt:          s.now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("new user registered",
		slog.String("user_id", user.ID),
	)

	// レスポンスにハッシュを載せない
	user.PasswordHash = ""
	return &Result{User: user, Token: token}, nil
}

// Login はメールアドレスとパスワードを検証し、トークンを発行する。
// ユーザー不在とパスワード不一致は同一のエラーに収束させる。
// 成功時は最終ログイン日時を更新する。
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		s.recordFailure()
		return nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordFailure()
		return nil, model.NewInvalidCredentialsError()
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
	)

	user.PasswordHash = ""
	return &Result{User: user, Token: token}, nil
}

// VerifyUser はベアラートークンを検証し、該当ユーザーを解決する。
// トークン不正・期限切れ・署名不一致・ユーザー不在はすべて
// 同一の認証エラーとして返す。
func (s *Service) VerifyUser(ctx context.Context, rawToken string) (*model.User, *model.APIError) {
	userID, apiErr := s.tokens.Verify(rawToken)
	if apiErr != nil {
		s.recordFailure()
		return nil, apiErr
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		slog.Error("failed to resolve token user",
			slog.String("error", err.Error()),
		)
		s.recordFailure()
		return nil, model.NewUnauthorizedError()
	}
	if user == nil {
		s.recordFailure()
		return nil, model.NewUnauthorizedError()
	}

	return user, nil
}

func (s *Service) recordFailure() {
	if s.metrics != nil {
		s.metrics.RecordAuthFailure()
	}
}

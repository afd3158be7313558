package repository

import "testing"

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresAnalyticsRepoはAnalyticsRepositoryインターフェースを満たすことを検証
func TestPostgresAnalyticsRepo_ImplementsInterface(t *testing.T) {
	var _ AnalyticsRepository = (*PostgresAnalyticsRepo)(nil)
}

// NewPostgresUserRepoが正しく初期化されることを検証
func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	repo := NewPostgresUserRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresAnalyticsRepoが正しく初期化されることを検証
func TestNewPostgresAnalyticsRepo_Initializes(t *testing.T) {
	repo := NewPostgresAnalyticsRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

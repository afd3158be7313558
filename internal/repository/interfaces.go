// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	// PasswordHashは取得しない。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	// ログイン検証用にPasswordHashを含めて取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// TouchLastLogin は最終ログイン日時を更新する。
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// TaskRepository はタスクデータの永続化インターフェース。
// すべての操作は所有ユーザーでスコープされる。
type TaskRepository interface {
	// ListByUser はユーザーのタスク一覧をフィルタ・ソート付きで返す。
	ListByUser(ctx context.Context, userID string, q model.TaskQuery) ([]*model.Task, error)

	// FindByUserAndID は所有者とIDの両方で1クエリ検索する。
	// 他ユーザーのタスクは存在しないタスクと区別せずnilを返す。
	FindByUserAndID(ctx context.Context, userID, taskID string) (*model.Task, error)

	// Create はタスクを作成する。
	Create(ctx context.Context, task *model.Task) error

	// Update はタスクを上書き更新する。所有者が一致しない場合は更新されない。
	Update(ctx context.Context, task *model.Task) error

	// DeleteByUserAndID は所有者スコープでタスクを削除する。
	// 削除対象が存在しない場合はfalseを返す。
	DeleteByUserAndID(ctx context.Context, userID, taskID string) (bool, error)
}

// TrendPoint は日単位の集計値を表す。Dateは"YYYY-MM-DD"形式。
type TrendPoint struct {
	Date  string
	Count int
}

// AnalyticsRepository はタスク集計クエリのインターフェース。
// すべて読み取り専用で副作用を持たない。
type AnalyticsRepository interface {
	// CountByUser はユーザーの全タスク数を返す。
	CountByUser(ctx context.Context, userID string) (int, error)

	// CountCompleted は完了済みタスク数を返す。
	CountCompleted(ctx context.Context, userID string) (int, error)

	// CountPending は「完了以外」の述語による未完了タスク数を返す。
	// total - completed の算術では求めない（completedでない状態は列挙されていないため）。
	CountPending(ctx context.Context, userID string) (int, error)

	// CountByPriority は優先度ごとのタスク数を返す。
	CountByPriority(ctx context.Context, userID string) (map[string]int, error)

	// CountByStatus はステータスごとのタスク数を返す。
	CountByStatus(ctx context.Context, userID string) (map[string]int, error)

	// CompletionTrend はsince以降に完了したタスクの日別件数を日付昇順で返す。
	// 完了が1件もない日は含まれない。
	CompletionTrend(ctx context.Context, userID string, since time.Time) ([]TrendPoint, error)

	// CountCreatedSince はsince以降に作成されたタスク数を返す。
	CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error)
}

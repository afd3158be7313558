package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresAnalyticsRepo はPostgreSQLを使用したタスク集計リポジトリ。
// すべてのクエリはデータベース側で集計し、アプリケーション側での
// 再計算は行わない。
type PostgresAnalyticsRepo struct {
	db *sql.DB
}

// NewPostgresAnalyticsRepo はPostgresAnalyticsRepoを生成する。
func NewPostgresAnalyticsRepo(db *sql.DB) *PostgresAnalyticsRepo {
	return &PostgresAnalyticsRepo{db: db}
}

// CountByUser はユーザーの全タスク数を返す。
func (r *PostgresAnalyticsRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("タスク総数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// CountCompleted は完了済みタスク数を返す。
func (r *PostgresAnalyticsRepo) CountCompleted(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND status = 'completed'`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("完了タスク数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// CountPending は未完了タスク数を返す。
// 「完了以外」の述語を独立したクエリとして実行する。
// total - completed の算術では求めない。
func (r *PostgresAnalyticsRepo) CountPending(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND status <> 'completed'`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("未完了タスク数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// CountByPriority は優先度ごとのタスク数を返す。
func (r *PostgresAnalyticsRepo) CountByPriority(ctx context.Context, userID string) (map[string]int, error) {
	return r.groupCount(ctx, userID, "priority")
}

// CountByStatus はステータスごとのタスク数を返す。
func (r *PostgresAnalyticsRepo) CountByStatus(ctx context.Context, userID string) (map[string]int, error) {
	return r.groupCount(ctx, userID, "status")
}

// groupCount は指定カラムでGROUP BYしたタスク数を返す。
// columnは呼び出し側で固定文字列のみが渡される。
func (r *PostgresAnalyticsRepo) groupCount(ctx context.Context, userID, column string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, COUNT(*) FROM tasks WHERE user_id = $1 GROUP BY %s`, column, column),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%sごとの集計に失敗しました: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("集計行の読み取りに失敗しました: %w", err)
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("集計結果の走査に失敗しました: %w", err)
	}
	return counts, nil
}

// CompletionTrend はsince以降に完了したタスクの日別件数を日付昇順で返す。
// 日付はUTC基準の"YYYY-MM-DD"文字列。完了が1件もない日は含まれない。
func (r *PostgresAnalyticsRepo) CompletionTrend(ctx context.Context, userID string, since time.Time) ([]TrendPoint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT to_char(completed_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		 FROM tasks
		 WHERE user_id = $1 AND status = 'completed' AND completed_at >= $2
		 GROUP BY day
		 ORDER BY day ASC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("完了トレンドの取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			return nil, fmt.Errorf("トレンド行の読み取りに失敗しました: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("トレンド結果の走査に失敗しました: %w", err)
	}
	return points, nil
}

// CountCreatedSince はsince以降に作成されたタスク数を返す。
func (r *PostgresAnalyticsRepo) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("作成タスク数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ AnalyticsRepository = (*PostgresAnalyticsRepo)(nil)

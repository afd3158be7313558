package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/taskman/internal/model"
)

// PostgresTaskRepo はPostgreSQLを使用したタスクリポジトリ。
type PostgresTaskRepo struct {
	db *sql.DB
}

// NewPostgresTaskRepo はPostgresTaskRepoを生成する。
func NewPostgresTaskRepo(db *sql.DB) *PostgresTaskRepo {
	return &PostgresTaskRepo{db: db}
}

// sortColumns はAPIのsortBy値からカラム名へのホワイトリスト。
// 任意文字列のORDER BY展開を防ぐため、ここに無い値は受理しない。
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"title":     "title",
	"priority":  "priority",
	"status":    "status",
}

// SortColumnAllowed はsortBy値がホワイトリストに含まれるかどうかを返す。
func SortColumnAllowed(sortBy string) bool {
	_, ok := sortColumns[sortBy]
	return ok
}

const taskColumns = `id, user_id, title, description, status, priority, due_date, tags, completed_at, created_at, updated_at`

// scanTask は1行分のタスクを読み取る。
func scanTask(scan func(dest ...any) error) (*model.Task, error) {
	task := &model.Task{}
	err := scan(
		&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.DueDate, pq.Array(&task.Tags),
		&task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListByUser はユーザーのタスク一覧をフィルタ・ソート付きで返す。
func (r *PostgresTaskRepo) ListByUser(ctx context.Context, userID string, q model.TaskQuery) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{userID}

	if q.Status != "" {
		args = append(args, q.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if q.Priority != "" {
		args = append(args, q.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}

	// ソートカラムはホワイトリスト経由でのみ展開する
	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if q.SortOrder == "asc" {
		direction = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", column, direction)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("タスク一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("タスク行の読み取りに失敗しました: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("タスク一覧の走査に失敗しました: %w", err)
	}
	return tasks, nil
}

// FindByUserAndID は所有者とIDの両方で1クエリ検索する。
// 所有者チェックと存在チェックを同一クエリにまとめ、
// 他ユーザーへのタスク存在の漏洩を防ぐ。見つからない場合はnilを返す。
func (r *PostgresTaskRepo) FindByUserAndID(ctx context.Context, userID, taskID string) (*model.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND id = $2`,
		userID, taskID,
	)

	task, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("タスクの取得に失敗しました: %w", err)
	}
	return task, nil
}

// Create はタスクを作成する。
func (r *PostgresTaskRepo) Create(ctx context.Context, task *model.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, status, priority, due_date, tags, completed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		task.ID, task.UserID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, pq.Array(task.Tags), task.CompletedAt, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("タスクの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はタスクを上書き更新する。
// WHERE句に所有者を含めるため、他ユーザーのタスクは更新されない。
func (r *PostgresTaskRepo) Update(ctx context.Context, task *model.Task) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = $3, description = $4, status = $5, priority = $6,
		     due_date = $7, tags = $8, completed_at = $9, updated_at = $10
		 WHERE user_id = $1 AND id = $2`,
		task.UserID, task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, pq.Array(task.Tags), task.CompletedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("タスクの更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("タスクが見つかりません: %s", task.ID)
	}
	return nil
}

// DeleteByUserAndID は所有者スコープでタスクを削除する。
// 削除対象が存在しない場合はfalseを返す。
func (r *PostgresTaskRepo) DeleteByUserAndID(ctx context.Context, userID, taskID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = $1 AND id = $2`,
		userID, taskID,
	)
	if err != nil {
		return false, fmt.Errorf("タスクの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	return rowsAffected > 0, nil
}

// compile-time interface check
var _ TaskRepository = (*PostgresTaskRepo)(nil)

// Package task はタスク管理のドメインロジックを提供する。
package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
	"github.com/hitoshi/taskman/internal/security"
)

// CreateInput はタスク作成の入力値を表す。
type CreateInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	Tags        []string
}

// MetricsRecorder はタスク関連メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordTaskCreated()
	RecordTaskCompleted()
}

// Service はタスクCRUDのサービス層。
// すべての操作は呼び出しユーザーの所有範囲にスコープされる。
type Service struct {
	taskRepo  repository.TaskRepository
	sanitizer security.TextSanitizerService
	metrics   MetricsRecorder
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。metricsはnil可。
func NewService(taskRepo repository.TaskRepository, sanitizer security.TextSanitizerService, metrics MetricsRecorder) *Service {
	return &Service{
		taskRepo:  taskRepo,
		sanitizer: sanitizer,
		metrics:   metrics,
		now:       time.Now,
	}
}

// List はユーザーのタスク一覧をフィルタ・ソート付きで返す。
// status / priority / sortBy / sortOrder が不正な値の場合は
// バリデーションエラーを返す。
func (s *Service) List(ctx context.Context, userID string, q model.TaskQuery) ([]*model.Task, error) {
	if q.Status != "" && !model.TaskStatus(q.Status).Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("無効なステータスです: %s", q.Status))
	}
	if q.Priority != "" && !model.TaskPriority(q.Priority).Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("無効な優先度です: %s", q.Priority))
	}
	if q.SortBy != "" && !repository.SortColumnAllowed(q.SortBy) {
		return nil, model.NewValidationError(fmt.Sprintf("無効なソートキーです: %s", q.SortBy))
	}
	if q.SortOrder != "" && q.SortOrder != "asc" && q.SortOrder != "desc" {
		return nil, model.NewValidationError(fmt.Sprintf("無効なソート順です: %s", q.SortOrder))
	}

	tasks, err := s.taskRepo.ListByUser(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("タスク一覧の取得に失敗しました: %w", err)
	}
	return tasks, nil
}

// Create はタスクを作成する。
// タイトルは必須。優先度未指定時はmedium、ステータスはopenで開始する。
// タイトルと説明文はサニタイズしてから保存する。
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*model.Task, error) {
	title := s.sanitizer.Sanitize(in.Title)
	if title == "" {
		return nil, model.NewValidationError("タイトルは必須です。")
	}

	priority := model.TaskPriorityMedium
	if in.Priority != "" {
		p := model.TaskPriority(in.Priority)
		if !p.Valid() {
			return nil, model.NewValidationError(fmt.Sprintf("無効な優先度です: %s", in.Priority))
		}
		priority = p
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	now := s.now()
	task := &model.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: s.sanitizer.Sanitize(in.Description),
		Status:      model.TaskStatusOpen,
		Priority:    priority,
		DueDate:     in.DueDate,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("タスクの作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordTaskCreated()
	}

	return task, nil
}

// Update はタスクを部分更新する。
// パッチに存在するフィールドのみを適用し、dueDateは明示的nullでクリアする。
// 所有していないタスクは存在しないタスクと同様にNotFoundを返す。
// ステータスがcompletedに遷移した時点で完了日時を記録する。
func (s *Service) Update(ctx context.Context, userID, taskID string, patch model.TaskPatch) (*model.Task, error) {
	task, err := s.taskRepo.FindByUserAndID(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("タスクの取得に失敗しました: %w", err)
	}
	if task == nil {
		return nil, model.NewTaskNotFoundError(taskID)
	}

	if patch.Title != nil {
		title := s.sanitizer.Sanitize(*patch.Title)
		if title == "" {
			return nil, model.NewValidationError("タイトルは必須です。")
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = s.sanitizer.Sanitize(*patch.Description)
	}
	if patch.Priority != nil {
		p := model.TaskPriority(*patch.Priority)
		if !p.Valid() {
			return nil, model.NewValidationError(fmt.Sprintf("無効な優先度です: %s", *patch.Priority))
		}
		task.Priority = p
	}
	if patch.Status != nil {
		st := model.TaskStatus(*patch.Status)
		if !st.Valid() {
			return nil, model.NewValidationError(fmt.Sprintf("無効なステータスです: %s", *patch.Status))
		}
		s.applyStatusTransition(task, st)
	}
	if patch.DueDate.Set {
		if patch.DueDate.Valid {
			due := patch.DueDate.Time
			task.DueDate = &due
		} else {
			// 明示的なnullは期限のクリアを意味する
			task.DueDate = nil
		}
	}
	if patch.Tags != nil {
		task.Tags = *patch.Tags
		if task.Tags == nil {
			task.Tags = []string{}
		}
	}

	task.UpdatedAt = s.now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("タスクの更新に失敗しました: %w", err)
	}

	return task, nil
}

// applyStatusTransition はステータス変更と完了日時を同期させる。
// completedへの遷移で完了日時を記録し、completedから離れる遷移でクリアする。
func (s *Service) applyStatusTransition(task *model.Task, next model.TaskStatus) {
	if next == model.TaskStatusCompleted && task.Status != model.TaskStatusCompleted {
		now := s.now()
		task.CompletedAt = &now
		if s.metrics != nil {
			s.metrics.RecordTaskCompleted()
		}
	}
	if next != model.TaskStatusCompleted {
		task.CompletedAt = nil
	}
	task.Status = next
}

// Delete は所有者スコープでタスクを削除する。
// 存在しない、または他ユーザー所有のタスクはNotFoundを返す。
func (s *Service) Delete(ctx context.Context, userID, taskID string) error {
	deleted, err := s.taskRepo.DeleteByUserAndID(ctx, userID, taskID)
	if err != nil {
		return fmt.Errorf("タスクの削除に失敗しました: %w", err)
	}
	if !deleted {
		return model.NewTaskNotFoundError(taskID)
	}
	return nil
}

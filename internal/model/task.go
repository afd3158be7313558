// Package model はドメインモデルを定義する。
package model

import "time"

// Task はユーザーが所有するタスクを表す。
// すべてのタスクはちょうど1人のユーザーに属し、
// クエリは常に所有者でフィルタされる。
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	Tags        []string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskStatus はタスクの進行状態を表す。
type TaskStatus string

const (
	// TaskStatusOpen は未着手のタスク状態。
	TaskStatusOpen TaskStatus = "open"
	// TaskStatusInProgress は進行中のタスク状態。
	TaskStatusInProgress TaskStatus = "in-progress"
	// TaskStatusCompleted は完了済みのタスク状態。
	TaskStatusCompleted TaskStatus = "completed"
)

// Valid はTaskStatusが定義済みの値かどうかを返す。
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskPriority はタスクの優先度を表す。
type TaskPriority string

const (
	// TaskPriorityLow は低優先度。
	TaskPriorityLow TaskPriority = "low"
	// TaskPriorityMedium は中優先度（デフォルト）。
	TaskPriorityMedium TaskPriority = "medium"
	// TaskPriorityHigh は高優先度。
	TaskPriorityHigh TaskPriority = "high"
	// TaskPriorityUrgent は緊急優先度。
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Valid はTaskPriorityが定義済みの値かどうかを返す。
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// TaskQuery はタスク一覧のフィルタ・ソート条件を表す。
// ゼロ値は「フィルタなし・作成日時の降順」を意味する。
type TaskQuery struct {
	Status    string // 空文字は全状態
	Priority  string // 空文字は全優先度
	SortBy    string // createdAt / updatedAt / dueDate / title / priority / status
	SortOrder string // asc / desc
}

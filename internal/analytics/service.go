// Package analytics はタスク集計のドメインロジックを提供する。
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// Overview はユーザーのタスク集計結果を表す。
type Overview struct {
	TotalTasks      int
	CompletedTasks  int
	PendingTasks    int
	CompletionRate  float64
	TasksByPriority map[string]int
	TasksByStatus   map[string]int
	CompletionTrend []repository.TrendPoint
}

// UserStats はタスク集計とアカウント情報を結合した統計を表す。
type UserStats struct {
	TotalTasks            int
	CompletedTasks        int
	PendingTasks          int
	CompletionRate        float64
	TasksCreatedLast7Days int
	MemberSince           time.Time
	LastLogin             *time.Time
}

// trendWindowDays は完了トレンドの集計期間（日）。
const trendWindowDays = 30

// creationWindowDays はユーザー統計の作成数集計期間（日）。
const creationWindowDays = 7

// Service はタスク集計のサービス層。読み取り専用で副作用を持たない。
type Service struct {
	repo repository.AnalyticsRepository
	now  func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.AnalyticsRepository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Overview はユーザーのタスク集計を返す。
// 未完了数は「完了以外」の独立したクエリで取得する（全ステータスの
// 列挙が確定していないため、total - completed とは一致しなくてよい）。
func (s *Service) Overview(ctx context.Context, userID string) (*Overview, error) {
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("タスク総数の集計に失敗しました: %w", err)
	}

	completed, err := s.repo.CountCompleted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("完了タスク数の集計に失敗しました: %w", err)
	}

	pending, err := s.repo.CountPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("未完了タスク数の集計に失敗しました: %w", err)
	}

	byPriority, err := s.repo.CountByPriority(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("優先度別の集計に失敗しました: %w", err)
	}

	byStatus, err := s.repo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ステータス別の集計に失敗しました: %w", err)
	}

	since := s.now().AddDate(0, 0, -trendWindowDays)
	trend, err := s.repo.CompletionTrend(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("完了トレンドの集計に失敗しました: %w", err)
	}
	if trend == nil {
		trend = []repository.TrendPoint{}
	}

	return &Overview{
		TotalTasks:      total,
		CompletedTasks:  completed,
		PendingTasks:    pending,
		CompletionRate:  completionRate(completed, total),
		TasksByPriority: byPriority,
		TasksByStatus:   byStatus,
		CompletionTrend: trend,
	}, nil
}

// UserStats はタスク集計とアカウント情報を結合した統計を返す。
func (s *Service) UserStats(ctx context.Context, user *model.User) (*UserStats, error) {
	total, err := s.repo.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("タスク総数の集計に失敗しました: %w", err)
	}

	completed, err := s.repo.CountCompleted(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("完了タスク数の集計に失敗しました: %w", err)
	}

	pending, err := s.repo.CountPending(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("未完了タスク数の集計に失敗しました: %w", err)
	}

	since := s.now().AddDate(0, 0, -creationWindowDays)
	created, err := s.repo.CountCreatedSince(ctx, user.ID, since)
	if err != nil {
		return nil, fmt.Errorf("作成タスク数の集計に失敗しました: %w", err)
	}

	return &UserStats{
		TotalTasks:            total,
		CompletedTasks:        completed,
		PendingTasks:          pending,
		CompletionRate:        completionRate(completed, total),
		TasksCreatedLast7Days: created,
		MemberSince:           user.CreatedAt,
		LastLogin:             user.LastLogin,
	}, nil
}

// completionRate は完了率を小数第1位に丸めたパーセント値で返す。
// totalが0の場合はゼロ除算を避けて0を返す。
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(completed) / float64(total) * 100
	return math.Round(rate*10) / 10
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hitoshi/taskman/internal/analytics"
	"github.com/hitoshi/taskman/internal/middleware"
	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// AnalyticsServiceInterface は分析ハンドラーが必要とするサービスインターフェース。
type AnalyticsServiceInterface interface {
	// Overview はユーザーのタスク集計を返す。
	Overview(ctx context.Context, userID string) (*analytics.Overview, error)
	// UserStats はタスク集計とアカウント情報を結合した統計を返す。
	UserStats(ctx context.Context, user *model.User) (*analytics.UserStats, error)
}

// AnalyticsHandler はタスク分析のHTTPハンドラー。
type AnalyticsHandler struct {
	service AnalyticsServiceInterface
}

// NewAnalyticsHandler はAnalyticsHandlerを生成する。
func NewAnalyticsHandler(service AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// trendPointResponse は完了トレンドの1日分のレスポンス。
type trendPointResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// analyticsResponse はタスク集計のAPIレスポンス。
type analyticsResponse struct {
	TotalTasks      int                  `json:"totalTasks"`
	CompletedTasks  int                  `json:"completedTasks"`
	PendingTasks    int                  `json:"pendingTasks"`
	CompletionRate  float64              `json:"completionRate"`
	TasksByPriority map[string]int       `json:"tasksByPriority"`
	TasksByStatus   map[string]int       `json:"tasksByStatus"`
	CompletionTrend []trendPointResponse `json:"completionTrend"`
}

// userStatsResponse はユーザー統計のAPIレスポンス。
type userStatsResponse struct {
	TotalTasks            int     `json:"totalTasks"`
	CompletedTasks        int     `json:"completedTasks"`
	PendingTasks          int     `json:"pendingTasks"`
	CompletionRate        float64 `json:"completionRate"`
	TasksCreatedLast7Days int     `json:"tasksCreatedLast7Days"`
	MemberSince           string  `json:"memberSince"`
	LastLogin             *string `json:"lastLogin"`
}

// GetAnalytics はタスク集計を取得する。
// GET /tasks/analytics
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	overview, err := h.service.Overview(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, analyticsResponse{
		TotalTasks:      overview.TotalTasks,
		CompletedTasks:  overview.CompletedTasks,
		PendingTasks:    overview.PendingTasks,
		CompletionRate:  overview.CompletionRate,
		TasksByPriority: overview.TasksByPriority,
		TasksByStatus:   overview.TasksByStatus,
		CompletionTrend: toTrendResponses(overview.CompletionTrend),
	})
}

// GetUserStats はユーザー統計を取得する。
// GET /users/stats
func (h *AnalyticsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	stats, err := h.service.UserStats(r.Context(), user)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := userStatsResponse{
		TotalTasks:            stats.TotalTasks,
		CompletedTasks:        stats.CompletedTasks,
		PendingTasks:          stats.PendingTasks,
		CompletionRate:        stats.CompletionRate,
		TasksCreatedLast7Days: stats.TasksCreatedLast7Days,
		MemberSince:           stats.MemberSince.Format(time.RFC3339),
	}
	if stats.LastLogin != nil {
		lastLogin := stats.LastLogin.Format(time.RFC3339)
		resp.LastLogin = &lastLogin
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// toTrendResponses は完了トレンドをAPIレスポンスに変換する。
func toTrendResponses(trend []repository.TrendPoint) []trendPointResponse {
	out := make([]trendPointResponse, 0, len(trend))
	for _, p := range trend {
		out = append(out, trendPointResponse{Date: p.Date, Count: p.Count})
	}
	return out
}

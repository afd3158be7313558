package handler

import (
	"net/http"
	"time"

	"github.com/hitoshi/taskman/internal/middleware"
	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/plan"
)

// PlanHandler はプランカタログと購読情報のHTTPハンドラー。
// カタログは静的なためサービス層を持たない。
type PlanHandler struct{}

// NewPlanHandler はPlanHandlerを生成する。
func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// subscriptionResponse は現在の購読情報のAPIレスポンス。
type subscriptionResponse struct {
	Plan             string      `json:"plan"`
	Status           string      `json:"status"`
	CurrentPeriodEnd *string     `json:"currentPeriodEnd"`
	Details          plan.Detail `json:"details"`
}

// ListPlans は全プランのカタログを返す。
// GET /plans
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]map[plan.Tier]plan.Detail{
		"plans": plan.Catalog(),
	})
}

// GetCurrentSubscription は現在のユーザーの購読情報を返す。
// GET /subscriptions/current
func (h *PlanHandler) GetCurrentSubscription(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	detail, ok := plan.Lookup(plan.Tier(user.Plan))
	if !ok {
		// 不明なプランはfreeとして扱う
		detail, _ = plan.Lookup(plan.TierFree)
	}

	resp := subscriptionResponse{
		Plan:    user.Plan,
		Status:  user.SubscriptionStatus,
		Details: detail,
	}
	if user.CurrentPeriodEnd != nil {
		periodEnd := user.CurrentPeriodEnd.Format(time.RFC3339)
		resp.CurrentPeriodEnd = &periodEnd
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

package middleware

import (
	"net/http"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/plan"
)

// NewPlanMiddleware は解決済みユーザーのプラン階層がrequired以上で
// あることを検証するミドルウェアを返す。
// 階層が不足している場合は403を返し、ボディに現在のプランと
// 必要なプランを含める。比較のみで副作用は持たない。
// 認証ミドルウェアの後に配置すること。
func NewPlanMiddleware(required plan.Tier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := UserFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			current := plan.Tier(user.Plan)
			if !current.Allows(required) {
				WriteErrorResponse(w, http.StatusForbidden,
					model.NewPlanRequiredError(user.Plan, string(required)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

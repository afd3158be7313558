// Package plan はサブスクリプションプランの階層と静的カタログを提供する。
//
// プランはfree < pro < enterpriseの全順序を持ち、機能へのアクセスは
// ユーザーのプランレベルが必要レベル以上かどうかのみで決まる。
// カタログはプロセス全体で共有される不変データであり、永続化されない。
package plan

// Tier はプラン階層を表す。
type Tier string

const (
	// TierFree は無料プラン。
	TierFree Tier = "free"
	// TierPro はProプラン。
	TierPro Tier = "pro"
	// TierEnterprise はEnterpriseプラン。
	TierEnterprise Tier = "enterprise"
)

// Level はプラン階層の順序値を返す。free=0, pro=1, enterprise=2。
// 未知の値は-1を返し、いかなる必要レベルも満たさない。
func (t Tier) Level() int {
	switch t {
	case TierFree:
		return 0
	case TierPro:
		return 1
	case TierEnterprise:
		return 2
	}
	return -1
}

// Allows は自身の階層がrequired以上かどうかを返す。副作用はない。
func (t Tier) Allows(required Tier) bool {
	return t.Level() >= 0 && t.Level() >= required.Level()
}

// ParseTier は文字列をTierに変換する。未知の値はfalseを返す。
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierFree, TierPro, TierEnterprise:
		return Tier(s), true
	}
	return "", false
}

// Detail はプランカタログの1エントリを表す。
type Detail struct {
	Name     string   `json:"name"`
	Price    int      `json:"price"` // 月額（セント）
	Features []string `json:"features"`
}

// catalog は全プランの静的カタログ。
// 起動時に1回構築され、以後変更されない。
var catalog = map[Tier]Detail{
	TierFree: {
		Name:  "Free",
		Price: 0,
		Features: []string{
			"タスク管理（作成・更新・削除）",
			"ステータス・優先度フィルタ",
		},
	},
	TierPro: {
		Name:  "Pro",
		Price: 900,
		Features: []string{
			"Freeプランの全機能",
			"タスク分析ダッシュボード",
			"AIタスク提案",
			"ユーザー統計",
		},
	},
	TierEnterprise: {
		Name:  "Enterprise",
		Price: 2900,
		Features: []string{
			"Proプランの全機能",
			"優先サポート",
		},
	},
}

// Catalog は全プランのカタログを返す。
// 呼び出し側での変更を防ぐためコピーを返す。
func Catalog() map[Tier]Detail {
	out := make(map[Tier]Detail, len(catalog))
	for k, v := range catalog {
		out[k] = v
	}
	return out
}

// Lookup は指定プランのカタログ情報を返す。
func Lookup(t Tier) (Detail, bool) {
	d, ok := catalog[t]
	return d, ok
}

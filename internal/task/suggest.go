package task

import "strings"

// Suggestion はAIタスク提案の結果を表す。
type Suggestion struct {
	Priority      string   `json:"priority"`
	EstimatedTime int      `json:"estimatedTime"` // 分
	RelatedTasks  []string `json:"relatedTasks"`
}

// keywordRule はキーワード集合と提案値の対応を表す。
type keywordRule struct {
	keywords []string
	value    string
}

// timeRule はキーワード集合と見積もり時間（分）の対応を表す。
type timeRule struct {
	keywords []string
	minutes  int
}

// relatedRule はキーワードと関連タスクリストの対応を表す。
type relatedRule struct {
	keyword string
	tasks   []string
}

// 優先度ルール。先頭から順に評価し、最初に一致した規則が勝つ。
// どれにも一致しない場合のmediumはデフォルト値であり、
// 他の規則のフォールスルーではない。
var priorityRules = []keywordRule{
	{keywords: []string{"urgent", "asap", "emergency"}, value: "urgent"},
	{keywords: []string{"important", "critical"}, value: "high"},
	{keywords: []string{"later", "someday", "maybe"}, value: "low"},
}

// 見積もり時間ルール。先頭から順に評価し、最初に一致した規則が勝つ。
var timeRules = []timeRule{
	{keywords: []string{"meeting", "call"}, minutes: 60},
	{keywords: []string{"email", "message"}, minutes: 15},
	{keywords: []string{"research", "analysis"}, minutes: 120},
	{keywords: []string{"review", "check"}, minutes: 30},
}

// 関連タスクルール。先頭から順に評価し、最初に一致したカテゴリの
// 固定3件リストを返す。一致しない場合は空リスト。
var relatedRules = []relatedRule{
	{keyword: "project", tasks: []string{
		"Create project timeline",
		"Set up project meetings",
		"Define project milestones",
	}},
	{keyword: "report", tasks: []string{
		"Gather data for report",
		"Review report with team",
		"Submit final report",
	}},
	{keyword: "presentation", tasks: []string{
		"Create presentation slides",
		"Practice presentation",
		"Schedule presentation rehearsal",
	}},
}

// Suggest はタイトルと説明文から優先度・見積もり時間・関連タスクを提案する。
// タイトルと説明文を連結して小文字化したテキストに対する
// 静的な決定表であり、純粋関数として同一入力に常に同一出力を返す。
// 各カテゴリの判定は互いに独立している。
func Suggest(title, description string) Suggestion {
	text := strings.ToLower(title + " " + description)

	suggestion := Suggestion{
		Priority:      "medium",
		EstimatedTime: 45,
		RelatedTasks:  []string{},
	}

	for _, rule := range priorityRules {
		if containsAny(text, rule.keywords) {
			suggestion.Priority = rule.value
			break
		}
	}

	for _, rule := range timeRules {
		if containsAny(text, rule.keywords) {
			suggestion.EstimatedTime = rule.minutes
			break
		}
	}

	for _, rule := range relatedRules {
		if strings.Contains(text, rule.keyword) {
			suggestion.RelatedTasks = append([]string{}, rule.tasks...)
			break
		}
	}

	return suggestion
}

// containsAny はテキストがキーワードのいずれかを含むかどうかを返す。
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Package model はドメインモデルを定義する。
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// dueDateFormats はdueDate文字列として受理するフォーマット。
var dueDateFormats = []string{
	time.RFC3339,
	"2006-01-02",
}

// ParseDueDate はdueDate文字列を日時に変換する。
// RFC3339と日付のみ（YYYY-MM-DD）の2形式を受理する。
func ParseDueDate(s string) (time.Time, error) {
	for _, layout := range dueDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date format: %q", s)
}

// OptionalTime はリクエストボディ上の「省略」「明示的null」「値あり」を
// 区別できるnullableな日時フィールドを表す。
//   - Set=false: フィールドがボディに存在しなかった（変更しない）
//   - Set=true, Valid=false: 明示的にnullが指定された（クリアする）
//   - Set=true, Valid=true: 値が指定された
type OptionalTime struct {
	Set   bool
	Valid bool
	Time  time.Time
}

// UnmarshalJSON はjson.Unmarshalerを実装する。
// このメソッドが呼ばれた時点でフィールドはボディに存在していたことになる。
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true

	if string(data) == "null" {
		o.Valid = false
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	t, err := ParseDueDate(s)
	if err != nil {
		return err
	}

	o.Valid = true
	o.Time = t
	return nil
}

// TaskPatch はタスクの部分更新を表す。
// nilのフィールドはボディに存在しなかったことを意味し、既存の値を維持する。
// DueDateのみnull許容のためOptionalTimeで省略とnullを区別する。
type TaskPatch struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Status      *string      `json:"status"`
	Priority    *string      `json:"priority"`
	DueDate     OptionalTime `json:"dueDate"`
	Tags        *[]string    `json:"tags"`
}

// Empty はパッチが1つもフィールドを含まないかどうかを返す。
func (p *TaskPatch) Empty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Status == nil &&
		p.Priority == nil &&
		!p.DueDate.Set &&
		p.Tags == nil
}

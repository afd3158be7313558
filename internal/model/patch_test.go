package model

import (
	"encoding/json"
	"testing"
	"time"
)

// ParseDueDateがRFC3339と日付のみの2形式を受理することを検証
func TestParseDueDate(t *testing.T) {
	if _, err := ParseDueDate("2026-03-01T10:00:00Z"); err != nil {
		t.Errorf("RFC3339 should be accepted: %v", err)
	}

	got, err := ParseDueDate("2026-03-01")
	if err != nil {
		t.Fatalf("date-only format should be accepted: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 1 {
		t.Errorf("parsed date = %v, want 2026-03-01", got)
	}

	if _, err := ParseDueDate("03/01/2026"); err == nil {
		t.Error("slash-separated date should be rejected")
	}
}

// dueDateフィールド省略時にSet=falseになることを検証
func TestTaskPatch_DueDateAbsent(t *testing.T) {
	var patch TaskPatch
	if err := json.Unmarshal([]byte(`{"title":"updated"}`), &patch); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if patch.DueDate.Set {
		t.Error("absent dueDate should have Set=false")
	}
	if patch.Title == nil || *patch.Title != "updated" {
		t.Errorf("Title = %v, want updated", patch.Title)
	}
}

// dueDate: null でSet=true, Valid=falseになる（クリア指示）ことを検証
func TestTaskPatch_DueDateExplicitNull(t *testing.T) {
	var patch TaskPatch
	if err := json.Unmarshal([]byte(`{"dueDate":null}`), &patch); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !patch.DueDate.Set {
		t.Error("explicit null should have Set=true")
	}
	if patch.DueDate.Valid {
		t.Error("explicit null should have Valid=false")
	}
}

// dueDateに値が指定された場合にSet=true, Valid=trueになることを検証
func TestTaskPatch_DueDateValue(t *testing.T) {
	var patch TaskPatch
	if err := json.Unmarshal([]byte(`{"dueDate":"2026-04-15T09:00:00Z"}`), &patch); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !patch.DueDate.Set || !patch.DueDate.Valid {
		t.Fatalf("dueDate value should have Set=true, Valid=true: %+v", patch.DueDate)
	}
	if patch.DueDate.Time.Day() != 15 {
		t.Errorf("parsed day = %d, want 15", patch.DueDate.Time.Day())
	}
}

// 不正な形式のdueDateがエラーになることを検証
func TestTaskPatch_DueDateInvalidFormat(t *testing.T) {
	var patch TaskPatch
	if err := json.Unmarshal([]byte(`{"dueDate":"next week"}`), &patch); err == nil {
		t.Error("invalid dueDate format should fail to unmarshal")
	}
}

// Emptyがフィールドの有無を正しく判定することを検証
func TestTaskPatch_Empty(t *testing.T) {
	var empty TaskPatch
	if !empty.Empty() {
		t.Error("zero patch should be empty")
	}

	title := "x"
	withTitle := TaskPatch{Title: &title}
	if withTitle.Empty() {
		t.Error("patch with title should not be empty")
	}

	var nullDue TaskPatch
	if err := json.Unmarshal([]byte(`{"dueDate":null}`), &nullDue); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if nullDue.Empty() {
		t.Error("patch with explicit null dueDate should not be empty")
	}
}

// タスクステータスと優先度のバリデーションを検証
func TestTaskEnums_Valid(t *testing.T) {
	for _, s := range []TaskStatus{TaskStatusOpen, TaskStatusInProgress, TaskStatusCompleted} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if TaskStatus("done").Valid() {
		t.Error("status done should be invalid")
	}

	for _, p := range []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent} {
		if !p.Valid() {
			t.Errorf("priority %q should be valid", p)
		}
	}
	if TaskPriority("extreme").Valid() {
		t.Error("priority extreme should be invalid")
	}
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskman/internal/middleware"
	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/task"
)

// mockTaskService はテスト用のTaskServiceInterfaceモック。
type mockTaskService struct {
	listResult   []*model.Task
	listErr      error
	createResult *model.Task
	createErr    error
	updateResult *model.Task
	updateErr    error
	deleteErr    error

	lastQuery  model.TaskQuery
	lastInput  task.CreateInput
	lastPatch  model.TaskPatch
	lastTaskID string
	lastUserID string
}

func (m *mockTaskService) List(_ context.Context, userID string, q model.TaskQuery) ([]*model.Task, error) {
	m.lastUserID = userID
	m.lastQuery = q
	return m.listResult, m.listErr
}

func (m *mockTaskService) Create(_ context.Context, userID string, in task.CreateInput) (*model.Task, error) {
	m.lastUserID = userID
	m.lastInput = in
	return m.createResult, m.createErr
}

func (m *mockTaskService) Update(_ context.Context, userID, taskID string, patch model.TaskPatch) (*model.Task, error) {
	m.lastUserID = userID
	m.lastTaskID = taskID
	m.lastPatch = patch
	return m.updateResult, m.updateErr
}

func (m *mockTaskService) Delete(_ context.Context, userID, taskID string) error {
	m.lastUserID = userID
	m.lastTaskID = taskID
	return m.deleteErr
}

// mockSuggestionMetrics はAI提案メトリクスのモック。
type mockSuggestionMetrics struct {
	generated int
}

func (m *mockSuggestionMetrics) RecordSuggestionGenerated() { m.generated++ }

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.ContextWithUser(req.Context(), &model.User{ID: "u1", Plan: "pro"})
	return req.WithContext(ctx)
}

func sampleTask() *model.Task {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	return &model.Task{
		ID:        "t1",
		UserID:    "u1",
		Title:     "write minutes",
		Status:    model.TaskStatusOpen,
		Priority:  model.TaskPriorityMedium,
		DueDate:   &due,
		Tags:      []string{"work"},
		CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

// 一覧取得でクエリパラメータがサービスに渡り、tasksキーで返ることを検証
func TestTaskHandler_ListTasks(t *testing.T) {
	svc := &mockTaskService{listResult: []*model.Task{sampleTask()}}
	h := NewTaskHandler(svc, nil)

	req := authedRequest(http.MethodGet, "/tasks?status=open&priority=high&sortBy=dueDate&sortOrder=asc", "")
	w := httptest.NewRecorder()

	h.ListTasks(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.lastUserID != "u1" {
		t.Errorf("userID = %q, want u1", svc.lastUserID)
	}
	wantQuery := model.TaskQuery{Status: "open", Priority: "high", SortBy: "dueDate", SortOrder: "asc"}
	if svc.lastQuery != wantQuery {
		t.Errorf("query = %+v, want %+v", svc.lastQuery, wantQuery)
	}

	var resp map[string][]map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(resp["tasks"]) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(resp["tasks"]))
	}
	if resp["tasks"][0]["dueDate"] != "2026-09-15T00:00:00Z" {
		t.Errorf("dueDate = %v, want RFC3339 string", resp["tasks"][0]["dueDate"])
	}
}

// 0件の一覧がnullではなく空配列で返ることを検証
func TestTaskHandler_ListTasks_Empty(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{}, nil)

	w := httptest.NewRecorder()
	h.ListTasks(w, authedRequest(http.MethodGet, "/tasks", ""))

	if !strings.Contains(w.Body.String(), `"tasks":[]`) {
		t.Errorf("empty list should serialize as []: %s", w.Body.String())
	}
}

// 作成成功で201と作成済みタスクが返ることを検証
func TestTaskHandler_CreateTask(t *testing.T) {
	svc := &mockTaskService{createResult: sampleTask()}
	h := NewTaskHandler(svc, nil)

	body := `{"title":"write minutes","priority":"medium","dueDate":"2026-09-15","tags":["work"]}`
	req := authedRequest(http.MethodPost, "/tasks", body)
	w := httptest.NewRecorder()

	h.CreateTask(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if svc.lastInput.Title != "write minutes" {
		t.Errorf("input title = %q", svc.lastInput.Title)
	}
	if svc.lastInput.DueDate == nil {
		t.Error("dueDate should be parsed into the input")
	}
}

// タイトル欠落が400になることを検証
func TestTaskHandler_CreateTask_MissingTitle(t *testing.T) {
	svc := &mockTaskService{createErr: model.NewValidationError("タイトルは必須です。")}
	h := NewTaskHandler(svc, nil)

	req := authedRequest(http.MethodPost, "/tasks", `{"description":"no title"}`)
	w := httptest.NewRecorder()

	h.CreateTask(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// 不正なdueDate形式が400になることを検証
func TestTaskHandler_CreateTask_InvalidDueDate(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{}, nil)

	req := authedRequest(http.MethodPost, "/tasks", `{"title":"x","dueDate":"next friday"}`)
	w := httptest.NewRecorder()

	h.CreateTask(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// 更新でURLパラメータとパッチがサービスに渡ることを検証
func TestTaskHandler_UpdateTask(t *testing.T) {
	svc := &mockTaskService{updateResult: sampleTask()}
	h := NewTaskHandler(svc, nil)

	req := authedRequest(http.MethodPut, "/tasks/t1", `{"status":"completed"}`)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "t1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.UpdateTask(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.lastTaskID != "t1" {
		t.Errorf("taskID = %q, want t1", svc.lastTaskID)
	}
	if svc.lastPatch.Status == nil || *svc.lastPatch.Status != "completed" {
		t.Errorf("patch status = %v, want completed", svc.lastPatch.Status)
	}
}

// 存在しない（または他ユーザー所有の）タスク更新が404になることを検証
func TestTaskHandler_UpdateTask_NotFound(t *testing.T) {
	svc := &mockTaskService{updateErr: model.NewTaskNotFoundError("t9")}
	h := NewTaskHandler(svc, nil)

	req := authedRequest(http.MethodPut, "/tasks/t9", `{"title":"x"}`)
	w := httptest.NewRecorder()

	h.UpdateTask(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

// 削除成功で成功メッセージが返ることを検証
func TestTaskHandler_DeleteTask(t *testing.T) {
	svc := &mockTaskService{}
	h := NewTaskHandler(svc, nil)

	req := authedRequest(http.MethodDelete, "/tasks/t1", "")
	w := httptest.NewRecorder()

	h.DeleteTask(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp["message"] == "" {
		t.Error("delete response should carry a message")
	}
}

// AI提案で決定表の結果とメトリクス記録を検証
func TestTaskHandler_SuggestTask(t *testing.T) {
	metrics := &mockSuggestionMetrics{}
	h := NewTaskHandler(&mockTaskService{}, metrics)

	req := authedRequest(http.MethodPost, "/tasks/ai-suggestions", `{"title":"urgent email to client"}`)
	w := httptest.NewRecorder()

	h.SuggestTask(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	suggestion := resp["suggestion"]
	if suggestion["priority"] != "urgent" {
		t.Errorf("priority = %v, want urgent", suggestion["priority"])
	}
	if suggestion["estimatedTime"] != float64(15) {
		t.Errorf("estimatedTime = %v, want 15", suggestion["estimatedTime"])
	}
	if metrics.generated != 1 {
		t.Errorf("generated metric = %d, want 1", metrics.generated)
	}
}

// AI提案のタイトル欠落が400になることを検証
func TestTaskHandler_SuggestTask_MissingTitle(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{}, nil)

	req := authedRequest(http.MethodPost, "/tasks/ai-suggestions", `{"description":"only description"}`)
	w := httptest.NewRecorder()

	h.SuggestTask(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

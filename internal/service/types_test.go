package service_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bytedance/sonic"

	"realtodo/internal/service"
)

func TestTaskID_AcceptsNumbersAndStrings(t *testing.T) {
	var tasks []service.Task
	body := `[{"id":5,"title":"a","done":true},{"id":"abc","title":"b","done":false},{"id":12345678901,"title":"c"}]`
	if err := sonic.Unmarshal([]byte(body), &tasks); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []service.TaskID{"5", "abc", "12345678901"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Errorf("task %d: expected id %q, got %q", i, id, tasks[i].ID)
		}
	}
	if !tasks[0].Done || tasks[1].Done {
		t.Errorf("done flags not decoded: %+v", tasks)
	}
}

func TestTaskID_RejectsObjects(t *testing.T) {
	var task service.Task
	if err := sonic.Unmarshal([]byte(`{"id":{"x":1}}`), &task); err == nil {
		t.Error("expected error for object id")
	}
}

func TestError_Message(t *testing.T) {
	err := &service.Error{Status: 500}
	if err.Error() != "HTTP 500" {
		t.Errorf("expected 'HTTP 500', got %q", err.Error())
	}
	err = &service.Error{Status: 401, Message: "Invalid token"}
	if err.Error() != "Invalid token" {
		t.Errorf("expected 'Invalid token', got %q", err.Error())
	}
}

func TestStatusHelpers(t *testing.T) {
	wrapped := fmt.Errorf("reload: %w", &service.Error{Status: 401, Message: "Invalid token"})
	if !service.IsUnauthorized(wrapped) {
		t.Error("expected wrapped 401 to be unauthorized")
	}
	if service.StatusOf(errors.New("boom")) != 0 {
		t.Error("expected status 0 for plain error")
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
	err := error(&service.NetworkError{Err: cause})
	if !errors.Is(err, service.ErrNetwork) {
		t.Error("expected errors.Is(err, ErrNetwork)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}
	if err.Error() != cause.Error() {
		t.Errorf("expected transport text, got %q", err.Error())
	}
}

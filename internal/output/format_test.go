package output

import (
	"bytes"
	"testing"
	"time"

	"realtodo/internal/service"
	"realtodo/internal/session"
	"realtodo/internal/testutil"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		task service.Task
		want string
	}{
		{"open", service.Task{ID: "1", Title: "milk"}, "   1  [ ] milk\n"},
		{"done", service.Task{ID: "42", Title: "eggs", Done: true}, "  42  [x] eggs\n"},
		{"wide id", service.Task{ID: "12345", Title: "x"}, "12345  [ ] x\n"},
		{"newline", service.Task{ID: "3", Title: "a\nb"}, "   3  [ ] a b\n"},
		{"blank", service.Task{ID: "4", Title: "  "}, "   4  [ ] (untitled)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.task)
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTasks(t *testing.T) {
	var buf bytes.Buffer
	FormatTasks(&buf, []service.Task{
		{ID: "3", Title: "call mom"},
		{ID: "2", Title: "eggs", Done: true},
		{ID: "1", Title: "milk"},
	})
	testutil.Golden(t, "tasks", buf.Bytes())
}

func TestFormatTasks_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTasks(&buf, nil)
	if got := buf.String(); got != "(no tasks)\n" {
		t.Errorf("got %q", got)
	}
}

func TestFormatClaims(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := session.Claims{
		Subject:   "7",
		Email:     "a@b.com",
		ExpiresAt: now.Add(time.Hour),
	}
	var buf bytes.Buffer
	FormatClaims(&buf, c, now)
	testutil.Golden(t, "claims", buf.Bytes())

	buf.Reset()
	FormatClaims(&buf, c, now.Add(2*time.Hour))
	want := "email:   a@b.com\nsubject: 7\nexpires: 2024-05-01T13:00:00Z (expired)\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf.Reset()
	FormatClaims(&buf, session.Claims{}, now)
	want = "email:   -\nsubject: -\nexpires: never\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

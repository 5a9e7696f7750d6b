package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// TaskID is an opaque, server-assigned task identifier.
// The API may send it as a JSON number or a JSON string.
type TaskID string

// UnmarshalJSON accepts both string and numeric ids.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("task id: %w", err)
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := sonic.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

// String returns the id as sent in request paths.
func (id TaskID) String() string { return string(id) }

// Task represents a single task item.
type Task struct {
	ID    TaskID `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Credentials is the email/password pair sent to login and register.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

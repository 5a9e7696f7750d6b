// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for the remote task API.
// The controller and commands only talk to the API through this interface.
type Service interface {
	// Register creates an account and returns its bearer token.
	Register(ctx context.Context, creds Credentials) (string, error)

	// Login authenticates an existing account and returns its bearer token.
	Login(ctx context.Context, creds Credentials) (string, error)

	// ListTasks returns the full task collection in server order.
	ListTasks(ctx context.Context, token string) ([]Task, error)

	// CreateTask creates a task. The response payload is not used.
	CreateTask(ctx context.Context, token, title string) error

	// ToggleTask flips the completion flag of a task.
	ToggleTask(ctx context.Context, token string, id TaskID) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, token string, id TaskID) error

	// Health checks that the API is reachable. No credential is needed.
	Health(ctx context.Context) error
}

// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"realtodo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Tokens are issued as "T1", "T2", ... in order. Task lists are returned
// newest first, like the real API.
type FakeService struct {
	mu        sync.Mutex
	passwords map[string]string         // email -> password
	tokens    map[string]string         // token -> email
	tasks     map[string][]service.Task // email -> tasks, newest first
	nextToken int
	nextID    int
	calls     []string

	// Error injection for testing
	RegisterErr error
	LoginErr    error
	ListErr     error
	CreateErr   error
	ToggleErr   error
	DeleteErr   error
	HealthErr   error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		passwords: make(map[string]string),
		tokens:    make(map[string]string),
		tasks:     make(map[string][]service.Task),
	}
}

// AddUser registers an account directly.
func (f *FakeService) AddUser(email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passwords[strings.ToLower(email)] = password
}

// IssueToken returns a valid token for an existing account without a call
// being recorded. Used to seed a restored session.
func (f *FakeService) IssueToken(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueLocked(strings.ToLower(email))
}

// Revoke invalidates a token; later calls with it get 401.
func (f *FakeService) Revoke(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
}

// AddTask adds a task for a user and returns its id.
func (f *FakeService) AddTask(email, title string, done bool) service.TaskID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(strings.ToLower(email), title, done)
}

// Tasks returns a copy of a user's tasks in server order.
func (f *FakeService) Tasks(email string) []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task(nil), f.tasks[strings.ToLower(email)]...)
}

// Calls returns the names of the service methods called, in order.
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CountCalls returns how many times method was called.
func (f *FakeService) CountCalls(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == method {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, method)
}

func (f *FakeService) issueLocked(email string) string {
	f.nextToken++
	token := "T" + strconv.Itoa(f.nextToken)
	f.tokens[token] = email
	return token
}

func (f *FakeService) addLocked(email, title string, done bool) service.TaskID {
	f.nextID++
	id := service.TaskID(strconv.Itoa(f.nextID))
	task := service.Task{ID: id, Title: title, Done: done}
	f.tasks[email] = append([]service.Task{task}, f.tasks[email]...)
	return id
}

func (f *FakeService) userLocked(token string) (string, error) {
	if token == "" {
		return "", &service.Error{Status: http.StatusUnauthorized, Message: "Missing Bearer token"}
	}
	email, ok := f.tokens[token]
	if !ok {
		return "", &service.Error{Status: http.StatusUnauthorized, Message: "Invalid token"}
	}
	return email, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, creds service.Credentials) (string, error) {
	f.record("Register")
	if f.RegisterErr != nil {
		return "", f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	email := strings.ToLower(creds.Email)
	if email == "" || creds.Password == "" {
		return "", &service.Error{Status: http.StatusBadRequest, Message: "email and password are required"}
	}
	if _, exists := f.passwords[email]; exists {
		return "", &service.Error{Status: http.StatusConflict, Message: "Email already in use"}
	}
	f.passwords[email] = creds.Password
	return f.issueLocked(email), nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, creds service.Credentials) (string, error) {
	f.record("Login")
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	email := strings.ToLower(creds.Email)
	pw, ok := f.passwords[email]
	if !ok || pw != creds.Password {
		return "", &service.Error{Status: http.StatusUnauthorized, Message: "Bad credentials"}
	}
	return f.issueLocked(email), nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, token string) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	email, err := f.userLocked(token)
	if err != nil {
		return nil, err
	}
	return append([]service.Task{}, f.tasks[email]...), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, token, title string) error {
	f.record("CreateTask")
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	email, err := f.userLocked(token)
	if err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return &service.Error{Status: http.StatusBadRequest, Message: "title must not be blank"}
	}
	f.addLocked(email, title, false)
	return nil
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(ctx context.Context, token string, id service.TaskID) error {
	f.record("ToggleTask")
	if f.ToggleErr != nil {
		return f.ToggleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	email, err := f.userLocked(token)
	if err != nil {
		return err
	}
	for i, t := range f.tasks[email] {
		if t.ID == id {
			f.tasks[email][i].Done = !t.Done
			return nil
		}
	}
	return &service.Error{Status: http.StatusNotFound, Message: fmt.Sprintf("task %s not found", id)}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, token string, id service.TaskID) error {
	f.record("DeleteTask")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	email, err := f.userLocked(token)
	if err != nil {
		return err
	}
	tasks := f.tasks[email]
	for i, t := range tasks {
		if t.ID == id {
			f.tasks[email] = append(tasks[:i:i], tasks[i+1:]...)
			return nil
		}
	}
	return &service.Error{Status: http.StatusNotFound, Message: fmt.Sprintf("task %s not found", id)}
}

// Health implements service.Service.
func (f *FakeService) Health(ctx context.Context) error {
	f.record("Health")
	return f.HealthErr
}

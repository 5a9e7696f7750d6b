package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"realtodo/internal/service"
)

// API paths.
const (
	pathRegister = "/api/auth/register"
	pathLogin    = "/api/auth/login"
	pathTodos    = "/api/todos"
	pathHealth   = "/api/health"
)

// ErrNoToken is returned when an auth response carries no token.
var ErrNoToken = errors.New("no token in response")

// Client implements service.Service using the task HTTP API.
type Client struct {
	t *Transport
}

var _ service.Service = (*Client)(nil)

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	return &Client{t: NewTransport(baseURL, opts...)}
}

type authResponse struct {
	Token string `json:"token"`
}

type createTaskRequest struct {
	Title string `json:"title"`
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, creds service.Credentials) (string, error) {
	return c.authenticate(ctx, pathRegister, creds)
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, creds service.Credentials) (string, error) {
	return c.authenticate(ctx, pathLogin, creds)
}

func (c *Client) authenticate(ctx context.Context, path string, creds service.Credentials) (string, error) {
	p, err := c.t.Do(ctx, path, RequestOptions{Method: http.MethodPost, Body: creds})
	if err != nil {
		return "", err
	}
	var out authResponse
	if err := p.Decode(&out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", ErrNoToken
	}
	return out.Token, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context, token string) ([]service.Task, error) {
	p, err := c.t.Do(ctx, pathTodos, RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	tasks := []service.Task{}
	if err := p.Decode(&tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, token, title string) error {
	_, err := c.t.Do(ctx, pathTodos, RequestOptions{
		Token:  token,
		Method: http.MethodPost,
		Body:   createTaskRequest{Title: title},
	})
	return err
}

// ToggleTask implements service.Service.
func (c *Client) ToggleTask(ctx context.Context, token string, id service.TaskID) error {
	_, err := c.t.Do(ctx, taskPath(id)+"/toggle", RequestOptions{Token: token, Method: http.MethodPatch})
	return err
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, token string, id service.TaskID) error {
	_, err := c.t.Do(ctx, taskPath(id), RequestOptions{Token: token, Method: http.MethodDelete})
	return err
}

// Health implements service.Service.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.t.Do(ctx, pathHealth, RequestOptions{})
	return err
}

func taskPath(id service.TaskID) string {
	return pathTodos + "/" + url.PathEscape(id.String())
}

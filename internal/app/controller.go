// Package app holds the client controller: the state machine between the
// unauthenticated form and the authenticated task list.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"realtodo/internal/service"
	"realtodo/internal/session"
	"realtodo/internal/tasklist"
)

// Status messages shown after state transitions.
const (
	StatusAuthenticated = "Authenticated ✅"
	StatusLoggedOut     = "Logged out."
)

var (
	// ErrBlankTitle is returned by AddTask when the trimmed title is empty.
	// No request is made.
	ErrBlankTitle = errors.New("title required")

	// ErrNotAuthenticated is returned by task actions without a credential.
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrSessionExpired wraps the error of a failed startup reload.
	ErrSessionExpired = errors.New("session expired")
)

// Controller owns the client state and is the only thing that changes it.
// The mutex guards state reads and writes only; it is never held across a
// network call, so independent actions can overlap and the last reload to
// finish wins.
type Controller struct {
	svc     service.Service
	session *session.Store
	tasks   *tasklist.Cache

	mu     sync.Mutex
	form   Form
	status string
}

// New creates a Controller.
func New(svc service.Service, sess *session.Store, tasks *tasklist.Cache) *Controller {
	return &Controller{svc: svc, session: sess, tasks: tasks}
}

// Snapshot returns a copy of the current state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	s := Snapshot{Form: c.form, Status: c.status}
	c.mu.Unlock()
	s.Authenticated = c.session.Authenticated()
	if s.Authenticated {
		s.Tasks = c.tasks.Items()
	}
	return s
}

// Authenticated reports whether a credential is present.
func (c *Controller) Authenticated() bool {
	return c.session.Authenticated()
}

// Claims decodes the current credential. It returns ErrNotAuthenticated
// when there is none.
func (c *Controller) Claims() (session.Claims, error) {
	token := c.session.Token()
	if token == "" {
		return session.Claims{}, ErrNotAuthenticated
	}
	return session.ParseClaims(token)
}

// CanAddTask reports whether the add-task action is enabled.
func (c *Controller) CanAddTask() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.TrimSpace(c.form.NewTitle) != ""
}

func (c *Controller) SetMode(m AuthMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Mode = m
}

func (c *Controller) SetEmail(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Email = v
}

func (c *Controller) SetPassword(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Password = v
}

func (c *Controller) SetNewTitle(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.NewTitle = v
}

func (c *Controller) setStatus(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = s
}

// fail records err as the status line and returns it.
func (c *Controller) fail(err error) error {
	c.setStatus(err.Error())
	return err
}

// Start restores the session. With a stored credential it reloads the task
// list; if that reload fails for any reason the credential is treated as
// invalid and the client logs out.
func (c *Controller) Start(ctx context.Context) error {
	token := c.session.Token()
	if token == "" {
		return nil
	}
	if err := c.tasks.Reload(ctx, token); err != nil {
		log.WithError(err).Info("stored session rejected, logging out")
		c.Logout()
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	return nil
}

// SubmitAuth logs in or registers depending on the form mode. On success
// the credential is stored, the password cleared and the task list loaded.
// On failure the form is left as it was.
func (c *Controller) SubmitAuth(ctx context.Context) error {
	c.mu.Lock()
	form := c.form
	c.status = ""
	c.mu.Unlock()

	creds := service.Credentials{Email: form.Email, Password: form.Password}
	var token string
	var err error
	if form.Mode == ModeRegister {
		token, err = c.svc.Register(ctx, creds)
	} else {
		token, err = c.svc.Login(ctx, creds)
	}
	if err != nil {
		return c.fail(err)
	}

	// Storage failures are logged by the store; the session proceeds in memory.
	_ = c.session.Set(token)
	c.mu.Lock()
	c.form.Password = ""
	c.mu.Unlock()
	log.WithField("mode", form.Mode).Debug("authenticated")

	if err := c.tasks.Reload(ctx, token); err != nil {
		return c.fail(err)
	}
	c.setStatus(StatusAuthenticated)
	return nil
}

// AddTask creates a task from the pending title and reloads. A blank title
// makes no request.
func (c *Controller) AddTask(ctx context.Context) error {
	c.mu.Lock()
	title := c.form.NewTitle
	if strings.TrimSpace(title) == "" {
		c.mu.Unlock()
		return ErrBlankTitle
	}
	c.status = ""
	c.mu.Unlock()

	token := c.session.Token()
	if token == "" {
		return c.fail(ErrNotAuthenticated)
	}
	if err := c.tasks.Create(ctx, token, title); err != nil {
		return c.fail(err)
	}
	c.mu.Lock()
	if c.form.NewTitle == title {
		c.form.NewTitle = ""
	}
	c.mu.Unlock()
	return c.reload(ctx, token)
}

// Toggle flips a task's completion flag and reloads.
func (c *Controller) Toggle(ctx context.Context, id service.TaskID) error {
	return c.mutate(ctx, func(token string) error {
		return c.tasks.Toggle(ctx, token, id)
	})
}

// Delete removes a task and reloads.
func (c *Controller) Delete(ctx context.Context, id service.TaskID) error {
	return c.mutate(ctx, func(token string) error {
		return c.tasks.Delete(ctx, token, id)
	})
}

// Reload refetches the task list. Failures only set the status.
func (c *Controller) Reload(ctx context.Context) error {
	c.setStatus("")
	token := c.session.Token()
	if token == "" {
		return c.fail(ErrNotAuthenticated)
	}
	return c.reload(ctx, token)
}

// mutate runs one task mutation followed by a reload. Failures set the
// status but leave the session and cache as they were.
func (c *Controller) mutate(ctx context.Context, fn func(token string) error) error {
	c.setStatus("")
	token := c.session.Token()
	if token == "" {
		return c.fail(ErrNotAuthenticated)
	}
	if err := fn(token); err != nil {
		return c.fail(err)
	}
	return c.reload(ctx, token)
}

func (c *Controller) reload(ctx context.Context, token string) error {
	if err := c.tasks.Reload(ctx, token); err != nil {
		return c.fail(err)
	}
	return nil
}

// Logout clears the session and the task list.
func (c *Controller) Logout() {
	// Storage failures are logged by the store.
	_ = c.session.Clear()
	c.tasks.Clear()
	c.setStatus(StatusLoggedOut)
}

// Ping checks that the API is reachable.
func (c *Controller) Ping(ctx context.Context) error {
	return c.svc.Health(ctx)
}

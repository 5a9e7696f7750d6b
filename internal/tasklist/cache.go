// Package tasklist caches the last task collection fetched from the API.
package tasklist

import (
	"context"
	"sync"

	"realtodo/internal/service"
)

// Cache holds the most recent task collection. It is only ever replaced
// as a whole by Reload; the mutation methods never touch it, so callers
// must Reload after them.
type Cache struct {
	svc service.Service

	mu    sync.RWMutex
	items []service.Task
}

// New creates an empty Cache backed by svc.
func New(svc service.Service) *Cache {
	return &Cache{svc: svc}
}

// Reload fetches the full collection and replaces the cache contents.
// On error the cache is left as it was.
func (c *Cache) Reload(ctx context.Context, token string) error {
	tasks, err := c.svc.ListTasks(ctx, token)
	if err != nil {
		return err
	}
	items := make([]service.Task, len(tasks))
	copy(items, tasks)

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Create asks the API to create a task.
func (c *Cache) Create(ctx context.Context, token, title string) error {
	return c.svc.CreateTask(ctx, token, title)
}

// Toggle asks the API to flip a task's completion flag.
func (c *Cache) Toggle(ctx context.Context, token string, id service.TaskID) error {
	return c.svc.ToggleTask(ctx, token, id)
}

// Delete asks the API to remove a task.
func (c *Cache) Delete(ctx context.Context, token string, id service.TaskID) error {
	return c.svc.DeleteTask(ctx, token, id)
}

// Items returns a copy of the cached tasks in server order.
func (c *Cache) Items() []service.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]service.Task, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of cached tasks.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

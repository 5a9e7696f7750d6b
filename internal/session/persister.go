package session

import (
	"fmt"
	"strings"
)

// NewPersister selects a Persister from a store setting: "" or "file"
// uses dir, a redis:// or rediss:// URL uses Redis.
func NewPersister(store, dir string) (Persister, error) {
	switch {
	case store == "" || store == "file":
		return NewFileStore(dir), nil
	case strings.HasPrefix(store, "redis://"), strings.HasPrefix(store, "rediss://"):
		return NewRedisStore(store, DefaultRedisPrefix)
	default:
		return nil, fmt.Errorf("unknown session store: %s", store)
	}
}

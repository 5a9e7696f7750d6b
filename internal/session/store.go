// Package session holds the current bearer credential and keeps it in
// durable storage.
package session

import (
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Key is the durable storage key the credential is kept under.
const Key = "token"

// Persister is a durable key-value store. Load reports ok=false when the
// key is absent.
type Persister interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
	Delete(key string) error
}

// Store holds at most one credential. Every mutation writes through to the
// persister; the in-memory value is updated even if the write fails.
type Store struct {
	mu    sync.RWMutex
	token string
	p     Persister
}

// Open creates a Store, restoring any credential previously saved in p.
func Open(p Persister) *Store {
	s := &Store{p: p}
	token, ok, err := p.Load(Key)
	if err != nil {
		log.WithError(err).Warn("could not restore session")
		return s
	}
	if ok {
		s.token = strings.TrimSpace(token)
		log.Debug("session restored")
	}
	return s
}

// Token returns the current credential, or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a credential is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Set replaces the credential. An empty token clears the session.
func (s *Store) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if err := s.p.Save(Key, token); err != nil {
		log.WithError(err).Warn("could not persist session")
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear removes the credential from memory and durable storage.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := s.p.Delete(Key); err != nil {
		log.WithError(err).Warn("could not remove persisted session")
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

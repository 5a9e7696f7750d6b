package session_test

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"realtodo/internal/session"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *session.RedisStore) {
	t.Helper()
	m, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	rs := session.NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: m.Addr()}), "")
	t.Cleanup(func() {
		rs.Close()
		m.Close()
	})
	return m, rs
}

func TestRedisStore_WriteThrough(t *testing.T) {
	m, rs := setupRedis(t)
	s := session.Open(rs)

	if err := s.Set("T1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := m.Get("realtodo:token")
	if err != nil || got != "T1" {
		t.Errorf("expected realtodo:token=T1, got %q (%v)", got, err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if m.Exists("realtodo:token") {
		t.Error("expected key to be deleted")
	}
}

func TestRedisStore_Restore(t *testing.T) {
	m, rs := setupRedis(t)
	m.Set("realtodo:token", "T9")

	s := session.Open(rs)
	if s.Token() != "T9" {
		t.Errorf("expected T9, got %q", s.Token())
	}
}

func TestRedisStore_Unreachable(t *testing.T) {
	m, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	addr := m.Addr()
	m.Close()
	rs := session.NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1}), "")
	defer rs.Close()

	s := session.Open(rs)
	if s.Authenticated() {
		t.Error("expected no session when redis is unreachable")
	}
	if err := s.Set("T1"); err == nil {
		t.Error("expected persist error")
	}
	if s.Token() != "T1" {
		t.Error("expected in-memory token despite persist error")
	}
}

package app

import "realtodo/internal/service"

// AuthMode selects which auth call the form submits to.
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
)

func (m AuthMode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// ParseAuthMode parses "login" or "register".
func ParseAuthMode(s string) (AuthMode, bool) {
	switch s {
	case "login":
		return ModeLogin, true
	case "register":
		return ModeRegister, true
	}
	return ModeLogin, false
}

// Form holds pending input. It is never persisted.
type Form struct {
	Mode     AuthMode
	Email    string
	Password string
	NewTitle string
}

// Snapshot is a render-ready copy of the controller state.
// Authenticated is derived from the session, never stored.
type Snapshot struct {
	Form
	Status        string
	Authenticated bool
	Tasks         []service.Task
}

// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"realtodo/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, blank title, unknown id).
	UserError = 1

	// AuthError indicates a missing, rejected or expired credential.
	AuthError = 2

	// BackendError indicates an API, network or storage error.
	BackendError = 3
)

// ForError maps an API error to an exit code: 401/403 are auth errors,
// other 4xx are the user's, everything else is the backend's.
func ForError(err error) int {
	switch {
	case err == nil:
		return Success
	case service.IsUnauthorized(err):
		return AuthError
	case errors.Is(err, service.ErrNetwork):
		return BackendError
	}
	if s := service.StatusOf(err); s >= 400 && s < 500 {
		return UserError
	}
	return BackendError
}

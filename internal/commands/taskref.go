package commands

import (
	"errors"
	"fmt"
	"strings"

	"realtodo/internal/service"
)

// ErrTaskRefRequired indicates no task id was provided.
var ErrTaskRefRequired = errors.New("task id required")

// ParseTaskRef parses the single task id argument of toggle and rm.
// The id is the server's, as shown by list; a leading '#' is accepted.
func ParseTaskRef(args []string) (service.TaskID, error) {
	if len(args) == 0 {
		return "", ErrTaskRefRequired
	}
	if len(args) > 1 {
		return "", fmt.Errorf("too many arguments: %s", strings.Join(args[1:], " "))
	}
	ref := strings.TrimPrefix(strings.TrimSpace(args[0]), "#")
	if ref == "" || strings.ContainsAny(ref, " \t/?#") {
		return "", fmt.Errorf("invalid task id: %s", args[0])
	}
	return service.TaskID(ref), nil
}

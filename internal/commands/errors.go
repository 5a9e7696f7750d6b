package commands

import (
	"fmt"
	"io"

	"realtodo/internal/exitcode"
)

// reportError prints err to errOut and returns its exit code.
func reportError(errOut io.Writer, err error) int {
	code := exitcode.ForError(err)
	switch code {
	case exitcode.AuthError:
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
	case exitcode.BackendError:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return code
}

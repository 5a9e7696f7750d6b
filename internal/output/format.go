// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"realtodo/internal/service"
	"realtodo/internal/session"
)

const (
	checked   = "[x]"
	unchecked = "[ ]"
)

// FormatTask formats a task line for the list.
// Format: "{ID:>4}  [x] {TITLE}\n"; the box is "[ ]" for open tasks.
func FormatTask(w io.Writer, task service.Task) {
	box := unchecked
	if task.Done {
		box = checked
	}
	fmt.Fprintf(w, "%4s  %s %s\n", task.ID, box, normalizeTitle(task.Title))
}

// FormatTasks writes every task in order, or "(no tasks)" for an empty list.
func FormatTasks(w io.Writer, tasks []service.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "(no tasks)")
		return
	}
	for _, t := range tasks {
		FormatTask(w, t)
	}
}

// FormatClaims prints the decoded credential for whoami.
func FormatClaims(w io.Writer, c session.Claims, now time.Time) {
	fmt.Fprintf(w, "email:   %s\n", orDash(c.Email))
	fmt.Fprintf(w, "subject: %s\n", orDash(c.Subject))
	switch {
	case c.ExpiresAt.IsZero():
		fmt.Fprintln(w, "expires: never")
	case c.Expired(now):
		fmt.Fprintf(w, "expires: %s (expired)\n", c.ExpiresAt.UTC().Format(time.RFC3339))
	default:
		fmt.Fprintf(w, "expires: %s\n", c.ExpiresAt.UTC().Format(time.RFC3339))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

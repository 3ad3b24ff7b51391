// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/service"
)

const (
	// MarkCompleted prefixes the title of a completed task.
	MarkCompleted = "[x]"

	// MarkOpen prefixes the title of a task that is not completed.
	MarkOpen = "[ ]"

	// EmptyList is printed when there are no tasks to show.
	EmptyList = "no tasks found"

	// Separator frames the confirmation prompt.
	Separator = "------------"
)

// FormatTask formats a task row.
// Format: "{N:>4}  {MARK} {TITLE}\n" (4-wide right-aligned number, two spaces, marker, title)
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Marker(task), normalizeTitle(task.Title))
}

// FormatConfirm formats the confirmation prompt for marking a task completed.
func FormatConfirm(w io.Writer, task service.Task) {
	fmt.Fprintln(w, Separator)
	if strings.TrimSpace(task.Title) == "" {
		fmt.Fprintf(w, "Mark task #%s as completed?\n", task.ID)
	} else {
		fmt.Fprintf(w, "Mark %q as completed?\n", normalizeTitle(task.Title))
	}
	fmt.Fprintln(w, "  y = yes, n = no, Enter = dismiss")
	fmt.Fprintln(w, Separator)
}

// Marker returns the completion marker for a task.
func Marker(task service.Task) string {
	if task.Completed {
		return MarkCompleted
	}
	return MarkOpen
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

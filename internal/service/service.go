// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Gateway defines the interface for task backend operations.
// All HTTP calls to the task service go through this interface.
// None of the mutations return the changed task; callers re-list to observe
// the effect.
type Gateway interface {
	// ListTasks returns all tasks in server order (no client-side sorting).
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a new, not yet completed task.
	CreateTask(ctx context.Context, title string) error

	// SetTaskCompletion sets the completion flag of a task.
	SetTaskCompletion(ctx context.Context, id TaskID, completed bool) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id TaskID) error
}

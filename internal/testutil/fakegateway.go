// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"taskboard/internal/service"
)

// ErrNotFound is returned when a task id is unknown.
var ErrNotFound = errors.New("not found")

// Call records one gateway invocation.
type Call struct {
	Op        string // "list", "create", "update", "delete"
	ID        service.TaskID
	Title     string
	Completed bool
}

// FakeGateway is an in-memory implementation of service.Gateway for testing.
type FakeGateway struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int
	calls  []Call

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewFakeGateway creates a FakeGateway holding tasks, in order.
func NewFakeGateway(tasks ...service.Task) *FakeGateway {
	f := &FakeGateway{nextID: 1}
	for _, t := range tasks {
		f.tasks = append(f.tasks, t)
		if n, err := strconv.Atoi(t.ID.String()); err == nil && n >= f.nextID {
			f.nextID = n + 1
		}
	}
	return f
}

// AddTask appends a task and returns its id.
func (f *FakeGateway) AddTask(title string, completed bool) service.TaskID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.allocID()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, Completed: completed})
	return id
}

// Tasks returns a copy of the stored tasks.
func (f *FakeGateway) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task(nil), f.tasks...)
}

// Calls returns every recorded invocation in order.
func (f *FakeGateway) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Ops returns the operation names of the recorded invocations.
func (f *FakeGateway) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, len(f.calls))
	for i, c := range f.calls {
		ops[i] = c.Op
	}
	return ops
}

// ListTasks implements service.Gateway.
func (f *FakeGateway) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "list"})
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]service.Task{}, f.tasks...), nil
}

// CreateTask implements service.Gateway.
func (f *FakeGateway) CreateTask(ctx context.Context, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "create", Title: title})
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.tasks = append(f.tasks, service.Task{ID: f.allocID(), Title: title})
	return nil
}

// SetTaskCompletion implements service.Gateway.
func (f *FakeGateway) SetTaskCompletion(ctx context.Context, id service.TaskID, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "update", ID: id, Completed: completed})
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Completed = completed
			return nil
		}
	}
	return ErrNotFound
}

// DeleteTask implements service.Gateway.
func (f *FakeGateway) DeleteTask(ctx context.Context, id service.TaskID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "delete", ID: id})
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *FakeGateway) allocID() service.TaskID {
	id := service.TaskID(strconv.Itoa(f.nextID))
	f.nextID++
	return id
}

package view

import (
	"context"
	"errors"
	"sync"

	"taskboard/internal/service"
)

// ErrConfirmPending is returned by Ask while another confirmation is open.
// The pending confirmation is left untouched.
var ErrConfirmPending = errors.New("confirmation already pending")

// State is a step of the confirm workflow.
type State int

const (
	// Idle means no confirmation is visible.
	Idle State = iota
	// AwaitingConfirmation means the dialog is visible and unanswered.
	AwaitingConfirmation
	// Confirmed means the user accepted.
	Confirmed
	// Cancelled means the user declined or dismissed the dialog.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Surface presents a confirmation to the user.
//
// Show may resolve c before returning (a blocking prompt) or hand it to
// another goroutine that resolves it later. Hide is called once the
// confirmation is resolved.
type Surface interface {
	Show(c *Confirmation)
	Hide()
}

// Confirmation is a single confirm request. It starts out awaiting an answer
// and is resolved exactly once; later events are ignored.
type Confirmation struct {
	task service.Task

	mu    sync.Mutex
	state State
	done  chan struct{}
}

func newConfirmation(task service.Task) *Confirmation {
	return &Confirmation{
		task:  task,
		state: AwaitingConfirmation,
		done:  make(chan struct{}),
	}
}

// Task returns the task the confirmation is about.
func (c *Confirmation) Task() service.Task { return c.task }

// State returns the current state.
func (c *Confirmation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done is closed when the confirmation is resolved.
func (c *Confirmation) Done() <-chan struct{} { return c.done }

// Confirm resolves the confirmation as accepted.
// It reports whether this call resolved it.
func (c *Confirmation) Confirm() bool { return c.resolve(Confirmed) }

// Cancel resolves the confirmation as declined.
// It reports whether this call resolved it.
func (c *Confirmation) Cancel() bool { return c.resolve(Cancelled) }

// Dismiss resolves the confirmation as declined, the same way Cancel does.
// It covers closing the dialog without answering (clicking outside it,
// an empty answer, an aborted prompt).
func (c *Confirmation) Dismiss() bool { return c.resolve(Cancelled) }

func (c *Confirmation) resolve(s State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != AwaitingConfirmation {
		return false
	}
	c.state = s
	close(c.done)
	return true
}

// wait blocks until the confirmation is resolved or ctx ends.
// An ended context resolves the confirmation as cancelled.
func (c *Confirmation) wait(ctx context.Context) (bool, error) {
	select {
	case <-c.done:
		return c.State() == Confirmed, nil
	case <-ctx.Done():
		c.Cancel()
		// A resolution may have raced the context; honour whichever won.
		if c.State() == Confirmed {
			return true, nil
		}
		return false, ctx.Err()
	}
}

// Modal owns the single confirmation dialog.
type Modal struct {
	surface Surface

	mu     sync.Mutex
	active *Confirmation
}

// NewModal creates a modal presented on surface.
func NewModal(surface Surface) *Modal {
	return &Modal{surface: surface}
}

// State returns Idle or AwaitingConfirmation.
func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return Idle
	}
	return AwaitingConfirmation
}

// Pending returns the open confirmation, or nil.
func (m *Modal) Pending() *Confirmation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Ask shows a confirmation about task and suspends until it is resolved.
// It returns true if the user confirmed and false if they cancelled or
// dismissed the dialog. While another confirmation is open it returns
// ErrConfirmPending.
func (m *Modal) Ask(ctx context.Context, task service.Task) (bool, error) {
	m.mu.Lock()
	if m.active != nil {
		m.mu.Unlock()
		return false, ErrConfirmPending
	}
	c := newConfirmation(task)
	m.active = c
	m.mu.Unlock()

	defer func() {
		m.surface.Hide()
		m.mu.Lock()
		m.active = nil
		m.mu.Unlock()
	}()

	m.surface.Show(c)
	return c.wait(ctx)
}

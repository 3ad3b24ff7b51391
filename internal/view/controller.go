// Package view owns the task list rendering cycle and the user interaction
// wired to it: refresh, create, edit (behind a confirmation) and delete.
//
// The controller never keeps tasks between renders. Every mutation is
// followed by a fresh list from the gateway and a full replacement of the
// document's rows. Gateway failures are logged and recorded, never returned.
package view

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"taskboard/internal/service"
)

// Controller wires a Gateway, a Document and a Modal together.
type Controller struct {
	gateway service.Gateway
	doc     Document
	modal   *Modal
	logger  *slog.Logger

	mu      sync.Mutex
	lastErr error
}

// NewController creates a controller. Nothing is fetched until Init.
func NewController(gateway service.Gateway, doc Document, modal *Modal, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		gateway: gateway,
		doc:     doc,
		modal:   modal,
		logger:  logger,
	}
}

// Init performs the first render.
func (c *Controller) Init(ctx context.Context) {
	c.refresh(ctx, c.actionLogger("init"))
}

// Refresh re-fetches all tasks and replaces the document's rows. On failure
// the current rows stay as they are.
func (c *Controller) Refresh(ctx context.Context) {
	c.refresh(ctx, c.actionLogger("refresh"))
}

// SubmitNewTask creates a task titled title and refreshes. An empty title is
// ignored; the title is otherwise sent as given, without trimming.
func (c *Controller) SubmitNewTask(ctx context.Context, title string) {
	if title == "" {
		return
	}
	log := c.actionLogger("create")

	if err := c.gateway.CreateTask(ctx, title); err != nil {
		c.fail(log, "create task failed", err)
	} else {
		log.Debug("task created", "title", title)
	}
	c.refresh(ctx, log)
}

// Edit asks for confirmation and sets the task's completion flag to the
// answer: confirming marks it completed, cancelling or dismissing marks it
// not completed. The list is refreshed either way.
//
// If another confirmation is already open the edit is dropped without any
// request.
func (c *Controller) Edit(ctx context.Context, task service.Task) {
	log := c.actionLogger("edit").With("task_id", task.ID.String())

	completed, err := c.modal.Ask(ctx, task)
	if err != nil {
		if errors.Is(err, ErrConfirmPending) {
			log.Warn("edit ignored", "reason", err)
			return
		}
		c.fail(log, "confirmation aborted", err)
		return
	}
	log.Debug("confirmation resolved", "completed", completed)

	if err := c.gateway.SetTaskCompletion(ctx, task.ID, completed); err != nil {
		c.fail(log, "update task failed", err)
	} else {
		log.Debug("task updated", "completed", completed)
	}
	c.refresh(ctx, log)
}

// Delete deletes the task and refreshes.
func (c *Controller) Delete(ctx context.Context, id service.TaskID) {
	log := c.actionLogger("delete").With("task_id", id.String())

	if err := c.gateway.DeleteTask(ctx, id); err != nil {
		c.fail(log, "delete task failed", err)
	} else {
		log.Debug("task deleted")
	}
	c.refresh(ctx, log)
}

// LastError returns the most recent recorded failure, or nil.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) refresh(ctx context.Context, log *slog.Logger) {
	tasks, err := c.gateway.ListTasks(ctx)
	if err != nil {
		c.fail(log, "list tasks failed", err)
		return
	}

	rows := make([]Row, len(tasks))
	for i, task := range tasks {
		rows[i] = Row{
			Task:   task,
			Edit:   func(ctx context.Context) { c.Edit(ctx, task) },
			Delete: func(ctx context.Context) { c.Delete(ctx, task.ID) },
		}
	}
	c.doc.ReplaceRows(rows)
	log.Debug("rendered", "rows", len(rows))
}

func (c *Controller) fail(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)

	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

func (c *Controller) actionLogger(action string) *slog.Logger {
	return c.logger.With("action", action, "correlation_id", uuid.NewString())
}

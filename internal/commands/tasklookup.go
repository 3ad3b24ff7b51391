package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/view"
)

// findTask resolves ref to a task. Row references are resolved against a
// fresh list, numbered the way list prints it.
func findTask(ctx context.Context, gw service.Gateway, ref view.TaskRef) (service.Task, error) {
	if ref.ByID {
		return service.Task{ID: ref.ID}, nil
	}

	tasks, err := gw.ListTasks(ctx)
	if err != nil {
		return service.Task{}, err
	}
	if ref.Row < 1 || ref.Row > len(tasks) {
		return service.Task{}, fmt.Errorf("%w: %d", view.ErrRowOutOfRange, ref.Row)
	}
	return tasks[ref.Row-1], nil
}

// resolveTaskArg parses and resolves the task reference in args, reporting
// failures on errOut. The returned code is exitcode.Success when task is usable.
func resolveTaskArg(ctx context.Context, gw service.Gateway, args []string, errOut io.Writer) (service.Task, int) {
	ref, err := view.ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}

	task, err := findTask(ctx, gw, ref)
	if err != nil {
		if errors.Is(err, view.ErrRowOutOfRange) {
			fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.Row)
			return service.Task{}, exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return service.Task{}, exitcode.BackendError
	}
	return task, exitcode.Success
}

// newController builds a controller rendering to out.
func newController(env *Env, out io.Writer, surface view.Surface) *view.Controller {
	doc := view.NewTextDocument(out, env.Config.Quiet)
	return view.NewController(env.Gateway, doc, view.NewModal(surface), env.Logger)
}

// backendResult maps the controller's recorded failure to an exit code.
func backendResult(ctrl *view.Controller, errOut io.Writer) int {
	if err := ctrl.LastError(); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

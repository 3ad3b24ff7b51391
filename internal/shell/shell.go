// Package shell is the interactive front end: a line-edited command loop
// that drives a view.Controller and answers its confirmations.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"taskboard/internal/view"
)

// Prompt is the main command prompt.
const Prompt = "taskboard> "

// LineReader reads one line of input after showing prompt.
// Implementations return io.EOF or liner.ErrPromptAborted when the user
// closes the input or presses Ctrl-C.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// historian is implemented by readers that keep command history.
type historian interface {
	AppendHistory(line string)
}

// commandNames is used for tab completion.
var commandNames = []string{
	"add", "new",
	"edit", "done",
	"rm", "del", "delete",
	"ls", "list", "refresh",
	"clear", "cls",
	"help", "exit", "quit", "q",
}

// Shell is the interactive command loop.
type Shell struct {
	ctrl *view.Controller
	doc  *view.TextDocument
	in   LineReader
	out  io.Writer
}

// New creates a shell. doc must be the document ctrl renders into.
func New(ctrl *view.Controller, doc *view.TextDocument, in LineReader, out io.Writer) *Shell {
	return &Shell{ctrl: ctrl, doc: doc, in: in, out: out}
}

// Run renders the list and then reads commands until exit, EOF, Ctrl-C or
// ctx ends.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "taskboard - type 'help' for available commands.")
	s.ctrl.Init(ctx)

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.in.Prompt(Prompt)
		if err != nil {
			if isAbort(err) {
				fmt.Fprintln(s.out, "Bye!")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if h, ok := s.in.(historian); ok {
			h.AppendHistory(line)
		}

		if quit := s.Exec(ctx, line); quit {
			return nil
		}
	}
}

// Exec runs a single command line and reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimLeft(rest, " \t")

	switch strings.ToLower(name) {
	case "exit", "quit", "q":
		fmt.Fprintln(s.out, "Bye!")
		return true

	case "help", "?":
		fmt.Fprint(s.out, helpText)

	case "ls", "list", "refresh":
		s.ctrl.Refresh(ctx)

	case "add", "new":
		s.ctrl.SubmitNewTask(ctx, rest)

	case "edit", "done":
		s.withRow(ctx, rest, func(row view.Row) { row.Edit(ctx) })

	case "rm", "del", "delete":
		s.withRow(ctx, rest, func(row view.Row) { row.Delete(ctx) })

	case "clear", "cls":
		fmt.Fprint(s.out, "\033[H\033[2J")

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", name)
	}
	return false
}

// withRow resolves a task reference and runs fn on the matching row.
// Id references to tasks that are not rendered get controls bound directly
// to the controller.
func (s *Shell) withRow(ctx context.Context, args string, fn func(view.Row)) {
	ref, err := view.ParseTaskRef(strings.Fields(args))
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}

	if !ref.ByID {
		row, ok := s.doc.Row(ref.Row)
		if !ok {
			fmt.Fprintf(s.out, "error: task number out of range: %d\n", ref.Row)
			return
		}
		fn(row)
		return
	}

	task, err := s.doc.Lookup(ref)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fn(view.Row{
		Task:   task,
		Edit:   func(ctx context.Context) { s.ctrl.Edit(ctx, task) },
		Delete: func(ctx context.Context) { s.ctrl.Delete(ctx, task.ID) },
	})
}

// complete provides tab completion for command names.
func complete(line string) []string {
	var completions []string

	lower := strings.ToLower(line)
	for _, name := range commandNames {
		if strings.HasPrefix(name, lower) {
			completions = append(completions, name)
		}
	}
	return completions
}

func isAbort(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted)
}

const helpText = `Commands:
  ls | list | refresh        Fetch and show all tasks
  add <title>                Create a task
  edit <ref> | done <ref>    Confirm to mark completed, decline to mark open
  rm <ref> | delete <ref>    Delete a task
  clear                      Clear the screen
  help                       Show this help
  exit | quit | q            Exit

<ref> is a row number (3) or a task id (#17).
`

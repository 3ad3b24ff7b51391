package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"taskboard/internal/service"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrRowOutOfRange indicates a row number that is not currently rendered.
var ErrRowOutOfRange = errors.New("row out of range")

// TaskRef is a parsed task reference.
type TaskRef struct {
	Row  int            // 1-based row number; 0 when ByID
	ID   service.TaskID // task id; empty unless ByID
	ByID bool           // true for "#<id>" references
}

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → ErrTaskRefRequired
// 2. All digits (e.g. 3) → row number in the current rendering
// 3. "#" followed by a non-empty id (e.g. #17) → task id
// 4. More than one arg → error: unexpected argument
// 5. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := args[0]

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{Row: num}, nil
	}

	if id, ok := strings.CutPrefix(ref, "#"); ok && id != "" && !strings.ContainsAny(id, " \t/") {
		return TaskRef{ID: service.TaskID(id), ByID: true}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
}

// Lookup resolves ref against the current rows. Row references must point
// at a rendered row. Id references fall back to a bare task carrying only
// the id when the task is not rendered.
func (d *TextDocument) Lookup(ref TaskRef) (service.Task, error) {
	if !ref.ByID {
		row, ok := d.Row(ref.Row)
		if !ok {
			return service.Task{}, fmt.Errorf("%w: %d", ErrRowOutOfRange, ref.Row)
		}
		return row.Task, nil
	}

	for _, row := range d.Rows() {
		if row.Task.ID == ref.ID {
			return row.Task, nil
		}
	}
	return service.Task{ID: ref.ID}, nil
}

// isAllDigits checks if a string consists entirely of ASCII digits.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package output_test

import (
	"bytes"
	"testing"

	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTask(&buf, 1, service.Task{ID: "3", Title: "Buy milk"})
	output.FormatTask(&buf, 2, service.Task{ID: "1", Title: "Walk dog", Completed: true})
	output.FormatTask(&buf, 10, service.Task{ID: "7", Title: "line one\nline two"})
	output.FormatTask(&buf, 11, service.Task{ID: "8", Title: "   "})

	testutil.Golden(t, "tasks", buf.Bytes())
}

func TestFormatConfirm(t *testing.T) {
	var buf bytes.Buffer
	output.FormatConfirm(&buf, service.Task{ID: "5", Title: "Pay rent"})
	output.FormatConfirm(&buf, service.Task{ID: "42"})

	testutil.Golden(t, "confirm", buf.Bytes())
}

func TestMarker(t *testing.T) {
	if got := output.Marker(service.Task{Completed: true}); got != "[x]" {
		t.Errorf("expected [x], got %q", got)
	}
	if got := output.Marker(service.Task{}); got != "[ ]" {
		t.Errorf("expected [ ], got %q", got)
	}
}

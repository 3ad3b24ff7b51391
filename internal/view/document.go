package view

import (
	"context"
	"fmt"
	"io"
	"sync"

	"taskboard/internal/output"
	"taskboard/internal/service"
)

// Control is an action bound to a rendered row.
type Control func(ctx context.Context)

// Row is one rendered task with its controls.
type Row struct {
	Task   service.Task
	Edit   Control
	Delete Control
}

// Document is the rendering substrate the controller draws into.
type Document interface {
	// ReplaceRows discards everything currently shown and shows rows in order.
	ReplaceRows(rows []Row)
}

// TextDocument renders rows as a numbered list on a writer and keeps them
// addressable by their 1-based position.
type TextDocument struct {
	out   io.Writer
	quiet bool

	mu      sync.Mutex
	rows    []Row
	renders int
}

// NewTextDocument creates a document writing to out. When quiet is set an
// empty list prints nothing.
func NewTextDocument(out io.Writer, quiet bool) *TextDocument {
	return &TextDocument{out: out, quiet: quiet}
}

// ReplaceRows implements Document.
func (d *TextDocument) ReplaceRows(rows []Row) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rows = append([]Row(nil), rows...)
	d.renders++

	if len(d.rows) == 0 {
		if !d.quiet {
			fmt.Fprintln(d.out, output.EmptyList)
		}
		return
	}
	for i, row := range d.rows {
		output.FormatTask(d.out, i+1, row.Task)
	}
}

// Rows returns a copy of the current rows.
func (d *TextDocument) Rows() []Row {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Row(nil), d.rows...)
}

// Row returns the row at 1-based position n.
func (d *TextDocument) Row(n int) (Row, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n < 1 || n > len(d.rows) {
		return Row{}, false
	}
	return d.rows[n-1], true
}

// Renders returns how many times the rows were replaced.
func (d *TextDocument) Renders() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renders
}

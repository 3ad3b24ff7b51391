package shell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
)

// Liner is a LineReader backed by the terminal, with history and completion.
type Liner struct {
	state       *liner.State
	historyPath string
}

// NewLiner takes over the terminal. History is read from historyPath when
// it is non-empty. Close must be called to restore the terminal.
func NewLiner(historyPath string) *Liner {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(complete)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			f.Close()
		}
	}

	return &Liner{state: state, historyPath: historyPath}
}

// Prompt implements LineReader.
func (l *Liner) Prompt(prompt string) (string, error) {
	return l.state.Prompt(prompt)
}

// AppendHistory records a command line.
func (l *Liner) AppendHistory(line string) {
	l.state.AppendHistory(line)
}

// Close saves history and restores the terminal.
func (l *Liner) Close() error {
	saveErr := l.saveHistory()
	if err := l.state.Close(); err != nil {
		return err
	}
	return saveErr
}

// saveHistory persists command history to disk, replacing the file atomically.
func (l *Liner) saveHistory() error {
	if l.historyPath == "" {
		return nil
	}

	var buf bytes.Buffer
	if _, err := l.state.WriteHistory(&buf); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.historyPath), 0700); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := atomic.WriteFile(l.historyPath, &buf); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

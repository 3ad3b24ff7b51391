package testutil

import (
	"io"
	"sync"
)

// ScriptedInput answers prompts from a fixed list of lines, then returns io.EOF.
type ScriptedInput struct {
	mu      sync.Mutex
	lines   []string
	prompts []string
	history []string
}

// NewScriptedInput creates an input that returns lines in order.
func NewScriptedInput(lines ...string) *ScriptedInput {
	return &ScriptedInput{lines: lines}
}

// Prompt returns the next scripted line.
func (s *ScriptedInput) Prompt(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// AppendHistory records line the way a line editor would.
func (s *ScriptedInput) AppendHistory(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, line)
}

// Prompts returns every prompt shown, in order.
func (s *ScriptedInput) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// History returns the lines added to history.
func (s *ScriptedInput) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

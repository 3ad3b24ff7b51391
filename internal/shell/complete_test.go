package shell

import (
	"slices"
	"testing"
)

func TestComplete(t *testing.T) {
	tests := map[string][]string{
		"d":   {"done", "del", "delete"},
		"ED":  {"edit"},
		"zzz": nil,
	}
	for line, want := range tests {
		if got := complete(line); !slices.Equal(got, want) {
			t.Errorf("complete(%q) = %v, want %v", line, got, want)
		}
	}
}

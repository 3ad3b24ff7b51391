// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TaskID is the identifier assigned to a task by the remote service.
// It is opaque to the client and never generated locally.
type TaskID string

// String returns the textual form of the id.
func (id TaskID) String() string { return string(id) }

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id must be a number or string: %s", data)
	}
	*id = TaskID(n.String())
	return nil
}

// Task represents a single task item.
type Task struct {
	ID        TaskID `json:"id" validate:"required"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

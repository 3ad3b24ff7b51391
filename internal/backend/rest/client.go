// Package rest implements the service.Gateway interface against a REST task
// service exposing a /todos collection.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-cleanhttp"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

const (
	// ResourcePath is the task collection path below the base URL.
	ResourcePath = "todos"

	// DefaultTimeout is used when no positive timeout is configured.
	DefaultTimeout = 5 * time.Second
)

// Client implements service.Gateway over HTTP.
type Client struct {
	http       *http.Client
	collection string
	timeout    time.Duration
	logger     *slog.Logger
	validate   *validator.Validate
}

// New creates a client for the base URL and timeout in cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	return NewWithHTTPClient(cfg.BaseURL, cleanhttp.DefaultPooledClient(), cfg.Timeout, logger)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host required", baseURL)
	}
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		http:       httpClient,
		collection: u.JoinPath(ResourcePath).String(),
		timeout:    timeout,
		logger:     logger,
		validate:   validator.New(),
	}, nil
}

// CollectionURL returns the URL of the task collection.
func (c *Client) CollectionURL() string {
	return c.collection
}

// ListTasks returns all tasks in server order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, "list", http.MethodGet, c.collection, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		return nil, &DecodeError{Op: "list", Err: errors.New("expected a JSON array of tasks, got null")}
	}

	for i := range tasks {
		if err := c.validate.Struct(&tasks[i]); err != nil {
			return nil, &DecodeError{Op: "list", Err: fmt.Errorf("task at index %d: %w", i, err)}
		}
	}
	return tasks, nil
}

// CreateTask creates a new task that is not completed.
func (c *Client) CreateTask(ctx context.Context, title string) error {
	body := struct {
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	}{Title: title}

	return c.do(ctx, "create", http.MethodPost, c.collection, body, nil)
}

// SetTaskCompletion sets the completion flag of a task.
func (c *Client) SetTaskCompletion(ctx context.Context, id service.TaskID, completed bool) error {
	body := struct {
		Completed bool `json:"completed"`
	}{Completed: completed}

	return c.do(ctx, "update", http.MethodPut, c.itemURL(id), body, nil)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id service.TaskID) error {
	return c.do(ctx, "delete", http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id service.TaskID) string {
	return c.collection + "/" + url.PathEscape(id.String())
}

// do sends one request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, method, target string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &TransportError{Op: op, Method: method, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "method", method, "url", target, "error", err)
		return &TransportError{Op: op, Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		"op", op,
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(op, method, target, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Method: method, URL: target, Err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

func statusError(op, method, target string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &HTTPStatusError{
		Op:         op,
		Method:     method,
		URL:        target,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

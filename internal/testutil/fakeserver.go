package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// ServerTask is a task as the fake service stores and serves it.
type ServerTask struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Request records one request received by the fake service.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

// FakeServer is an in-process task service implementing the /todos contract.
type FakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	tasks    []ServerTask
	nextID   int64
	requests []Request
	failures map[string]int
	listBody *string
}

// NewFakeServer starts a fake service that is closed when the test ends.
func NewFakeServer(t testing.TB, tasks ...ServerTask) *FakeServer {
	t.Helper()

	s := &FakeServer{
		tasks:    append([]ServerTask(nil), tasks...),
		nextID:   1,
		failures: make(map[string]int),
	}
	for _, task := range tasks {
		if task.ID >= s.nextID {
			s.nextID = task.ID + 1
		}
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/todos", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Fail makes every request matching method and route pattern ("/todos" or
// "/todos/{id}") answer with status.
func (s *FakeServer) Fail(method, pattern string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+pattern] = status
}

// SetListBody makes list requests answer 200 with body verbatim.
func (s *FakeServer) SetListBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listBody = &body
}

// Tasks returns a copy of the stored tasks.
func (s *FakeServer) Tasks() []ServerTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ServerTask(nil), s.tasks...)
}

// Requests returns every request received, in order.
func (s *FakeServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *FakeServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(body),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// failed writes an injected failure, if any, and reports whether it did.
func (s *FakeServer) failed(w http.ResponseWriter, method, pattern string) bool {
	s.mu.Lock()
	status, ok := s.failures[method+" "+pattern]
	s.mu.Unlock()
	if !ok {
		return false
	}
	http.Error(w, http.StatusText(status), status)
	return true
}

func (s *FakeServer) handleList(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, http.MethodGet, "/todos") {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if s.listBody != nil {
		_, _ = io.WriteString(w, *s.listBody)
		return
	}
	tasks := s.tasks
	if tasks == nil {
		tasks = []ServerTask{}
	}
	_ = json.NewEncoder(w).Encode(tasks)
}

func (s *FakeServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, http.MethodPost, "/todos") {
		return
	}

	var in struct {
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, ServerTask{ID: s.nextID, Title: in.Title, Completed: in.Completed})
	s.nextID++
	s.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
}

func (s *FakeServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, http.MethodPut, "/todos/{id}") {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var in struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = in.Completed
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *FakeServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, http.MethodDelete, "/todos/{id}") {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	http.NotFound(w, r)
}

package testutil

import (
	"sync"

	"taskboard/internal/view"
)

// FakeSurface records the confirmations shown to it. Each shown confirmation
// is also sent on Shown so a test can resolve it from its own goroutine.
type FakeSurface struct {
	// OnShow, if set, is called synchronously from Show.
	OnShow func(c *view.Confirmation)

	// Shown receives every confirmation passed to Show.
	Shown chan *view.Confirmation

	mu    sync.Mutex
	shows int
	hides int
}

// NewFakeSurface creates a FakeSurface with a buffered Shown channel.
func NewFakeSurface() *FakeSurface {
	return &FakeSurface{Shown: make(chan *view.Confirmation, 16)}
}

// Show implements view.Surface.
func (s *FakeSurface) Show(c *view.Confirmation) {
	s.mu.Lock()
	s.shows++
	s.mu.Unlock()

	s.Shown <- c
	if s.OnShow != nil {
		s.OnShow(c)
	}
}

// Hide implements view.Surface.
func (s *FakeSurface) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hides++
}

// Counts returns how many times Show and Hide were called.
func (s *FakeSurface) Counts() (shows, hides int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shows, s.hides
}

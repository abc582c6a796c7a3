package httpserver

import (
	"sync"

	"swapcore/internal/application"
)

// RingSink keeps the most recent notification payloads in memory so the API
// can expose them for polling. Oldest entries are dropped at capacity.
type RingSink struct {
	mu      sync.Mutex
	entries []application.NotificationPayload
	cap     int
}

func NewRingSink(capacity int) *RingSink {
	if capacity <= 0 {
		capacity = 100
	}
	return &RingSink{cap: capacity}
}

func (s *RingSink) Notify(p application.NotificationPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, p)
	if len(s.entries) > s.cap {
		s.entries = s.entries[len(s.entries)-s.cap:]
	}
}

// List returns notifications newest-first.
func (s *RingSink) List() []application.NotificationPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]application.NotificationPayload, len(s.entries))
	for i, p := range s.entries {
		out[len(s.entries)-1-i] = p
	}
	return out
}

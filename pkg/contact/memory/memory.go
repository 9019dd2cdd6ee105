// Package memory implements an in-memory contact sink.
package memory

import (
	"context"
	"sync"
	"time"

	"cupstory/pkg/contact"
)

// Sink keeps messages in submission order.
type Sink struct {
	mu       sync.Mutex
	messages []contact.Message
}

// New creates an empty sink.
func New() *Sink {
	return &Sink{}
}

// Append stores m and returns it with id and date set.
func (s *Sink) Append(ctx context.Context, m contact.Message) (contact.Message, error) {
	m = contact.Stamp(m, time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	return m, nil
}

// Messages returns a copy of everything appended so far.
func (s *Sink) Messages() []contact.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]contact.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

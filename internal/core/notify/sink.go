// Package notify holds the single transient notification of a session.
package notify

import (
	"sync"
	"time"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Sink keeps at most one notification. A newer notification replaces the current
// one and restarts the expiry timer.
type Sink struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	current *domain.Notification
	timer   *time.Timer
	gen     uint64
}

// NewSink returns a Sink whose notifications expire after ttl.
// A non-positive ttl falls back to DefaultTTL.
func NewSink(ttl time.Duration) *Sink {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Sink{ttl: ttl, now: time.Now}
}

// Notify replaces the visible notification.
func (s *Sink) Notify(message string, severity domain.Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen

	now := s.now()
	s.current = &domain.Notification{
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.timer = time.AfterFunc(s.ttl, func() { s.expire(gen) })
}

// Current returns the visible notification, if any.
func (s *Sink) Current() (domain.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.Notification{}, false
	}
	return *s.current, true
}

// Stop clears the notification and cancels the pending timer.
func (s *Sink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.current = nil
}

// expire clears the notification unless a newer one replaced it after the
// timer for gen was armed.
func (s *Sink) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.current = nil
	s.timer = nil
}

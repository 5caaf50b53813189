// Package memory keeps live sessions in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
	"github.com/ryzetech/lifestyle-api/pkg/metrics"
)

// SessionStore implements ports.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session.Session),
		now:      time.Now,
	}
}

func (s *SessionStore) Add(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.ID()]; ok {
		return fmt.Errorf("add session %s: already exists", sess.ID())
	}
	s.sessions[sess.ID()] = sess
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	return nil
}

// Get returns the session and marks it active.
func (s *SessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	sess.Touch(s.now())
	return sess, nil
}

// Sweep closes and removes every session idle for longer than idle.
func (s *SessionStore) Sweep(_ context.Context, idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	var expired []*session.Session
	for id, sess := range s.sessions {
		if sess.IdleSince().Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
	}
	return len(expired)
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweeper runs SessionStore.Sweep on a cron schedule.
type Sweeper struct {
	cron *cron.Cron
}

// NewSweeper schedules sweeps of sessions idle longer than idle. schedule uses
// the robfig/cron syntax, e.g. "@every 1m".
func NewSweeper(store *SessionStore, schedule string, idle time.Duration, log zerolog.Logger) (*Sweeper, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if n := store.Sweep(context.Background(), idle); n > 0 {
			log.Info().Int("expired", n).Int("active", store.Len()).Msg("idle sessions swept")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("session sweeper: bad schedule %q: %w", schedule, err)
	}
	return &Sweeper{cron: c}, nil
}

func (s *Sweeper) Start() { s.cron.Start() }

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
)

type stubStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newStubStore() *stubStore {
	return &stubStore{sessions: map[string]*session.Session{}}
}

func (s *stubStore) Add(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID()] = sess
	return nil
}

func (s *stubStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubStore) Sweep(context.Context, time.Duration) int { return 0 }

func (s *stubStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *stubStore) closeAll() {
	for _, sess := range s.sessions {
		sess.Close()
	}
}

type stubDispatcher struct {
	reject bool
	jobs   []ports.GenerationJob
}

func (d *stubDispatcher) Enqueue(job ports.GenerationJob) bool {
	if d.reject {
		return false
	}
	d.jobs = append(d.jobs, job)
	return true
}

type stubAuth struct{}

func (stubAuth) Verify(_ context.Context, phone, password string) error {
	if phone != "01412345678" || password != "12345" {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (stubAuth) IssueToken(sessionID string) (string, error) { return "tok-" + sessionID, nil }

func (stubAuth) ParseToken(token string) (string, error) { return token[len("tok-"):], nil }

type stubCache struct {
	values map[string]string
	err    error
}

func (c *stubCache) Get(_ context.Context, id string) (string, bool, error) {
	if c.err != nil {
		return "", false, c.err
	}
	v, ok := c.values[id]
	return v, ok, nil
}

func (c *stubCache) Set(_ context.Context, id, text string) error {
	if c.values == nil {
		c.values = map[string]string{}
	}
	c.values[id] = text
	return nil
}

type stubAuditor struct {
	receipts []domain.Receipt
	err      error
}

func (a *stubAuditor) Record(_ context.Context, r domain.Receipt) error {
	a.receipts = append(a.receipts, r)
	return a.err
}

type stubGenerator struct {
	reply    string
	overview string
	calls    int
}

func (g *stubGenerator) TutorReply(context.Context, string, []domain.ChatMessage) string {
	g.calls++
	return g.reply
}

func (g *stubGenerator) DocumentOverview(context.Context, string, string, []string) string {
	g.calls++
	return g.overview
}

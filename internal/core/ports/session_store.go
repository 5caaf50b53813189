package ports

import (
	"context"
	"time"

	"github.com/ryzetech/lifestyle-api/internal/core/session"
)

// SessionStore keeps the live sessions of this process.
type SessionStore interface {
	Add(ctx context.Context, s *session.Session) error
	// Get returns the session and records activity on it.
	Get(ctx context.Context, id string) (*session.Session, error)
	// Sweep closes and drops sessions idle for longer than idle. It returns how many were removed.
	Sweep(ctx context.Context, idle time.Duration) int
	Len() int
}

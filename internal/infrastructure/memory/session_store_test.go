package memory

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newSession(t *testing.T, id string, now time.Time) *session.Session {
	t.Helper()
	s, err := session.New(id, session.Config{Balances: domain.Balances{Coins: 10}}, now)
	require.NoError(t, err)
	return s
}

func TestSessionStore_AddGet(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	sess := newSession(t, "a", time.Now())
	defer sess.Close()

	require.NoError(t, store.Add(ctx, sess))
	assert.Error(t, store.Add(ctx, sess))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, sess, got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_SweepDropsIdleSessions(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	stale := newSession(t, "stale", now.Add(-time.Hour))
	fresh := newSession(t, "fresh", now.Add(-time.Minute))
	defer fresh.Close()
	require.NoError(t, store.Add(ctx, stale))
	require.NoError(t, store.Add(ctx, fresh))

	assert.Equal(t, 1, store.Sweep(ctx, 30*time.Minute))
	assert.Equal(t, 1, store.Len())
	_, err := store.Get(ctx, "stale")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_GetKeepsSessionAlive(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	sess := newSession(t, "a", now.Add(-time.Hour))
	defer sess.Close()
	require.NoError(t, store.Add(ctx, sess))

	_, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Zero(t, store.Sweep(ctx, 30*time.Minute))
}

func TestNewSweeper(t *testing.T) {
	store := NewSessionStore()

	_, err := NewSweeper(store, "not a schedule", time.Minute, zerolog.Nop())
	assert.Error(t, err)

	sw, err := NewSweeper(store, "@every 1s", time.Minute, zerolog.Nop())
	require.NoError(t, err)
	sw.Start()
	sw.Stop()
}

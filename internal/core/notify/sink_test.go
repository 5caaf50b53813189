package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNotify_ReplacesCurrent(t *testing.T) {
	s := NewSink(time.Minute)
	defer s.Stop()

	s.Notify("first", domain.SeveritySuccess)
	s.Notify("second", domain.SeverityError)

	n, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "second", n.Message)
	assert.Equal(t, domain.SeverityError, n.Severity)
	assert.Equal(t, time.Minute, n.ExpiresAt.Sub(n.CreatedAt))
}

func TestNotify_Expires(t *testing.T) {
	s := NewSink(20 * time.Millisecond)
	defer s.Stop()

	s.Notify("gone soon", domain.SeveritySuccess)
	assert.Eventually(t, func() bool {
		_, ok := s.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNotify_NewerNotificationRestartsTimer(t *testing.T) {
	s := NewSink(100 * time.Millisecond)
	defer s.Stop()

	s.Notify("old", domain.SeveritySuccess)
	time.Sleep(60 * time.Millisecond)
	s.Notify("new", domain.SeveritySuccess)
	time.Sleep(60 * time.Millisecond)

	// The old timer would have fired by now; the new notification must survive it.
	n, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "new", n.Message)
}

func TestExpire_StaleGenerationIsIgnored(t *testing.T) {
	s := NewSink(time.Minute)
	defer s.Stop()

	s.Notify("a", domain.SeveritySuccess)
	stale := s.gen
	s.Notify("b", domain.SeveritySuccess)

	s.expire(stale)
	n, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "b", n.Message)
}

func TestStop_Clears(t *testing.T) {
	s := NewSink(0)
	assert.Equal(t, DefaultTTL, s.ttl)

	s.Notify("a", domain.SeveritySuccess)
	s.Stop()
	_, ok := s.Current()
	assert.False(t, ok)
}

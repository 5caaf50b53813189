package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ryzetech/lifestyle-api/internal/core/ports"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingService struct {
	mu    sync.Mutex
	jobs  []ports.GenerationJob
	block chan struct{}
}

func (s *recordingService) Process(ctx context.Context, job ports.GenerationJob) error {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()
	return nil
}

func (s *recordingService) prompts(sessionID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, j := range s.jobs {
		if j.SessionID == sessionID {
			out = append(out, j.Prompt)
		}
	}
	return out
}

func TestDispatcher_PreservesPerSessionOrder(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	defer func() {
		cancel()
		d.Wait()
	}()

	want := []string{"a", "b", "c", "d", "e"}
	for _, p := range want {
		require.True(t, d.Enqueue(ports.GenerationJob{SessionID: "s1", Prompt: p}))
		require.True(t, d.Enqueue(ports.GenerationJob{SessionID: "s2", Prompt: p}))
	}

	assert.Eventually(t, func() bool {
		return len(svc.prompts("s1")) == len(want) && len(svc.prompts("s2")) == len(want)
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, want, svc.prompts("s1"))
	assert.Equal(t, want, svc.prompts("s2"))
}

func TestDispatcher_EnqueueFailsWhenFull(t *testing.T) {
	svc := &recordingService{block: make(chan struct{})}
	d := NewDispatcher(1, svc, zerolog.Nop())

	// Without started workers nothing drains the buffer.
	for range channelBuffer {
		require.True(t, d.Enqueue(ports.GenerationJob{SessionID: "s"}))
	}
	assert.False(t, d.Enqueue(ports.GenerationJob{SessionID: "s"}))
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	svc := &recordingService{block: make(chan struct{})}
	d := NewDispatcher(2, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	require.True(t, d.Enqueue(ports.GenerationJob{SessionID: "s"}))
	cancel()
	d.Wait()
}

func TestShardIndex_IsStable(t *testing.T) {
	d := NewDispatcher(0, &recordingService{}, zerolog.Nop())
	assert.Len(t, d.workers, defaultWorkers)
	assert.Equal(t, d.shardIndex("session-1"), d.shardIndex("session-1"))
}

package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ryzetech/lifestyle-api/internal/core/ports"
	"github.com/ryzetech/lifestyle-api/pkg/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes generation jobs to a fixed set of workers, sharded by
// session id so that the replies of one session are applied in request order.
type Dispatcher struct {
	workers []chan ports.GenerationJob
	service ports.GenerationService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.GenerationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.GenerationJob, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.GenerationJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// jobs still queued at that point are dropped.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands the job to the worker responsible for its session. It never
// blocks: false means the worker's buffer is full.
func (d *Dispatcher) Enqueue(job ports.GenerationJob) bool {
	idx := d.shardIndex(job.SessionID)
	ch := d.workers[idx]
	select {
	case ch <- job:
		metrics.GenerationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(ch)))
		return true
	default:
		return false
	}
}

// shardIndex maps a session id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.GenerationJob) {
	defer d.wg.Done()
	depth := metrics.GenerationQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-ch:
			depth.Set(float64(len(ch)))
			if err := d.service.Process(ctx, job); err != nil {
				d.log.Error().Err(err).
					Str("session_id", job.SessionID).
					Str("kind", string(job.Kind)).
					Int("worker_id", id).
					Msg("generation job failed")
			}
		}
	}
}

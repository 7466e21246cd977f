package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/api/metrics"
	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	publishTimeout = 10 * time.Second
)

// Dispatcher hands domain events to a publisher from a fixed set of workers.
// Events are sharded by subject id so that events about one order or user
// are published in the order they were enqueued.
type Dispatcher struct {
	workers   []chan domain.Event
	publisher ports.EventPublisher
	log       zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher ports.EventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.Event, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Event, channelBuffer)
	}
	return d
}

// Start launches the workers. They exit once Close has been called and
// their channel is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue never blocks. When the shard is full, or the dispatcher is
// closed, the event is dropped and logged.
func (d *Dispatcher) Enqueue(event domain.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn().Str("event_type", event.Type).Str("subject_id", event.SubjectID).Msg("dispatcher closed, event dropped")
		return
	}

	idx := d.shardIndex(event.SubjectID)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.EventsPublishedTotal.WithLabelValues(event.Type, "dropped").Inc()
		d.log.Error().Str("event_type", event.Type).Str("subject_id", event.SubjectID).Int("worker_id", idx).Msg("event queue full, event dropped")
	}
}

// Close stops accepting events. Call Wait to let workers drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// shardIndex maps a subject id deterministically to a worker index.
func (d *Dispatcher) shardIndex(subjectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subjectID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Event) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for event := range ch {
		metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		d.publish(ctx, id, event)
	}
}

func (d *Dispatcher) publish(ctx context.Context, workerID int, event domain.Event) {
	// Publishing outlives request cancellation; only the deadline applies.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	start := time.Now()
	err := d.publisher.Publish(pubCtx, event)
	metrics.EventPublishDuration.WithLabelValues(event.Type).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(event.Type, "error").Inc()
		d.log.Error().Err(err).
			Str("event_type", event.Type).
			Str("subject_id", event.SubjectID).
			Int("worker_id", workerID).
			Msg("event publishing failed")
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(event.Type, "ok").Inc()
}

package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/nbrain/onboarding-portal/internal/api/metrics"
	"github.com/nbrain/onboarding-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes activity events to a fixed set of workers using consistent
// hashing on the event reference, preserving per-record event ordering.
type Dispatcher struct {
	workers []chan ports.ActivityEventInput
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its reference.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.ActivityEventInput) {
	d.workers[d.shardIndex(event.Ref)] <- event
}

// shardIndex maps an event reference deterministically to a worker index.
func (d *Dispatcher) shardIndex(ref string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ref))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityEventInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			if err := d.service.Record(ctx, event); err != nil {
				metrics.ActivityEventsTotal.WithLabelValues(event.Kind, "error").Inc()
				d.log.Error().Err(err).
					Str("kind", event.Kind).
					Str("ref", event.Ref).
					Int("worker_id", id).
					Msg("activity event processing failed")
			} else {
				metrics.ActivityEventsTotal.WithLabelValues(event.Kind, "ok").Inc()
			}
			metrics.ActivityProcessingDuration.Observe(time.Since(start).Seconds())
		}
	}
}

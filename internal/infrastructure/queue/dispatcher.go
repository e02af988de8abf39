package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/opencampus/campus-cms/internal/api/metrics"
	"github.com/opencampus/campus-cms/internal/core/ports"
	"github.com/opencampus/campus-cms/internal/infrastructure/media"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher deletes replaced or orphaned media assets off the request path.
// URLs are sharded to a fixed set of workers by consistent hashing, so
// repeated enqueues of the same asset land on the same worker and are
// processed in order.
type Dispatcher struct {
	workers []chan string
	store   ports.MediaStore
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.MediaStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules the asset behind mediaURL for deletion. Empty URLs are
// ignored. The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(mediaURL string) {
	if mediaURL == "" {
		return
	}
	idx := d.shardIndex(mediaURL)
	d.workers[idx] <- mediaURL
	metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a URL deterministically to a worker index.
func (d *Dispatcher) shardIndex(mediaURL string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(mediaURL))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case mediaURL, ok := <-ch:
			if !ok {
				return
			}
			d.cleanup(ctx, workerID, mediaURL)
			metrics.CleanupQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) cleanup(ctx context.Context, workerID, mediaURL string) {
	publicID, err := media.PublicIDFromURL(mediaURL)
	if err != nil {
		metrics.MediaCleanupTotal.WithLabelValues("failure").Inc()
		d.log.Error().Err(err).
			Str("media_url", mediaURL).
			Str("worker_id", workerID).
			Msg("media cleanup failed")
		return
	}

	if err := d.store.Delete(ctx, publicID); err != nil {
		metrics.MediaCleanupTotal.WithLabelValues("failure").Inc()
		d.log.Error().Err(err).
			Str("public_id", publicID).
			Str("worker_id", workerID).
			Msg("media cleanup failed")
		return
	}

	metrics.MediaCleanupTotal.WithLabelValues("success").Inc()
	d.log.Debug().
		Str("public_id", publicID).
		Str("worker_id", workerID).
		Msg("media asset deleted")
}

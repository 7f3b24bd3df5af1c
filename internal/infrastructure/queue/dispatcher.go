package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/api/metrics"
	"github.com/websurfer/discovery/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ClickDispatcher routes click events to a fixed set of workers using
// consistent hashing on the site ID, guaranteeing per-site ordering of
// counter and earnings updates.
type ClickDispatcher struct {
	workers  []chan ports.ClickInput
	accounts ports.AccountService
	log      zerolog.Logger
}

// NewClickDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewClickDispatcher(numWorkers int, accounts ports.AccountService, log zerolog.Logger) *ClickDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &ClickDispatcher{
		workers:  make([]chan ports.ClickInput, numWorkers),
		accounts: accounts,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ClickInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is
// cancelled.
func (d *ClickDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a click to the worker responsible for its site. The call
// is non-blocking up to channelBuffer capacity.
func (d *ClickDispatcher) Enqueue(click ports.ClickInput) {
	idx := d.shardIndex(click.SiteID)
	d.workers[idx] <- click
	metrics.ClicksEnqueuedTotal.WithLabelValues("site").Inc()
	metrics.ClickQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a site ID deterministically to a worker index.
func (d *ClickDispatcher) shardIndex(siteID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(siteID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *ClickDispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ClickInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case click, ok := <-ch:
			if !ok {
				return
			}
			metrics.ClickQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.accounts.RegisterClick(ctx, click); err != nil {
				d.log.Error().Err(err).
					Str("site_id", click.SiteID).
					Int("worker_id", id).
					Msg("click processing failed")
			}
		}
	}
}

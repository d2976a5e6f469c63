package feed

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/reverie-spectrum/core"
	"github.com/lixenwraith/reverie-spectrum/parameter"
)

// Poller refreshes a Source on a fixed interval
// Only the newest snapshot is buffered, a slow consumer never sees stale data
type Poller struct {
	src      Source
	interval time.Duration
	log      logrus.FieldLogger

	updates chan Snapshot
	refresh chan struct{}

	fetches  atomic.Uint64
	failures atomic.Uint64

	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewPoller creates a poller, non-positive interval uses RefreshInterval
func NewPoller(src Source, interval time.Duration, log logrus.FieldLogger) *Poller {
	if interval <= 0 {
		interval = parameter.RefreshInterval
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Poller{
		src:      src,
		interval: interval,
		log:      log.WithField("component", "poller"),
		updates:  make(chan Snapshot, 1),
		refresh:  make(chan struct{}, 1),
	}
}

// Updates delivers fetched snapshots
func (p *Poller) Updates() <-chan Snapshot {
	return p.updates
}

// Refresh requests an immediate fetch, coalesced with any pending request
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Stats returns the number of fetch attempts and failures
func (p *Poller) Stats() (fetches, failures uint64) {
	return p.fetches.Load(), p.failures.Load()
}

// Start fetches once immediately, then on every interval
func (p *Poller) Start() {
	if !p.running.CompareAndSwap(false, true) {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.wg.Add(1)
	core.Go(func() { p.loop(ctx) })
}

// Stop cancels any in-flight fetch and waits for the loop to exit
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		if p.running.CompareAndSwap(true, false) {
			p.cancel()
			p.wg.Wait()
		}
	})
}

func (p *Poller) loop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fetch(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.refresh:
			ticker.Reset(p.interval)
		}
		p.fetch(ctx)
	}
}

func (p *Poller) fetch(ctx context.Context) {
	p.fetches.Add(1)
	start := time.Now()

	snap, err := p.src.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.failures.Add(1)
		// Previous dataset stays on screen
		p.log.WithError(err).Warn("refresh failed")
		return
	}

	p.log.WithFields(logrus.Fields{
		"points":  len(snap.Points),
		"zones":   len(snap.Zones),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Debug("refresh ok")
	deliver(p.updates, snap)
}

// deliver replaces any undelivered snapshot with s
func deliver(ch chan Snapshot, s Snapshot) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

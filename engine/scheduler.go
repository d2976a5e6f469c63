package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/reverie-spectrum/core"
	"github.com/lixenwraith/reverie-spectrum/parameter"
)

// Tick is one frame signal
type Tick struct {
	Frame uint64
	Dt    float64 // seconds since the previous delivered tick, clamped
	At    time.Time
}

// FrameScheduler emits frame ticks on a fixed interval
// Ticks are delivered on a channel so the consumer advances the engine on its own goroutine
// If the consumer falls behind, ticks coalesce and the next one carries the accumulated dt
type FrameScheduler struct {
	interval time.Duration
	maxDelta time.Duration
	now      func() time.Time

	ticks chan Tick

	paused    atomic.Bool
	resumeCh  chan struct{}
	frames    atomic.Uint64
	coalesced atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// SchedulerOption configures a FrameScheduler
type SchedulerOption func(*FrameScheduler)

// WithMaxDelta sets the upper bound on a tick's dt
func WithMaxDelta(d time.Duration) SchedulerOption {
	return func(s *FrameScheduler) { s.maxDelta = d }
}

// WithClock replaces the time source
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *FrameScheduler) { s.now = now }
}

// NewFrameScheduler creates a stopped scheduler, non-positive interval uses FrameInterval
func NewFrameScheduler(interval time.Duration, opts ...SchedulerOption) *FrameScheduler {
	if interval <= 0 {
		interval = parameter.FrameInterval
	}
	s := &FrameScheduler{
		interval: interval,
		maxDelta: parameter.MaxFrameDelta,
		now:      time.Now,
		ticks:    make(chan Tick, 1),
		resumeCh: make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ticks returns the delivery channel
func (s *FrameScheduler) Ticks() <-chan Tick {
	return s.ticks
}

// Frames returns the number of delivered ticks and the number merged into later ones
func (s *FrameScheduler) Frames() (delivered, coalesced uint64) {
	return s.frames.Load(), s.coalesced.Load()
}

// Pause suspends ticks, paused time is not counted in the next dt
func (s *FrameScheduler) Pause() {
	s.paused.Store(true)
}

// Resume restarts ticks after Pause
func (s *FrameScheduler) Resume() {
	if s.paused.CompareAndSwap(true, false) {
		select {
		case s.resumeCh <- struct{}{}:
		default:
		}
	}
}

// Paused reports whether ticks are suspended
func (s *FrameScheduler) Paused() bool {
	return s.paused.Load()
}

// Start begins the scheduler loop
func (s *FrameScheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.loop)
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (s *FrameScheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

func (s *FrameScheduler) loop() {
	defer s.wg.Done()

	last := s.now()
	deadline := last.Add(s.interval)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		if s.paused.Load() {
			select {
			case <-s.resumeCh:
			case <-s.stopChan:
				return
			}
			last = s.now()
			deadline = last.Add(s.interval)
			timer.Reset(s.interval)
			continue
		}

		select {
		case <-s.stopChan:
			return
		case <-s.resumeCh:
			continue
		case <-timer.C:
		}
		if s.paused.Load() {
			continue
		}

		now := s.now()
		dt := now.Sub(last)
		if dt > s.maxDelta {
			dt = s.maxDelta
		}

		select {
		case s.ticks <- Tick{Frame: s.frames.Load() + 1, Dt: dt.Seconds(), At: now}:
			s.frames.Add(1)
			last = now
		default:
			// Consumer busy, time keeps accumulating into the next tick
			s.coalesced.Add(1)
		}

		// Drift correction, resync when more than two intervals behind
		deadline = deadline.Add(s.interval)
		if now.Sub(deadline) > s.interval*2 {
			deadline = now.Add(s.interval)
		}
		sleep := deadline.Sub(s.now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

package trainer

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultFrameInterval gives roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

// SchedulerStoppedErr signals a frame requested from a stopped scheduler.
var SchedulerStoppedErr = errors.New("scheduler stopped")

// Scheduler emits the frames the training loop ticks on.
type Scheduler interface {
	Frames() <-chan time.Time
	Stop()
}

// FrameScheduler emits frames at a fixed interval.
type FrameScheduler struct {
	ticker *time.Ticker
}

// NewFrameScheduler creates a scheduler ticking at the given interval.
func NewFrameScheduler(interval time.Duration) *FrameScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameScheduler{
		ticker: time.NewTicker(interval),
	}
}

// Frames returns the frame channel.
func (f *FrameScheduler) Frames() <-chan time.Time {
	return f.ticker.C
}

// Stop stops the ticker.
func (f *FrameScheduler) Stop() {
	f.ticker.Stop()
}

// ManualScheduler emits a frame only when asked to.
type ManualScheduler struct {
	frames chan time.Time
	stop   chan struct{}
	once   sync.Once
}

// NewManualScheduler creates a new manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{
		frames: make(chan time.Time),
		stop:   make(chan struct{}),
	}
}

// Frames returns the frame channel.
func (m *ManualScheduler) Frames() <-chan time.Time {
	return m.frames
}

// Step emits one frame and blocks until it is picked up.
func (m *ManualScheduler) Step(ctx context.Context) error {
	select {
	case m.frames <- time.Now():
		return nil
	case <-m.stop:
		return SchedulerStoppedErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop makes any further Step fail.
func (m *ManualScheduler) Stop() {
	m.once.Do(func() {
		close(m.stop)
	})
}

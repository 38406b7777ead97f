package core

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyFetches is returned when every fetch slot stays busy for longer
// than the limiter's wait time.
var ErrTooManyFetches = errors.New("too many concurrent fetches, please try again later")

const (
	// DefaultMaxConcurrentFetches bounds parallel source requests.
	DefaultMaxConcurrentFetches = 8

	// DefaultFetchWait is how long a caller waits for a free slot.
	DefaultFetchWait = 10 * time.Second
)

// FetchLimiter is a counting semaphore in front of the source. Runs that
// hold a slot are otherwise independent; the limiter only caps how many hit
// the source at once.
type FetchLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewFetchLimiter allows at most maxConcurrent simultaneous fetches. Callers
// that cannot get a slot within maxWait receive ErrTooManyFetches.
func NewFetchLimiter(maxConcurrent int, maxWait time.Duration) *FetchLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentFetches
	}
	if maxWait <= 0 {
		maxWait = DefaultFetchWait
	}
	return &FetchLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. Each successful Acquire must be paired with Release.
func (l *FetchLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyFetches
	}
}

// Release returns a slot taken by Acquire.
func (l *FetchLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active is the number of fetches currently holding a slot.
func (l *FetchLimiter) Active() int {
	return int(l.active.Load())
}

// MaxConcurrent is the slot count.
func (l *FetchLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no fetch holds a slot or ctx ends.
func (l *FetchLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

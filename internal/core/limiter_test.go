package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestFetchLimiter_AcquireRelease(t *testing.T) {
	l := NewFetchLimiter(2, time.Second)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := l.Acquire(ctx); err != nil {
			t.Fatalf("Acquire #%d error = %v", i+1, err)
		}
	}
	if got := l.Active(); got != 2 {
		t.Errorf("Active() = %d, want 2", got)
	}

	l.Release()
	l.Release()
	if got := l.Active(); got != 0 {
		t.Errorf("Active() after release = %d, want 0", got)
	}
}

func TestFetchLimiter_Defaults(t *testing.T) {
	l := NewFetchLimiter(0, 0)
	if got := l.MaxConcurrent(); got != DefaultMaxConcurrentFetches {
		t.Errorf("MaxConcurrent() = %d, want %d", got, DefaultMaxConcurrentFetches)
	}
	if l.maxWait != DefaultFetchWait {
		t.Errorf("maxWait = %v, want %v", l.maxWait, DefaultFetchWait)
	}
}

func TestFetchLimiter_TimesOutWhenFull(t *testing.T) {
	l := NewFetchLimiter(1, 50*time.Millisecond)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire error = %v", err)
	}
	defer l.Release()

	start := time.Now()
	err := l.Acquire(ctx)
	if !errors.Is(err, ErrTooManyFetches) {
		t.Fatalf("Acquire error = %v, want ErrTooManyFetches", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("Acquire returned after %v, want about 50ms", elapsed)
	}
}

func TestFetchLimiter_ContextCancelled(t *testing.T) {
	l := NewFetchLimiter(1, time.Minute)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire error = %v", err)
	}
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire error = %v, want context.Canceled", err)
	}
}

func TestFetchLimiter_Concurrent(t *testing.T) {
	const max = 3
	l := NewFetchLimiter(max, time.Second)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		peak int
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire error = %v", err)
				return
			}
			mu.Lock()
			if a := l.Active(); a > peak {
				peak = a
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			l.Release()
		}()
	}
	wg.Wait()

	if peak > max {
		t.Errorf("peak active = %d, want <= %d", peak, max)
	}
}

func TestFetchLimiter_WaitForDrain(t *testing.T) {
	l := NewFetchLimiter(1, time.Second)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire error = %v", err)
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		l.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.WaitForDrain(ctx); err != nil {
		t.Errorf("WaitForDrain error = %v", err)
	}
}

func TestFetchLimiter_WaitForDrainTimeout(t *testing.T) {
	l := NewFetchLimiter(1, time.Second)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire error = %v", err)
	}
	defer l.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.WaitForDrain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitForDrain error = %v, want DeadlineExceeded", err)
	}
}

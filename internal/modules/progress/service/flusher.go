package service

import (
	"context"
	"sync"
	"time"

	"studyquest/internal/platform/logger"
)

const saveTimeout = 10 * time.Second

// Flusher coalesces save requests. Every Schedule call pushes the deadline
// out by the window, so a burst of mutations ends in a single save. Saves
// already running are not cancelled; a later save simply overwrites.
type Flusher struct {
	window time.Duration
	save   func(ctx context.Context) error
	log    *logger.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	closed  bool
	wg      sync.WaitGroup
}

func NewFlusher(window time.Duration, save func(ctx context.Context) error, log *logger.Logger) *Flusher {
	if log == nil {
		log = logger.Nop()
	}
	return &Flusher{window: window, save: save, log: log}
}

func (f *Flusher) Schedule() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.pending = true
	if f.timer == nil {
		f.timer = time.AfterFunc(f.window, f.fire)
		return
	}
	f.timer.Reset(f.window)
}

func (f *Flusher) fire() {
	f.mu.Lock()
	if f.closed || !f.pending {
		f.mu.Unlock()
		return
	}
	f.pending = false
	f.wg.Add(1)
	f.mu.Unlock()
	defer f.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := f.save(ctx); err != nil {
		f.log.Warn("progress flush failed", "error", err)
	}
}

// FlushNow saves immediately and drops any pending timer-driven save.
func (f *Flusher) FlushNow(ctx context.Context) error {
	f.mu.Lock()
	f.pending = false
	if f.timer != nil {
		f.timer.Stop()
	}
	f.mu.Unlock()
	return f.save(ctx)
}

// Close stops the timer, waits for running saves, then writes anything still
// pending. Schedule is a no-op afterwards.
func (f *Flusher) Close(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	pending := f.pending
	f.pending = false
	if f.timer != nil {
		f.timer.Stop()
	}
	f.mu.Unlock()

	f.wg.Wait()
	if !pending {
		return nil
	}
	return f.save(ctx)
}

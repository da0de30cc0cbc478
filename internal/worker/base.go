package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

type scheduled struct {
	seq   uint64
	timer clock.Timer
}

// BaseWorker provides common functionality for background workers that manage
// one timer per key. Rescheduling a key replaces its timer.
type BaseWorker[K comparable] struct {
	mu     sync.Mutex
	timers map[K]scheduled
	seq    uint64
	closed bool
	wg     sync.WaitGroup
}

func (w *BaseWorker[K]) init() {
	if w.timers == nil {
		w.timers = make(map[K]scheduled)
	}
}

// schedule runs fn once after d unless id is rescheduled, stopped or the worker shuts down first
func (w *BaseWorker[K]) schedule(clk clock.Clock, id K, d time.Duration, fn func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	if old, ok := w.timers[id]; ok {
		old.timer.Stop()
	}
	w.seq++
	seq := w.seq
	w.timers[id] = scheduled{seq: seq, timer: clk.AfterFunc(d, func() {
		if !w.claim(id, seq) {
			return
		}
		defer w.wg.Done()
		fn()
	})}
	return true
}

// claim removes the entry for a firing timer and registers the run as in flight
func (w *BaseWorker[K]) claim(id K, seq uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	cur, ok := w.timers[id]
	if !ok || cur.seq != seq || w.closed {
		return false
	}
	delete(w.timers, id)
	w.wg.Add(1)
	return true
}

func (w *BaseWorker[K]) stopTimer(id K) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	cur, ok := w.timers[id]
	if ok {
		cur.timer.Stop()
		delete(w.timers, id)
	}
	return ok
}

func (w *BaseWorker[K]) pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

func (w *BaseWorker[K]) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down " + workerName)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for id, s := range w.timers {
		s.timer.Stop()
		log.Debug("Cancelled pending "+workerName+" execution", "id", id)
	}
	w.timers = make(map[K]scheduled)
	w.mu.Unlock()

	// Wait for in-flight executions
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(workerName + " shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn(workerName + " shutdown timeout")
		return ctx.Err()
	}
}

package worker

import (
	"context"
	"time"

	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

// Respawner restores a depleted node. depletedAt identifies the record the
// timer was armed for so a late timer never clears a newer depletion.
type Respawner interface {
	ExpireDepletion(ctx context.Context, key domain.NodeKey, depletedAt time.Time) error
}

// RespawnWorker keeps one respawn timer per depleted node
type RespawnWorker struct {
	BaseWorker[domain.NodeKey]
	clock  clock.Clock
	target Respawner
}

// NewRespawnWorker creates a worker that calls target when a record's respawn time arrives
func NewRespawnWorker(clk clock.Clock, target Respawner) *RespawnWorker {
	w := &RespawnWorker{clock: clk, target: target}
	w.init()
	return w
}

// Schedule arms the respawn timer for rec, replacing any earlier one for the same node.
// Overdue records fire on the next clock tick rather than inline.
func (w *RespawnWorker) Schedule(rec domain.DepletionRecord) {
	if rec.RespawnAt.IsZero() {
		return
	}
	delay := max(rec.RespawnAt.Sub(w.clock.Now()), 0)

	key, depletedAt := rec.Key, rec.DepletedAt
	if !w.schedule(w.clock, key, delay, func() { w.execute(key, depletedAt) }) {
		return
	}
	logger.Debug(LogMsgRespawnScheduled, "node", key.String(), "resource", rec.ResourceType, "delay", delay)
}

// Cancel drops the node's pending timer
func (w *RespawnWorker) Cancel(key domain.NodeKey) bool {
	return w.stopTimer(key)
}

// Pending returns the number of armed timers
func (w *RespawnWorker) Pending() int {
	return w.pending()
}

func (w *RespawnWorker) execute(key domain.NodeKey, depletedAt time.Time) {
	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Debug(LogMsgExecutingRespawn, "node", key.String())

	if err := w.target.ExpireDepletion(ctx, key, depletedAt); err != nil {
		log.Error(LogMsgRespawnFailed, "node", key.String(), "error", err)
	}
}

// Shutdown cancels every pending timer and waits for running respawns
func (w *RespawnWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, RespawnWorkerName)
}

package gathering

import (
	"context"
	"time"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/gateway"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

// HandleServerMessage applies an inbound protocol envelope: approval
// responses and depletion/respawn broadcasts. Broadcasts are applied for
// every node, including ones nobody here is working.
func (e *Engine) HandleServerMessage(ctx context.Context, msg domain.Message) error {
	if msg.PlayerID != "" {
		ctx = logger.WithOwner(ctx, msg.PlayerID)
	}
	log := logger.FromContext(ctx)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}

	fx := &effects{}
	switch msg.Kind {
	case domain.KindActionResponse:
		if dec, ok := e.gw.Resolve(msg); ok {
			e.applyDecision(ctx, dec, fx)
		}
	case domain.KindDepleted:
		now := e.clock.Now()
		rec := domain.DepletionRecord{
			Key:          msg.Key(),
			ResourceType: msg.ResourceType,
			DepletedAt:   now,
			DepletedBy:   msg.DepletedBy,
		}
		if delay := msg.RespawnDelay(); delay > 0 {
			rec.RespawnAt = now.Add(delay)
		} else if res, err := e.catalog.Resource(msg.ResourceType); err == nil && res.RespawnDelay > 0 {
			rec.RespawnAt = now.Add(res.RespawnDelay)
		}
		e.applyDepletion(ctx, rec, fx)
	case domain.KindRespawned:
		e.applyRespawn(ctx, msg.Key(), fx)
	default:
		log.Debug(LogMsgUnhandledMessage, "kind", msg.Kind)
	}
	e.mu.Unlock()

	e.flush(ctx, fx)
	return nil
}

// HandleApprovalTimeout turns an unanswered approval into a denial.
// Remote gateways call it from their timeout timer.
func (e *Engine) HandleApprovalTimeout(dec gateway.Decision) {
	ctx := logger.WithOwner(context.Background(), dec.OwnerID)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	fx := &effects{}
	dec.Approved = false
	dec.TimedOut = true
	if dec.Reason == "" {
		dec.Reason = gateway.ReasonNoResponse
	}
	e.applyDecision(ctx, dec, fx)
	e.mu.Unlock()

	e.flush(ctx, fx)
}

// applyDepletion records rec and stops everyone working the node. It reports
// whether the record was new. Caller holds e.mu.
func (e *Engine) applyDepletion(ctx context.Context, rec domain.DepletionRecord, fx *effects) bool {
	if !e.registry.Deplete(rec) {
		return false
	}

	logger.FromContext(ctx).Info(LogMsgNodeDepleted,
		"resource", rec.ResourceType, "node", rec.Key.String(), "depleted_by", rec.DepletedBy, "respawn_at", rec.RespawnAt)
	fx.publish(event.NewNodeVisualEvent(rec.Key, rec.ResourceType, true))
	fx.publish(event.NewNodeEvent(event.NodeDepleted, rec, rec.DepletedAt))

	for _, s := range e.sessionsByOwner() {
		if s.key != rec.Key {
			continue
		}
		if s.state == domain.SessionCompleted {
			// the harvest that depleted the node
			e.finish(ctx, s, domain.SessionCompleted, domain.CancelNodeDepleted, fx)
			continue
		}
		e.cancel(ctx, s, domain.CancelNodeDepleted, fx)
		fx.notify(s.owner, domain.SeverityWarning, e.depletedMessage(s.owner, rec))
	}
	return true
}

// applyRespawn clears the node's record. Respawning a node that is not
// depleted does nothing. Caller holds e.mu.
func (e *Engine) applyRespawn(ctx context.Context, key domain.NodeKey, fx *effects) {
	if rt, ok := e.respawnTimers[key]; ok {
		rt.timer.Stop()
		delete(e.respawnTimers, key)
	}

	rec, ok := e.registry.Respawn(key)
	if !ok {
		return
	}

	logger.FromContext(ctx).Info(LogMsgNodeRespawned, "resource", rec.ResourceType, "node", key.String())
	fx.publish(event.NewNodeVisualEvent(key, rec.ResourceType, false))
	fx.publish(event.NewNodeEvent(event.NodeRespawned, rec, e.clock.Now()))
}

// scheduleRespawn arms the local respawn timer for a standalone depletion.
// Caller holds e.mu.
func (e *Engine) scheduleRespawn(rec domain.DepletionRecord) {
	if rec.RespawnAt.IsZero() {
		return
	}
	if old, ok := e.respawnTimers[rec.Key]; ok {
		old.timer.Stop()
	}

	delay := rec.RespawnAt.Sub(e.clock.Now())
	if delay < 0 {
		delay = 0
	}
	key, depletedAt := rec.Key, rec.DepletedAt
	e.respawnTimers[key] = respawnTimer{
		timer:      e.clock.AfterFunc(delay, func() { e.onRespawnTimer(key, depletedAt) }),
		depletedAt: depletedAt,
	}
	logger.Debug(LogMsgRespawnScheduled, "node", key.String(), "delay", delay)
}

// onRespawnTimer fires a standalone respawn unless the timer was replaced in the meantime
func (e *Engine) onRespawnTimer(key domain.NodeKey, depletedAt time.Time) {
	ctx := context.Background()

	e.mu.Lock()
	rt, ok := e.respawnTimers[key]
	if !ok || !rt.depletedAt.Equal(depletedAt) {
		e.mu.Unlock()
		return
	}
	delete(e.respawnTimers, key)
	fx := &effects{}
	e.applyRespawn(ctx, key, fx)
	e.mu.Unlock()

	e.flush(ctx, fx)
}

// Respawn restores a node immediately. It is the local counterpart of a
// resource-respawned broadcast and is a no-op for nodes that are not depleted.
func (e *Engine) Respawn(ctx context.Context, key domain.NodeKey) {
	e.mu.Lock()
	fx := &effects{}
	e.applyRespawn(ctx, key, fx)
	e.mu.Unlock()

	e.flush(ctx, fx)
}

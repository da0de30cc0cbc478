package gathering

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/GatherNode_Go/internal/catalog"
	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/cooldown"
	"github.com/osse101/GatherNode_Go/internal/depletion"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/gateway"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

// ErrEngineClosed is returned by entry points called after Close
var ErrEngineClosed = errors.New(ErrMsgEngineClosed)

// Dependencies wires an Engine to its collaborators
type Dependencies struct {
	Catalog   *catalog.Catalog
	Cooldowns *cooldown.Ledger
	Registry  *depletion.Registry
	Gateway   gateway.Gateway
	Inventory Inventory
	Skills    Skills
	Movement  Movement
	Positions Positions
	Bus       event.Bus
	Clock     clock.Clock
	Rand      Roller
}

func (d Dependencies) validate() error {
	missing := func(name string) error { return fmt.Errorf(ErrMsgMissingDependency, name) }
	switch {
	case d.Catalog == nil:
		return missing("a catalog")
	case d.Cooldowns == nil:
		return missing("a cooldown ledger")
	case d.Registry == nil:
		return missing("a depletion registry")
	case d.Gateway == nil:
		return missing("an approval gateway")
	case d.Inventory == nil:
		return missing("an inventory")
	case d.Skills == nil:
		return missing("skills")
	case d.Movement == nil:
		return missing("movement")
	case d.Positions == nil:
		return missing("positions")
	case d.Bus == nil:
		return missing("an event bus")
	case d.Clock == nil:
		return missing("a clock")
	case d.Rand == nil:
		return missing("a random source")
	}
	return nil
}

// Target is a node a player is walking towards
type Target struct {
	ResourceType string
	Key          domain.NodeKey
}

type respawnTimer struct {
	timer      clock.Timer
	depletedAt time.Time
}

// Engine runs gathering for every family and every player it serves.
//
// Entry points (clicks, arrivals, moves, cancels, server messages and timer
// fires) are serialized on one mutex. Events and movement requests produced
// while it is held are flushed after it is released, so subscribers and
// movement collaborators may call back into the engine.
type Engine struct {
	mu sync.Mutex

	catalog   *catalog.Catalog
	cooldowns *cooldown.Ledger
	registry  *depletion.Registry
	gw        gateway.Gateway
	inventory Inventory
	skills    Skills
	movement  Movement
	positions Positions
	bus       event.Bus
	clock     clock.Clock
	rng       Roller

	sessions      map[string]*session
	pendingMoves  map[string]Target
	respawnTimers map[domain.NodeKey]respawnTimer
	timerSeq      uint64
	closed        bool
}

// timeoutSetter is implemented by gateways that report unanswered approvals
type timeoutSetter interface {
	SetTimeoutHandler(gateway.TimeoutFunc)
}

// New creates an engine. Gateways with approval timeouts are hooked up to the engine automatically.
func New(deps Dependencies) (*Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		catalog:       deps.Catalog,
		cooldowns:     deps.Cooldowns,
		registry:      deps.Registry,
		gw:            deps.Gateway,
		inventory:     deps.Inventory,
		skills:        deps.Skills,
		movement:      deps.Movement,
		positions:     deps.Positions,
		bus:           deps.Bus,
		clock:         deps.Clock,
		rng:           deps.Rand,
		sessions:      make(map[string]*session),
		pendingMoves:  make(map[string]Target),
		respawnTimers: make(map[domain.NodeKey]respawnTimer),
	}

	if ts, ok := deps.Gateway.(timeoutSetter); ok {
		ts.SetTimeoutHandler(e.HandleApprovalTimeout)
	}
	return e, nil
}

// Mode reports whether the engine approves and depletes locally or through a server
func (e *Engine) Mode() string {
	return e.gw.Mode()
}

// Registry exposes the depletion state read-only
func (e *Engine) Registry() depletion.View {
	return e.registry
}

// Catalog returns the resource catalog the engine runs on
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Session returns a snapshot of the owner's live session
func (e *Engine) Session(owner string) (domain.SessionSnapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[owner]
	if !ok {
		return domain.SessionSnapshot{}, false
	}
	return s.snapshot(), true
}

// Sessions returns snapshots of every live session ordered by owner
func (e *Engine) Sessions() []domain.SessionSnapshot {
	e.mu.Lock()
	out := make([]domain.SessionSnapshot, 0, len(e.sessions))
	for _, s := range e.sessions {
		out = append(out, s.snapshot())
	}
	e.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].OwnerID < out[j].OwnerID })
	return out
}

// PendingTarget returns the node the owner is walking towards, if any
func (e *Engine) PendingTarget(owner string) (Target, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.pendingMoves[owner]
	return t, ok
}

// Close cancels every session, stops respawn timers and closes the gateway
func (e *Engine) Close(ctx context.Context) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	fx := &effects{}
	e.closed = true
	for _, s := range e.sessionsByOwner() {
		e.cancel(ctx, s, domain.CancelShutdown, fx)
	}
	for key, rt := range e.respawnTimers {
		rt.timer.Stop()
		delete(e.respawnTimers, key)
	}
	e.pendingMoves = make(map[string]Target)
	e.gw.Close()
	e.mu.Unlock()

	e.flush(ctx, fx)
}

// sessionsByOwner returns live sessions in a stable order. Caller holds e.mu.
func (e *Engine) sessionsByOwner() []*session {
	out := make([]*session, 0, len(e.sessions))
	for _, s := range e.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].owner < out[j].owner })
	return out
}

// =============================================================================
// Deferred effects
// =============================================================================

type moveRequest struct {
	owner string
	key   domain.NodeKey
}

// effects collects what an entry point wants done once e.mu is released
type effects struct {
	events []event.Event
	moves  []moveRequest
}

func (fx *effects) publish(evt event.Event) {
	fx.events = append(fx.events, evt)
}

func (fx *effects) notify(owner string, severity domain.Severity, message string) {
	fx.publish(event.NewNotificationEvent(owner, severity, message))
}

func (fx *effects) move(owner string, key domain.NodeKey) {
	fx.moves = append(fx.moves, moveRequest{owner: owner, key: key})
}

// flush publishes events, then issues movement requests. Caller must not hold e.mu.
func (e *Engine) flush(ctx context.Context, fx *effects) {
	log := logger.FromContext(ctx)
	for _, evt := range fx.events {
		if err := e.bus.Publish(ctx, evt); err != nil {
			log.Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
		}
	}
	for _, mv := range fx.moves {
		if err := e.movement.MoveToAdjacent(ctx, mv.owner, mv.key); err != nil {
			log.Warn(LogMsgMoveFailed, "owner", mv.owner, "node", mv.key.String(), "error", err)
			e.movementFailed(ctx, mv.owner, mv.key)
		}
	}
}

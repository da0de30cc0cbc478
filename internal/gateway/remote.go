package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

type pending struct {
	req   Request
	seq   uint64
	timer clock.Timer
}

// Remote forwards approvals to the authoritative server.
//
// Each player has a single pending slot; submitting again replaces the old
// request. Responses are matched on player, resource type and tile, and
// anything that matches no pending request is ignored.
type Remote struct {
	mu        sync.Mutex
	transport Transport
	clock     clock.Clock
	timeout   time.Duration
	onTimeout TimeoutFunc
	pending   map[string]*pending
	seq       uint64
	closed    bool
}

// RemoteConfig configures a Remote gateway
type RemoteConfig struct {
	// Timeout bounds how long an approval stays pending; zero disables it
	Timeout time.Duration
	// OnTimeout receives the denial produced when Timeout elapses
	OnTimeout TimeoutFunc
}

// NewRemote creates a gateway that talks to the authority through transport
func NewRemote(transport Transport, clk clock.Clock, config RemoteConfig) *Remote {
	return &Remote{
		transport: transport,
		clock:     clk,
		timeout:   config.Timeout,
		onTimeout: config.OnTimeout,
		pending:   make(map[string]*pending),
	}
}

// SetTimeoutHandler replaces the timeout callback. It must be called before the first Submit.
func (g *Remote) SetTimeoutHandler(fn TimeoutFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onTimeout = fn
}

// Mode returns domain.ModeOnline
func (g *Remote) Mode() string {
	return domain.ModeOnline
}

// Submit registers req in the owner's pending slot and sends it
func (g *Remote) Submit(ctx context.Context, req Request) (uint64, Decision, bool, error) {
	log := logger.FromContext(ctx)

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return 0, Decision{}, false, fmt.Errorf(ErrMsgSendApprovalFailed, domain.ErrNotConnected)
	}
	if old, ok := g.pending[req.OwnerID]; ok {
		g.stop(old)
		log.Debug(LogMsgApprovalReplaced, "owner", req.OwnerID, "old_seq", old.seq)
	}
	g.seq++
	p := &pending{req: req, seq: g.seq}
	if g.timeout > 0 {
		owner, seq := req.OwnerID, p.seq
		p.timer = g.clock.AfterFunc(g.timeout, func() { g.expire(owner, seq) })
	}
	g.pending[req.OwnerID] = p
	g.mu.Unlock()

	msg := domain.NewActionRequest(req.OwnerID, req.ResourceType, req.Key, req.ActionKind)
	if err := g.transport.Send(ctx, msg); err != nil {
		g.drop(req.OwnerID, p.seq)
		log.Warn(LogMsgApprovalSendFailed, "owner", req.OwnerID, "error", err)
		return p.seq, Decision{}, false, fmt.Errorf(ErrMsgSendApprovalFailed, err)
	}

	log.Debug(LogMsgApprovalSent, "owner", req.OwnerID, "resource", req.ResourceType, "node", req.Key.String(), "seq", p.seq)
	return p.seq, Decision{}, false, nil
}

// Resolve matches an action response against the pending slots and clears the match
func (g *Remote) Resolve(msg domain.Message) (Decision, bool) {
	if msg.Kind != domain.KindActionResponse {
		return Decision{}, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.match(msg)
	if p == nil {
		logger.Debug(LogMsgApprovalMismatch, "player", msg.PlayerID, "resource", msg.ResourceType, "x", msg.X, "y", msg.Y)
		return Decision{}, false
	}
	g.stop(p)
	delete(g.pending, p.req.OwnerID)

	return Decision{
		Seq:          p.seq,
		OwnerID:      p.req.OwnerID,
		ResourceType: p.req.ResourceType,
		Key:          p.req.Key,
		Approved:     msg.Approved,
		Reason:       msg.Reason,
		DepletedBy:   msg.DepletedBy,
	}, true
}

// match finds the pending request a response answers.
// Responses without a player id match on resource and tile alone.
func (g *Remote) match(msg domain.Message) *pending {
	matches := func(p *pending) bool {
		return p.req.ResourceType == msg.ResourceType && p.req.Key == msg.Key()
	}
	if msg.PlayerID != "" {
		if p, ok := g.pending[msg.PlayerID]; ok && matches(p) {
			return p
		}
		return nil
	}
	for _, p := range g.pending {
		if matches(p) {
			return p
		}
	}
	return nil
}

// Cancel clears the owner's pending slot; a response arriving later is ignored
func (g *Remote) Cancel(owner string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.pending[owner]
	if !ok {
		return false
	}
	g.stop(p)
	delete(g.pending, owner)
	return true
}

// Pending returns the owner's outstanding request
func (g *Remote) Pending(owner string) (Request, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.pending[owner]
	if !ok {
		return Request{}, false
	}
	return p.req, true
}

// RequestDepletion asks the authority to mark a node exhausted
func (g *Remote) RequestDepletion(ctx context.Context, owner, resourceType string, key domain.NodeKey, respawnDelay time.Duration) error {
	msg := domain.NewDepletionRequest(owner, resourceType, key, respawnDelay)
	if err := g.transport.Send(ctx, msg); err != nil {
		logger.FromContext(ctx).Warn(LogMsgDepletionSendFailed, "owner", owner, "node", key.String(), "error", err)
		return fmt.Errorf(ErrMsgSendDepletionFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgDepletionSent, "owner", owner, "resource", resourceType, "node", key.String())
	return nil
}

// Close drops every pending request and stops their timers
func (g *Remote) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for owner, p := range g.pending {
		g.stop(p)
		delete(g.pending, owner)
	}
	g.closed = true
}

func (g *Remote) stop(p *pending) {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// drop clears the owner's slot only if it still holds seq
func (g *Remote) drop(owner string, seq uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.pending[owner]; ok && p.seq == seq {
		g.stop(p)
		delete(g.pending, owner)
	}
}

func (g *Remote) expire(owner string, seq uint64) {
	g.mu.Lock()
	p, ok := g.pending[owner]
	if !ok || p.seq != seq {
		g.mu.Unlock()
		return
	}
	delete(g.pending, owner)
	cb := g.onTimeout
	g.mu.Unlock()

	logger.Warn(LogMsgApprovalTimedOut, "owner", owner, "resource", p.req.ResourceType, "node", p.req.Key.String(), "seq", seq)
	if cb != nil {
		cb(Decision{
			Seq:          seq,
			OwnerID:      owner,
			ResourceType: p.req.ResourceType,
			Key:          p.req.Key,
			Reason:       ReasonNoResponse,
			TimedOut:     true,
		})
	}
}

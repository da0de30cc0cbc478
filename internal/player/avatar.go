package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/gathering"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

// MovementListener is told where players walk. *gathering.Engine implements it.
type MovementListener interface {
	HandleMovementCompleted(ctx context.Context, owner string) (gathering.Outcome, error)
	HandleMovementFailed(ctx context.Context, owner string)
	HandlePlayerMoved(ctx context.Context, owner string, pos domain.NodeKey)
}

var _ MovementListener = (*gathering.Engine)(nil)

type walk struct {
	seq      uint64
	dest     domain.NodeKey
	approach bool // walking next to a node on the engine's behalf
	timer    clock.Timer
}

// Avatars tracks player positions and walks them one tile per step delay.
// Steps run on the clock, never on the goroutine that started the walk.
type Avatars struct {
	mu        sync.Mutex
	clock     clock.Clock
	stepDelay time.Duration
	positions map[string]domain.NodeKey
	walks     map[string]*walk
	seq       uint64
	listener  MovementListener
}

// NewAvatars creates a movement service; a zero stepDelay means DefaultStepDelay
func NewAvatars(clk clock.Clock, stepDelay time.Duration) *Avatars {
	if stepDelay <= 0 {
		stepDelay = DefaultStepDelay
	}
	return &Avatars{
		clock:     clk,
		stepDelay: stepDelay,
		positions: make(map[string]domain.NodeKey),
		walks:     make(map[string]*walk),
	}
}

// SetListener registers who hears about steps and arrivals
func (a *Avatars) SetListener(l MovementListener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listener = l
}

// Place puts the owner on pos without walking or notifying anyone
func (a *Avatars) Place(owner string, pos domain.NodeKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.positions[owner] = pos
}

// Position returns where the owner stands
func (a *Avatars) Position(_ context.Context, owner string) (domain.NodeKey, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	pos, ok := a.positions[owner]
	if !ok {
		return domain.NodeKey{}, fmt.Errorf("%w: %s", domain.ErrPositionUnset, owner)
	}
	return pos, nil
}

// Walking reports whether the owner is on the move
func (a *Avatars) Walking(owner string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.walks[owner]
	return ok
}

// MoveToAdjacent walks the owner to the nearest tile next to key and then
// reports arrival to the listener. Owners already in reach arrive on the next tick.
func (a *Avatars) MoveToAdjacent(ctx context.Context, owner string, key domain.NodeKey) error {
	return a.start(ctx, owner, key, true)
}

// WalkTo walks the owner onto dest. Every step is reported so sessions out of reach get cancelled.
func (a *Avatars) WalkTo(ctx context.Context, owner string, dest domain.NodeKey) error {
	return a.start(ctx, owner, dest, false)
}

func (a *Avatars) start(ctx context.Context, owner string, dest domain.NodeKey, approach bool) error {
	a.mu.Lock()
	if _, ok := a.positions[owner]; !ok {
		a.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrPositionUnset, owner)
	}

	replaced := a.stopWalk(owner)
	a.seq++
	w := &walk{seq: a.seq, dest: dest, approach: approach}
	a.walks[owner] = w
	seq := w.seq
	w.timer = a.clock.AfterFunc(a.delayFor(owner, w), func() { a.step(owner, seq) })
	listener := a.listener
	a.mu.Unlock()

	log := logger.FromContext(ctx)
	log.Debug(LogMsgWalkStarted, "owner", owner, "dest", dest.String(), "approach", approach)
	// a new plain walk abandons the node the player was heading to
	if replaced != nil && replaced.approach && !approach && listener != nil {
		log.Debug(LogMsgWalkReplaced, "owner", owner, "dest", replaced.dest.String())
		listener.HandleMovementFailed(ctx, owner)
	}
	return nil
}

// delayFor is zero when the walk is already over, otherwise one step. Caller holds a.mu.
func (a *Avatars) delayFor(owner string, w *walk) time.Duration {
	if a.arrived(a.positions[owner], w) {
		return 0
	}
	return a.stepDelay
}

func (a *Avatars) arrived(pos domain.NodeKey, w *walk) bool {
	if w.approach {
		return domain.IsAdjacent(pos, w.dest)
	}
	return pos == w.dest
}

// stopWalk cancels the owner's walk and returns it. Caller holds a.mu.
func (a *Avatars) stopWalk(owner string) *walk {
	w, ok := a.walks[owner]
	if !ok {
		return nil
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	delete(a.walks, owner)
	return w
}

// Stop halts the owner where they stand
func (a *Avatars) Stop(owner string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopWalk(owner)
}

func (a *Avatars) step(owner string, seq uint64) {
	ctx := logger.WithOwner(context.Background(), owner)

	a.mu.Lock()
	w, ok := a.walks[owner]
	if !ok || w.seq != seq {
		a.mu.Unlock()
		return
	}

	pos := a.positions[owner]
	moved := false
	if !a.arrived(pos, w) {
		pos = stepTowards(pos, w.dest)
		a.positions[owner] = pos
		moved = true
	}

	done := a.arrived(pos, w)
	if done {
		delete(a.walks, owner)
	} else {
		w.timer = a.clock.AfterFunc(a.stepDelay, func() { a.step(owner, seq) })
	}
	listener := a.listener
	approach := w.approach
	a.mu.Unlock()

	if listener == nil {
		return
	}
	if moved {
		listener.HandlePlayerMoved(ctx, owner, pos)
	}
	if done && approach {
		logger.FromContext(ctx).Debug(LogMsgArrived, "pos", pos.String(), "node", w.dest.String())
		_, _ = listener.HandleMovementCompleted(ctx, owner)
	}
}

// stepTowards moves one tile, diagonally when both axes differ
func stepTowards(from, to domain.NodeKey) domain.NodeKey {
	return domain.NodeKey{X: from.X + sign(to.X-from.X), Y: from.Y + sign(to.Y-from.Y)}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

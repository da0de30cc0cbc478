package gathering

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/GatherNode_Go/internal/cooldown"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/logger"
	"github.com/osse101/GatherNode_Go/internal/tools"
)

// HandleClick is the player clicking a placed node.
//
// Clicks inside the click cooldown are dropped silently. A click on the node
// the player is already working is a no-op; any other click replaces the
// current session. Players out of reach are walked over first and the
// interaction resumes in HandleMovementCompleted.
func (e *Engine) HandleClick(ctx context.Context, owner, resourceType string, key domain.NodeKey) (Outcome, error) {
	ctx = logger.WithOwner(ctx, owner)
	log := logger.FromContext(ctx)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return OutcomeIgnored, ErrEngineClosed
	}

	res, err := e.catalog.Resource(resourceType)
	if err != nil {
		e.mu.Unlock()
		return OutcomeIgnored, err
	}
	fam, err := e.catalog.Family(res.Family)
	if err != nil {
		e.mu.Unlock()
		return OutcomeIgnored, err
	}

	if !e.cooldowns.CheckAndStampClick(ctx, cooldown.Key{Owner: owner, Node: key}, e.clock.Now()) {
		e.mu.Unlock()
		log.Debug(LogMsgClickIgnored, "resource", resourceType, "node", key.String())
		return OutcomeIgnored, nil
	}

	fx := &effects{}
	outcome, err := e.click(ctx, owner, res, fam, key, fx)
	e.mu.Unlock()

	e.flush(ctx, fx)
	return outcome, err
}

func (e *Engine) click(ctx context.Context, owner string, res domain.ResourceDefinition, fam domain.FamilyDescriptor,
	key domain.NodeKey, fx *effects) (Outcome, error) {
	if s, ok := e.sessions[owner]; ok {
		if s.key == key && s.res.ID == res.ID {
			return OutcomeAlreadyActive, nil
		}
		e.cancel(ctx, s, domain.CancelNewAction, fx)
	}
	delete(e.pendingMoves, owner)

	tool, err := e.validate(ctx, owner, res, fam, key, fx)
	if err != nil {
		return OutcomeRejected, err
	}

	pos, err := e.positions.Position(ctx, owner)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPositionUnavailable, "error", err)
		fx.notify(owner, domain.SeverityError, MsgCannotReach)
		return OutcomeRejected, fmt.Errorf("%w: %v", domain.ErrPositionUnset, err)
	}
	if !domain.IsAdjacent(pos, key) {
		e.pendingMoves[owner] = Target{ResourceType: res.ID, Key: key}
		fx.move(owner, key)
		return OutcomeMoving, nil
	}

	return e.begin(ctx, owner, res, fam, tool, key, fx)
}

// validate runs the start preconditions in order: level, tool, depletion,
// resource cooldown. Failures queue the player-facing message. Caller holds e.mu.
func (e *Engine) validate(ctx context.Context, owner string, res domain.ResourceDefinition,
	fam domain.FamilyDescriptor, key domain.NodeKey, fx *effects) (domain.ToolDefinition, error) {
	level := e.skills.Level(ctx, owner, fam.Skill)
	if level < res.RequiredLevel {
		fx.notify(owner, domain.SeverityWarning, fmt.Sprintf(MsgLevelTooLow, fam.Skill, res.RequiredLevel, fam.Verb))
		return domain.ToolDefinition{}, fmt.Errorf("%w: %s needs %s %d, have %d",
			domain.ErrLevelTooLow, res.ID, fam.Skill, res.RequiredLevel, level)
	}

	tool, ok := tools.FindBestTool(e.inventory.Slots(ctx, owner), level, res, fam)
	if !ok {
		fx.notify(owner, domain.SeverityWarning, fmt.Sprintf(MsgNeedTool, e.toolNoun(res, fam), fam.Verb))
		return domain.ToolDefinition{}, fmt.Errorf("%w: %s", domain.ErrToolRequired, res.ID)
	}

	if rec, depleted := e.registry.Record(key); depleted {
		fx.notify(owner, domain.SeverityWarning, e.depletedMessage(owner, rec))
		return domain.ToolDefinition{}, fmt.Errorf("%w: %s", domain.ErrNodeDepleted, key)
	}

	cdKey := cooldown.Key{Owner: owner, Node: key}
	if cdErr := e.cooldowns.CheckResource(ctx, cdKey, fam.ActionKind, e.clock.Now()); cdErr != nil {
		var onCooldown cooldown.ErrOnCooldown
		if errors.As(cdErr, &onCooldown) {
			fx.notify(owner, domain.SeverityInfo, onCooldown.Error())
		}
		return domain.ToolDefinition{}, fmt.Errorf("%w: %w", domain.ErrOnCooldown, cdErr)
	}

	return tool, nil
}

// toolNoun names what the player is missing: the exact tool when the
// resource demands one, otherwise the family's generic noun.
func (e *Engine) toolNoun(res domain.ResourceDefinition, fam domain.FamilyDescriptor) string {
	if res.RequiredToolID != "" {
		if t, ok := e.catalog.Tool(res.RequiredToolID); ok {
			return strings.ToLower(t.Name)
		}
	}
	return fam.ToolNoun
}

func (e *Engine) depletedMessage(owner string, rec domain.DepletionRecord) string {
	if rec.DepletedBy != "" && rec.DepletedBy != owner {
		return fmt.Sprintf(MsgNodeDepletedBy, rec.DepletedBy)
	}
	return MsgNodeDepleted
}

// HandleMovementCompleted resumes the interaction the player walked towards.
// Everything is checked again since the world may have changed on the way.
func (e *Engine) HandleMovementCompleted(ctx context.Context, owner string) (Outcome, error) {
	ctx = logger.WithOwner(ctx, owner)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return OutcomeIgnored, ErrEngineClosed
	}
	target, ok := e.pendingMoves[owner]
	if !ok {
		e.mu.Unlock()
		return OutcomeIgnored, nil
	}
	delete(e.pendingMoves, owner)

	fx := &effects{}
	outcome, err := e.arrive(ctx, owner, target, fx)
	e.mu.Unlock()

	e.flush(ctx, fx)
	return outcome, err
}

func (e *Engine) arrive(ctx context.Context, owner string, target Target, fx *effects) (Outcome, error) {
	res, err := e.catalog.Resource(target.ResourceType)
	if err != nil {
		return OutcomeRejected, err
	}
	fam, err := e.catalog.Family(res.Family)
	if err != nil {
		return OutcomeRejected, err
	}

	tool, err := e.validate(ctx, owner, res, fam, target.Key, fx)
	if err != nil {
		return OutcomeRejected, err
	}

	pos, err := e.positions.Position(ctx, owner)
	if err != nil || !domain.IsAdjacent(pos, target.Key) {
		fx.notify(owner, domain.SeverityWarning, MsgCannotReach)
		return OutcomeRejected, fmt.Errorf("%w: %s", domain.ErrOutOfRange, target.Key)
	}

	return e.begin(ctx, owner, res, fam, tool, target.Key, fx)
}

// HandleMovementFailed drops the owner's pending interaction
func (e *Engine) HandleMovementFailed(ctx context.Context, owner string) {
	e.mu.Lock()
	_, had := e.pendingMoves[owner]
	delete(e.pendingMoves, owner)
	e.mu.Unlock()

	if had {
		logger.FromContext(logger.WithOwner(ctx, owner)).Debug(LogMsgMoveFailed, "reason", "movement reported failure")
	}
}

// movementFailed handles a MoveToAdjacent call that errored. The pending
// target is only dropped if it still points at key.
func (e *Engine) movementFailed(ctx context.Context, owner string, key domain.NodeKey) {
	e.mu.Lock()
	target, ok := e.pendingMoves[owner]
	if !ok || target.Key != key {
		e.mu.Unlock()
		return
	}
	delete(e.pendingMoves, owner)
	fx := &effects{}
	fx.notify(owner, domain.SeverityWarning, MsgCannotReach)
	e.mu.Unlock()

	e.flush(ctx, fx)
}

// HandlePlayerMoved cancels the owner's session when the player walks out of reach
func (e *Engine) HandlePlayerMoved(ctx context.Context, owner string, pos domain.NodeKey) {
	ctx = logger.WithOwner(ctx, owner)

	e.mu.Lock()
	s, ok := e.sessions[owner]
	if !ok || domain.IsAdjacent(pos, s.key) {
		e.mu.Unlock()
		return
	}
	fx := &effects{}
	e.cancel(ctx, s, domain.CancelMovedAway, fx)
	e.mu.Unlock()

	e.flush(ctx, fx)
}

// Cancel stops whatever the owner is doing. It reports whether there was anything to stop.
func (e *Engine) Cancel(ctx context.Context, owner string) bool {
	ctx = logger.WithOwner(ctx, owner)

	e.mu.Lock()
	_, moving := e.pendingMoves[owner]
	delete(e.pendingMoves, owner)
	s, ok := e.sessions[owner]
	if !ok {
		e.mu.Unlock()
		return moving
	}
	fx := &effects{}
	e.cancel(ctx, s, domain.CancelManual, fx)
	e.mu.Unlock()

	e.flush(ctx, fx)
	return true
}

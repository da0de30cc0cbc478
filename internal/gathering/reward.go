package gathering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/GatherNode_Go/internal/cooldown"
	"github.com/osse101/GatherNode_Go/internal/depletion"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/logger"
	"github.com/osse101/GatherNode_Go/internal/tools"
)

// complete pays out one harvest cycle and decides whether the streak goes on.
// Caller holds e.mu; s is Active and its timer has fired.
//
// A reward that does not fit in the inventory grants no experience, does not
// count towards depletion and ends the streak.
func (e *Engine) complete(ctx context.Context, s *session, fx *effects) {
	log := logger.FromContext(ctx)
	s.state = domain.SessionCompleted

	drop := e.rollDrop(s.res)
	itemName := e.catalog.DisplayName(drop.ItemID)
	if err := e.inventory.AddItem(ctx, s.owner, drop.ItemID, drop.Quantity); err != nil {
		if errors.Is(err, domain.ErrInventoryFull) {
			fx.notify(s.owner, domain.SeverityWarning, fmt.Sprintf(MsgInventoryFull, itemName))
			e.finish(ctx, s, domain.SessionCompleted, domain.CancelInventoryFull, fx)
			return
		}
		log.Error(LogMsgRewardFailed, "item", drop.ItemID, "quantity", drop.Quantity, "error", err)
		fx.notify(s.owner, domain.SeverityError, MsgRewardFailed)
		e.finish(ctx, s, domain.SessionCompleted, domain.CancelRewardFailed, fx)
		return
	}

	if drop.Quantity > 1 {
		fx.notify(s.owner, domain.SeveritySuccess, fmt.Sprintf(MsgGatheredMany, drop.Quantity, itemName))
	} else {
		fx.notify(s.owner, domain.SeveritySuccess, fmt.Sprintf(MsgGathered, itemName))
	}

	leveled, err := e.skills.GrantExperience(ctx, s.owner, s.family.Skill, s.res.ExperienceReward)
	if err != nil {
		log.Warn(LogMsgExperienceFailed, "skill", s.family.Skill, "amount", s.res.ExperienceReward, "error", err)
	} else if leveled {
		level := e.skills.Level(ctx, s.owner, s.family.Skill)
		fx.notify(s.owner, domain.SeveritySuccess, fmt.Sprintf(MsgLevelUp, s.family.Skill, s.family.Skill, level))
		fx.publish(event.NewLevelUpEvent(s.owner, s.family.Skill, level))
	}

	now := e.clock.Now()
	e.cooldowns.StampResource(cooldown.Key{Owner: s.owner, Node: s.key}, now)

	fx.publish(event.NewSessionEvent(event.SessionCompleted, domain.SessionPayload{
		Session: s.snapshot(),
		ItemID:  drop.ItemID,
		Amount:  drop.Quantity,
		XP:      s.res.ExperienceReward,
	}))
	log.Info(LogMsgHarvestCompleted, "resource", s.res.ID, "node", s.key.String(),
		"item", drop.ItemID, "quantity", drop.Quantity, "cycle", s.cycle)

	count := e.registry.RecordSuccess(s.key)
	if depletion.ShouldDeplete(s.res, count, e.rng.Float64()) {
		e.depleteAfterHarvest(ctx, s, now, fx)
		return
	}

	e.continueStreak(ctx, s, fx)
}

// depleteAfterHarvest applies a successful depletion roll. Online, the server
// owns the record and its broadcast does the rest. Caller holds e.mu.
func (e *Engine) depleteAfterHarvest(ctx context.Context, s *session, now time.Time, fx *effects) {
	if e.gw.Mode() == domain.ModeOnline {
		logger.FromContext(ctx).Info(LogMsgDepletionRequested, "resource", s.res.ID, "node", s.key.String())
		if err := e.gw.RequestDepletion(ctx, s.owner, s.res.ID, s.key, s.res.RespawnDelay); err != nil {
			logger.FromContext(ctx).Warn(LogMsgDepletionRequestFailed, "node", s.key.String(), "error", err)
		}
		e.finish(ctx, s, domain.SessionCompleted, domain.CancelNodeDepleted, fx)
		return
	}

	rec := domain.DepletionRecord{
		Key:          s.key,
		ResourceType: s.res.ID,
		DepletedAt:   now,
		DepletedBy:   s.owner,
	}
	if s.res.RespawnDelay > 0 {
		rec.RespawnAt = now.Add(s.res.RespawnDelay)
	}
	if e.applyDepletion(ctx, rec, fx) {
		e.scheduleRespawn(rec)
	}
	// applyDepletion ends s unless the node was already depleted
	if cur, ok := e.sessions[s.owner]; ok && cur == s {
		e.finish(ctx, s, domain.SessionCompleted, domain.CancelNodeDepleted, fx)
	}
}

// continueStreak starts the next cycle if the player is still in reach and
// still holds a usable tool. Caller holds e.mu.
func (e *Engine) continueStreak(ctx context.Context, s *session, fx *effects) {
	pos, err := e.positions.Position(ctx, s.owner)
	if err != nil || !domain.IsAdjacent(pos, s.key) {
		e.finish(ctx, s, domain.SessionCompleted, domain.CancelMovedAway, fx)
		return
	}

	level := e.skills.Level(ctx, s.owner, s.family.Skill)
	tool, ok := tools.FindBestTool(e.inventory.Slots(ctx, s.owner), level, s.res, s.family)
	if !ok {
		fx.notify(s.owner, domain.SeverityWarning, fmt.Sprintf(MsgNeedTool, e.toolNoun(s.res, s.family), s.family.Verb))
		e.finish(ctx, s, domain.SessionCompleted, domain.CancelToolMissing, fx)
		return
	}

	s.tool = tool
	e.activate(ctx, s, fx)
}

// rollDrop picks one entry of the drop table. Single-entry tables always yield their entry.
func (e *Engine) rollDrop(res domain.ResourceDefinition) domain.DropEntry {
	if len(res.Drops) == 1 {
		return res.Drops[0]
	}

	total := 0
	for _, d := range res.Drops {
		total += d.Weight
	}
	if total <= 0 {
		return res.Drops[0]
	}

	n := e.rng.IntN(total)
	for _, d := range res.Drops {
		if n < d.Weight {
			return d
		}
		n -= d.Weight
	}
	return res.Drops[len(res.Drops)-1]
}

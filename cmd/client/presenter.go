package main

import (
	"context"
	"log/slog"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
)

// presenter stands in for a game client's UI by logging what it would show
type presenter struct {
	owner string
	log   *slog.Logger
}

func newPresenter(owner string) *presenter {
	return &presenter{owner: owner, log: slog.Default().With("ui", true)}
}

func (p *presenter) handle(_ context.Context, evt event.Event) error {
	if owner := evt.Owner(); owner != "" && owner != p.owner {
		return nil
	}

	switch payload := evt.Payload.(type) {
	case domain.NotificationPayload:
		p.log.Info(payload.Message, "severity", payload.Severity)
	case domain.SkillBubblePayload:
		p.log.Debug("Skill bubble", "label", payload.Label, "visible", payload.Visible)
	case domain.NodeVisualPayload:
		p.log.Info("Node appearance changed", "node", payload.Key.String(), "resource", payload.ResourceType, "depleted", payload.Depleted)
	case domain.SessionPayload:
		p.log.Info("Session "+string(evt.Type),
			"resource", payload.Session.ResourceType,
			"cycle", payload.Session.Cycle,
			"item", payload.ItemID,
			"amount", payload.Amount,
			"xp", payload.XP,
			"reason", payload.Reason)
	case domain.DeniedPayload:
		p.log.Info("Action denied", "node", payload.Key.String(), "reason", payload.Reason, "depleted_by", payload.DepletedBy)
	case domain.LevelUpPayload:
		p.log.Info("Level up!", "skill", payload.Skill, "level", payload.NewLevel)
	}
	return nil
}

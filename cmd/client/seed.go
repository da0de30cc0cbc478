package main

import (
	"context"
	"fmt"

	"github.com/osse101/GatherNode_Go/internal/bootstrap"
	"github.com/osse101/GatherNode_Go/internal/catalog"
	"github.com/osse101/GatherNode_Go/internal/domain"
)

// seedPlayer places the player, hands over the tool and sets the skill level
// the scripted click needs
func seedPlayer(ctx context.Context, c *bootstrap.EngineComponents, cat *catalog.Catalog, owner string, opts options) error {
	res, err := cat.Resource(opts.resource)
	if err != nil {
		return err
	}
	fam, err := cat.Family(res.Family)
	if err != nil {
		return err
	}

	c.Avatars.Place(owner, domain.NewNodeKey(opts.startX, opts.startY))

	if opts.tool != "" {
		if _, ok := cat.Tool(opts.tool); !ok {
			return fmt.Errorf("%w: unknown tool %q", domain.ErrInvalidInput, opts.tool)
		}
		if err := c.Inventory.AddItem(ctx, owner, opts.tool, 1); err != nil {
			return err
		}
	}

	if opts.level > 1 {
		if err := c.Skills.SetLevel(owner, fam.Skill, opts.level); err != nil {
			return err
		}
	}
	return nil
}

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/osse101/GatherNode_Go/internal/catalog"
	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/config"
	"github.com/osse101/GatherNode_Go/internal/cooldown"
	"github.com/osse101/GatherNode_Go/internal/depletion"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/gateway"
	"github.com/osse101/GatherNode_Go/internal/gathering"
	"github.com/osse101/GatherNode_Go/internal/player"
	"github.com/osse101/GatherNode_Go/internal/transport/wsclient"
)

// EngineComponents is a gathering engine with the player services it drives
type EngineComponents struct {
	Engine    *gathering.Engine
	Inventory *player.Inventory
	Skills    *player.Skills
	Avatars   *player.Avatars
	// Transport is set in online mode; Run it with Engine as the handler
	Transport *wsclient.Client
}

// Close stops the engine and the connection to the server
func (c *EngineComponents) Close(ctx context.Context) {
	c.Engine.Close(ctx)
	if c.Transport != nil {
		_ = c.Transport.Close()
	}
}

// InitializeEngine builds an engine for cfg.Mode. Online mode dials the
// authority server as cfg.PlayerID.
func InitializeEngine(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, bus event.Bus, clk clock.Clock) (*EngineComponents, error) {
	ledger, err := cooldown.NewLedger(cooldown.Config{
		DevMode:          cfg.DevMode,
		ClickCooldown:    cfg.ClickCooldown,
		ResourceCooldown: cfg.ResourceCooldown,
		TableSize:        cfg.CooldownTableSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLedger, err)
	}

	c := &EngineComponents{
		Inventory: player.NewInventory(cfg.InventoryCapacity),
		Skills:    player.NewSkills(),
		Avatars:   player.NewAvatars(clk, cfg.StepDelay),
	}

	var gw gateway.Gateway = gateway.NewStandalone()
	if cfg.Mode == domain.ModeOnline {
		c.Transport, err = wsclient.Dial(ctx, wsclient.Config{
			URL:      cfg.ServerURL,
			PlayerID: cfg.PlayerID,
			APIKey:   cfg.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectServer, err)
		}
		gw = gateway.NewRemote(c.Transport, clk, gateway.RemoteConfig{Timeout: cfg.ApprovalTimeout})
	}

	c.Engine, err = gathering.New(gathering.Dependencies{
		Catalog:   cat,
		Cooldowns: ledger,
		Registry:  depletion.NewRegistry(),
		Gateway:   gw,
		Inventory: c.Inventory,
		Skills:    c.Skills,
		Movement:  c.Avatars,
		Positions: c.Avatars,
		Bus:       bus,
		Clock:     clk,
		Rand:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	})
	if err != nil {
		if c.Transport != nil {
			_ = c.Transport.Close()
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateEngine, err)
	}
	c.Avatars.SetListener(c.Engine)

	slog.Info(LogMsgEngineInitialized, "mode", c.Engine.Mode(), "player", cfg.PlayerID)
	return c, nil
}

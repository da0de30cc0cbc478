// Command client runs a gathering engine for one player. In standalone mode
// depletion is decided locally; in online mode every action is approved by
// the authority server named in SERVER_URL.
//
//	client -resource ore_copper -x 3 -y 4 -tool bronze_pickaxe -for 30s
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/GatherNode_Go/internal/bootstrap"
	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/config"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
)

const componentName = "client"

type options struct {
	resource string
	x, y     int
	startX   int
	startY   int
	tool     string
	level    int
	duration time.Duration
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.resource, "resource", "ore_copper", "resource type to gather")
	flag.IntVar(&o.x, "x", 1, "node x coordinate")
	flag.IntVar(&o.y, "y", 0, "node y coordinate")
	flag.IntVar(&o.startX, "start-x", 0, "player starting x coordinate")
	flag.IntVar(&o.startY, "start-y", 0, "player starting y coordinate")
	flag.StringVar(&o.tool, "tool", "", "tool to put in the backpack first")
	flag.IntVar(&o.level, "level", 1, "starting level of the resource's skill")
	flag.DurationVar(&o.duration, "for", 30*time.Second, "how long to keep gathering")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg, componentName)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	bus := event.NewMemoryBus()
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{EventBus: bus}); err != nil {
		return err
	}
	event.SubscribeAll(bus, newPresenter(cfg.PlayerID).handle)

	c, err := bootstrap.InitializeEngine(ctx, cfg, cat, bus, clock.New())
	if err != nil {
		return err
	}
	defer c.Close(context.Background())

	if err := seedPlayer(ctx, c, cat, cfg.PlayerID, opts); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if c.Transport != nil {
		g.Go(func() error {
			// a dropped connection ends the run
			defer cancel()
			return c.Transport.Run(gctx, c.Engine)
		})
	}
	g.Go(func() error {
		outcome, err := c.Engine.HandleClick(gctx, cfg.PlayerID, opts.resource, domain.NewNodeKey(opts.x, opts.y))
		if err != nil {
			return err
		}
		slog.Info("Clicked node", "resource", opts.resource, "x", opts.x, "y", opts.y, "outcome", outcome)
		<-gctx.Done()
		c.Engine.Cancel(context.Background(), cfg.PlayerID)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	for _, slot := range c.Inventory.Slots(context.Background(), cfg.PlayerID) {
		slog.Info("Backpack", "item", cat.DisplayName(slot.ItemID), "quantity", slot.Quantity, "noted", slot.Noted)
	}
	return nil
}

// @title GatherNode Authority API
// @version 1.0
// @description Authoritative depletion state for gathering resource nodes.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/GatherNode_Go/internal/authority"
	"github.com/osse101/GatherNode_Go/internal/bootstrap"
	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/config"
	"github.com/osse101/GatherNode_Go/internal/hub"
	"github.com/osse101/GatherNode_Go/internal/scheduler"
	"github.com/osse101/GatherNode_Go/internal/server"
	"github.com/osse101/GatherNode_Go/internal/worker"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepQueueSize  = 16
	componentName   = "server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
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

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		storage.Close()
		return err
	}

	h := hub.NewHub()
	h.Start()
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{EventBus: events.Bus, Hub: h}); err != nil {
		storage.Close()
		return err
	}

	svc := authority.NewService(storage.Depletions, cat, events.Publisher, clock.New())
	restored, err := svc.Restore(ctx)
	if err != nil {
		storage.Close()
		return err
	}
	slog.Info("Depletions restored", "count", restored)

	pool := worker.NewPool(cfg.WorkerCount, sweepQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(cfg.SweepInterval, svc.SweepJob())

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		ServiceName:    cfg.ServiceName + "-" + componentName,
	}, storage.HealthPool(), svc, h)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Server:             srv,
			Scheduler:          sched,
			WorkerPool:         pool,
			Authority:          svc,
			ResilientPublisher: events.Publisher,
			Storage:            storage,
		})
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

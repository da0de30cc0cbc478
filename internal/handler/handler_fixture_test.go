package handler

import (
	"context"
	"testing"
	"time"

	"github.com/osse101/GatherNode_Go/internal/authority"
	"github.com/osse101/GatherNode_Go/internal/catalog"
	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/database/memory"
	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/hub"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	svc authority.Service
	hub *hub.Hub
	clk *clock.Fake
}

// newFixture wires an authority service to a running hub the same way the
// server does
func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewFake(epoch)
	bus := event.NewMemoryBus()
	svc := authority.NewService(memory.NewDepletionRepository(), catalog.MustLoad(), bus, clk)

	h := hub.NewHub()
	h.Start()
	hub.NewSubscriber(h, bus).Subscribe()

	t.Cleanup(func() {
		h.Stop()
		_ = svc.Shutdown(context.Background())
	})
	return &fixture{svc: svc, hub: h, clk: clk}
}

package gathering_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/GatherNode_Go/internal/catalog"
	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/cooldown"
	"github.com/osse101/GatherNode_Go/internal/depletion"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/gateway"
	"github.com/osse101/GatherNode_Go/internal/gathering"
	"github.com/osse101/GatherNode_Go/internal/player"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// fixedRoller always rolls the same values
type fixedRoller struct {
	mu    sync.Mutex
	float float64
	intn  int
}

func (r *fixedRoller) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.float
}

func (r *fixedRoller) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.intn % n
}

func (r *fixedRoller) set(f float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.float = f
}

// recorder captures every published event
type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) handle(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recorder) ofType(t event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) messages(owner string) []string {
	var out []string
	for _, e := range r.ofType(event.Notification) {
		p := e.Payload.(domain.NotificationPayload)
		if p.OwnerID == owner {
			out = append(out, p.Message)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// recordingTransport stands in for the websocket connection to the authority
type recordingTransport struct {
	mu   sync.Mutex
	sent []domain.Message
	err  error
}

func (t *recordingTransport) Send(_ context.Context, msg domain.Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.sent = append(t.sent, msg)
	return nil
}

func (t *recordingTransport) ofKind(kind domain.MessageKind) []domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []domain.Message
	for _, m := range t.sent {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

type harness struct {
	t         *testing.T
	clk       *clock.Fake
	engine    *gathering.Engine
	inventory *player.Inventory
	skills    *player.Skills
	avatars   *player.Avatars
	registry  *depletion.Registry
	rng       *fixedRoller
	rec       *recorder
	transport *recordingTransport
}

type harnessOption func(*harnessConfig)

type harnessConfig struct {
	online   bool
	capacity int
	roll     float64
}

func online() harnessOption { return func(c *harnessConfig) { c.online = true } }

func withCapacity(n int) harnessOption { return func(c *harnessConfig) { c.capacity = n } }

func withRoll(f float64) harnessOption { return func(c *harnessConfig) { c.roll = f } }

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	cfg := harnessConfig{roll: 0.99}
	for _, o := range opts {
		o(&cfg)
	}

	clk := clock.NewFake(epoch)
	ledger, err := cooldown.NewLedger(cooldown.DefaultConfig())
	require.NoError(t, err)

	h := &harness{
		t:         t,
		clk:       clk,
		inventory: player.NewInventory(cfg.capacity),
		skills:    player.NewSkills(),
		avatars:   player.NewAvatars(clk, player.DefaultStepDelay),
		registry:  depletion.NewRegistry(),
		rng:       &fixedRoller{float: cfg.roll},
		rec:       &recorder{},
		transport: &recordingTransport{},
	}

	var gw gateway.Gateway = gateway.NewStandalone()
	if cfg.online {
		gw = gateway.NewRemote(h.transport, clk, gateway.RemoteConfig{Timeout: gateway.DefaultApprovalTimeout})
	}

	bus := event.NewMemoryBus()
	event.SubscribeAll(bus, h.rec.handle)

	h.engine, err = gathering.New(gathering.Dependencies{
		Catalog:   catalog.MustLoad(),
		Cooldowns: ledger,
		Registry:  h.registry,
		Gateway:   gw,
		Inventory: h.inventory,
		Skills:    h.skills,
		Movement:  h.avatars,
		Positions: h.avatars,
		Bus:       bus,
		Clock:     clk,
		Rand:      h.rng,
	})
	require.NoError(t, err)
	h.avatars.SetListener(h.engine)
	return h
}

// miner places a player with a bronze pickaxe at pos
func (h *harness) miner(owner string, pos domain.NodeKey) {
	h.t.Helper()
	h.avatars.Place(owner, pos)
	require.NoError(h.t, h.inventory.AddItem(context.Background(), owner, "bronze_pickaxe", 1))
}

func (h *harness) click(owner, resourceType string, key domain.NodeKey) (gathering.Outcome, error) {
	return h.engine.HandleClick(context.Background(), owner, resourceType, key)
}

// liveTimers counts the timers that should exist for the current state
func (h *harness) liveTimers(owners ...string) int {
	n := len(h.registry.Records())
	for _, s := range h.engine.Sessions() {
		if s.State == domain.SessionActive {
			n++
		}
	}
	for _, o := range owners {
		if h.avatars.Walking(o) {
			n++
		}
	}
	return n
}

package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
)

func receive(t *testing.T, c *Client) domain.Message {
	t.Helper()
	select {
	case msg, ok := <-c.Messages:
		require.True(t, ok, "client channel closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return domain.Message{}
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Messages:
		t.Fatalf("unexpected message %+v", msg)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	h := NewHub()
	h.Start()
	defer h.Stop()

	c := h.Register(KindWebSocket, "alice", nil)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "alice", c.PlayerID)
	assert.Equal(t, 1, h.ClientCount())

	h.Unregister(c.ID)
	h.Unregister(c.ID)
	assert.Zero(t, h.ClientCount())

	_, ok := <-c.Messages
	assert.False(t, ok, "unregister closes the channel")
}

func TestHub_BroadcastRespectsFilter(t *testing.T) {
	h := NewHub()
	h.Start()
	defer h.Stop()

	all := h.Register(KindWebSocket, "alice", nil)
	respawnsOnly := h.Register(KindSSE, "", []domain.MessageKind{domain.KindRespawned})

	rec := domain.DepletionRecord{Key: domain.NewNodeKey(3, 4), ResourceType: "ore_copper", DepletedBy: "alice"}
	h.Broadcast(domain.NewDepletedBroadcast(rec))
	h.Broadcast(domain.NewRespawnedBroadcast("ore_copper", rec.Key))

	assert.Equal(t, domain.KindDepleted, receive(t, all).Kind)
	assert.Equal(t, domain.KindRespawned, receive(t, all).Kind)

	got := receive(t, respawnsOnly)
	assert.Equal(t, domain.KindRespawned, got.Kind)
	assert.Equal(t, rec.Key, got.Key())
	assertSilent(t, respawnsOnly)
}

func TestHub_SendTo(t *testing.T) {
	h := NewHub()
	h.Start()
	defer h.Stop()

	alice := h.Register(KindWebSocket, "alice", nil)
	bob := h.Register(KindWebSocket, "bob", nil)

	req := domain.NewActionRequest("alice", "ore_copper", domain.NewNodeKey(1, 0), "mine")
	assert.True(t, h.SendTo(alice.ID, domain.NewActionResponse(req, true, "", "")))
	assert.False(t, h.SendTo("missing", req))

	assert.Equal(t, domain.KindActionResponse, receive(t, alice).Kind)
	assertSilent(t, bob)
}

func TestHub_StopClosesClients(t *testing.T) {
	h := NewHub()
	h.Start()

	c := h.Register(KindWebSocket, "alice", nil)
	h.Stop()
	h.Stop()

	_, ok := <-c.Messages
	assert.False(t, ok)
	assert.Zero(t, h.ClientCount())

	late := h.Register(KindSSE, "", nil)
	_, ok = <-late.Messages
	assert.False(t, ok, "registering on a stopped hub yields a closed channel")
	assert.Zero(t, h.ClientCount())
}

func TestSubscriber_BridgesNodeEvents(t *testing.T) {
	h := NewHub()
	h.Start()
	defer h.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(h, bus).Subscribe()
	c := h.Register(KindWebSocket, "bob", nil)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := domain.DepletionRecord{
		Key:          domain.NewNodeKey(5, 6),
		ResourceType: "tree_oak",
		DepletedAt:   now,
		DepletedBy:   "alice",
		RespawnAt:    now.Add(time.Minute),
	}

	require.NoError(t, bus.Publish(ctx, event.NewNodeEvent(event.NodeDepleted, rec, now)))
	require.NoError(t, bus.Publish(ctx, event.NewNodeEvent(event.NodeRespawned, rec, now.Add(time.Minute))))

	depleted := receive(t, c)
	assert.Equal(t, domain.KindDepleted, depleted.Kind)
	assert.Equal(t, "alice", depleted.DepletedBy)
	assert.Equal(t, "tree_oak", depleted.ResourceType)
	assert.Equal(t, rec.Key, depleted.Key())

	respawned := receive(t, c)
	assert.Equal(t, domain.KindRespawned, respawned.Kind)
	assert.Equal(t, rec.Key, respawned.Key())
}

func TestSubscriber_IgnoresBadPayload(t *testing.T) {
	h := NewHub()
	h.Start()
	defer h.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(h, bus).Subscribe()
	c := h.Register(KindWebSocket, "bob", nil)

	err := bus.Publish(context.Background(), event.Event{Type: event.NodeDepleted, Payload: "not a record"})
	assert.NoError(t, err)
	assertSilent(t, c)
}

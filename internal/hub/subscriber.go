package hub

import (
	"context"
	"log/slog"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
)

// Subscriber bridges node events on the internal bus to hub broadcasts
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new hub subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for node depletion and respawn events
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.NodeDepleted, s.handleNodeDepleted)
	s.bus.Subscribe(event.NodeRespawned, s.handleNodeRespawned)

	slog.Info(LogMsgSubscriberReady,
		"types", []string{string(event.NodeDepleted), string(event.NodeRespawned)})
}

func (s *Subscriber) handleNodeDepleted(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.NodePayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(domain.NewDepletedBroadcast(payload.Record))
	slog.Debug(LogMsgMessageBroadcast,
		"kind", domain.KindDepleted,
		"node", payload.Record.Key.String(),
		"depleted_by", payload.Record.DepletedBy)
	return nil
}

func (s *Subscriber) handleNodeRespawned(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.NodePayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(domain.NewRespawnedBroadcast(payload.Record.ResourceType, payload.Record.Key))
	slog.Debug(LogMsgMessageBroadcast,
		"kind", domain.KindRespawned,
		"node", payload.Record.Key.String())
	return nil
}

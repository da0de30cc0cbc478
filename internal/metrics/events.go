package metrics

import (
	"context"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every gathering and node event
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.SessionStarted:
		var p domain.SessionPayload
		if p, err = event.DecodePayload[domain.SessionPayload](evt.Payload); err == nil && p.Session.Cycle == 1 {
			SessionsStarted.WithLabelValues(p.Session.ResourceType).Inc()
		}

	case event.SessionCompleted:
		var p domain.SessionPayload
		if p, err = event.DecodePayload[domain.SessionPayload](evt.Payload); err == nil {
			Harvests.WithLabelValues(p.Session.ResourceType).Inc()
			ItemsGathered.WithLabelValues(p.ItemID).Add(float64(p.Amount))
			ExperienceGranted.WithLabelValues(p.Session.ResourceType).Add(p.XP)
		}

	case event.SessionCancelled:
		var p domain.SessionPayload
		if p, err = event.DecodePayload[domain.SessionPayload](evt.Payload); err == nil {
			SessionsCancelled.WithLabelValues(string(p.Reason)).Inc()
		}

	case event.ActionDenied:
		var p domain.DeniedPayload
		if p, err = event.DecodePayload[domain.DeniedPayload](evt.Payload); err == nil {
			ActionsDenied.WithLabelValues(p.ResourceType).Inc()
		}

	case event.LevelUp:
		var p domain.LevelUpPayload
		if p, err = event.DecodePayload[domain.LevelUpPayload](evt.Payload); err == nil {
			LevelUps.WithLabelValues(p.Skill).Inc()
		}

	case event.NodeDepleted, event.NodeRespawned:
		var p domain.NodePayload
		if p, err = event.DecodePayload[domain.NodePayload](evt.Payload); err == nil {
			if evt.Type == event.NodeDepleted {
				NodesDepleted.WithLabelValues(p.Record.ResourceType).Inc()
			} else {
				NodesRespawned.WithLabelValues(p.Record.ResourceType).Inc()
			}
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadUnreadable, "type", evt.Type, "error", err)
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

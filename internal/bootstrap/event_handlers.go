package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/hub"
	"github.com/osse101/GatherNode_Go/internal/metrics"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	// Hub is nil for the client, which has nobody to broadcast to
	Hub *hub.Hub
}

// RegisterEventHandlers sets up all event handlers and subscribers:
// the metrics collector and, on the server, the broadcast hub bridge.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		hub.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgHubSubscriberRegistered)
	}

	return nil
}

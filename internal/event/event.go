package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Owner returns the player the event concerns, or "" for world events
func (e Event) Owner() string {
	owner, _ := e.GetMetadataValue(MetadataKeyOwner).(string)
	return owner
}

// Gathering event types
const (
	SkillBubble      Type = Type(domain.EventTypeSkillBubble)
	Notification     Type = Type(domain.EventTypeNotification)
	NodeVisual       Type = Type(domain.EventTypeNodeVisual)
	SessionStarted   Type = Type(domain.EventTypeSessionStarted)
	SessionCompleted Type = Type(domain.EventTypeSessionCompleted)
	SessionCancelled Type = Type(domain.EventTypeSessionCancelled)
	ActionDenied     Type = Type(domain.EventTypeActionDenied)
	NodeDepleted     Type = Type(domain.EventTypeNodeDepleted)
	NodeRespawned    Type = Type(domain.EventTypeNodeRespawned)
	LevelUp          Type = Type(domain.EventTypeLevelUp)
)

// AllTypes lists every event type the engine and authority publish
var AllTypes = []Type{
	SkillBubble, Notification, NodeVisual,
	SessionStarted, SessionCompleted, SessionCancelled,
	ActionDenied, NodeDepleted, NodeRespawned, LevelUp,
}

func ownerMetadata(owner string) Metadata {
	if owner == "" {
		return nil
	}
	return map[string]interface{}{MetadataKeyOwner: owner}
}

// Type-safe event constructors

// NewSkillBubbleEvent shows or hides the skill bubble above a player
func NewSkillBubbleEvent(owner, label string, visible bool) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     SkillBubble,
		Payload:  domain.SkillBubblePayload{OwnerID: owner, Label: label, Visible: visible},
		Metadata: ownerMetadata(owner),
	}
}

// NewNotificationEvent creates a player-facing message
func NewNotificationEvent(owner string, severity domain.Severity, message string) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     Notification,
		Payload:  domain.NotificationPayload{OwnerID: owner, Severity: severity, Message: message},
		Metadata: ownerMetadata(owner),
	}
}

// NewNodeVisualEvent toggles the exhausted presentation of a node
func NewNodeVisualEvent(key domain.NodeKey, resourceType string, depleted bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NodeVisual,
		Payload: domain.NodeVisualPayload{Key: key, ResourceType: resourceType, Depleted: depleted},
	}
}

// NewSessionEvent creates a session.* lifecycle event
func NewSessionEvent(eventType Type, payload domain.SessionPayload) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     eventType,
		Payload:  payload,
		Metadata: ownerMetadata(payload.Session.OwnerID),
	}
}

// NewDeniedEvent creates an action.denied event
func NewDeniedEvent(payload domain.DeniedPayload) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     ActionDenied,
		Payload:  payload,
		Metadata: ownerMetadata(payload.OwnerID),
	}
}

// NewNodeEvent creates a node.depleted or node.respawned event
func NewNodeEvent(eventType Type, rec domain.DepletionRecord, ts time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: domain.NodePayload{Record: rec, Timestamp: ts},
	}
}

// NewLevelUpEvent creates a skill.level_up event
func NewLevelUpEvent(owner, skill string, newLevel int) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     LevelUp,
		Payload:  domain.LevelUpPayload{OwnerID: owner, Skill: skill, NewLevel: newLevel},
		Metadata: ownerMetadata(owner),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// SubscribeAll subscribes handler to every type in AllTypes
func SubscribeAll(bus Bus, handler Handler) {
	for _, t := range AllTypes {
		bus.Subscribe(t, handler)
	}
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously on the caller's goroutine, in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

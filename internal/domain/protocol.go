package domain

import "time"

// MessageKind names a logical network message.
type MessageKind string

// Protocol message kinds
const (
	KindActionRequest    MessageKind = "resource-action-request"
	KindActionResponse   MessageKind = "resource-action-response"
	KindDepletionRequest MessageKind = "resource-depletion-request"
	KindDepleted         MessageKind = "resource-depleted"
	KindRespawned        MessageKind = "resource-respawned"
)

// Message is the JSON envelope exchanged between engines and the authority server.
// Fields that do not apply to a kind are omitted on the wire.
type Message struct {
	Kind           MessageKind `json:"kind"`
	PlayerID       string      `json:"playerId,omitempty"`
	ResourceType   string      `json:"resourceType"`
	X              int         `json:"x"`
	Y              int         `json:"y"`
	ActionKind     string      `json:"actionKind,omitempty"`
	RespawnDelayMs int64       `json:"respawnDelayMs,omitempty"`
	Approved       bool        `json:"approved,omitempty"`
	Reason         string      `json:"reason,omitempty"`
	DepletedBy     string      `json:"depletedBy,omitempty"`
}

// Key returns the node the message refers to.
func (m Message) Key() NodeKey {
	return NodeKey{X: m.X, Y: m.Y}
}

// RespawnDelay returns RespawnDelayMs as a duration
func (m Message) RespawnDelay() time.Duration {
	return time.Duration(m.RespawnDelayMs) * time.Millisecond
}

// NewActionRequest builds a resource-action-request
func NewActionRequest(playerID, resourceType string, key NodeKey, actionKind string) Message {
	return Message{
		Kind:         KindActionRequest,
		PlayerID:     playerID,
		ResourceType: resourceType,
		X:            key.X,
		Y:            key.Y,
		ActionKind:   actionKind,
	}
}

// NewActionResponse builds the reply to an action request
func NewActionResponse(req Message, approved bool, reason, depletedBy string) Message {
	return Message{
		Kind:         KindActionResponse,
		PlayerID:     req.PlayerID,
		ResourceType: req.ResourceType,
		X:            req.X,
		Y:            req.Y,
		ActionKind:   req.ActionKind,
		Approved:     approved,
		Reason:       reason,
		DepletedBy:   depletedBy,
	}
}

// NewDepletionRequest builds a resource-depletion-request
func NewDepletionRequest(playerID, resourceType string, key NodeKey, respawnDelay time.Duration) Message {
	return Message{
		Kind:           KindDepletionRequest,
		PlayerID:       playerID,
		ResourceType:   resourceType,
		X:              key.X,
		Y:              key.Y,
		RespawnDelayMs: respawnDelay.Milliseconds(),
	}
}

// NewDepletedBroadcast builds the broadcast sent when a node becomes exhausted
func NewDepletedBroadcast(rec DepletionRecord) Message {
	msg := Message{
		Kind:         KindDepleted,
		PlayerID:     rec.DepletedBy,
		ResourceType: rec.ResourceType,
		X:            rec.Key.X,
		Y:            rec.Key.Y,
		DepletedBy:   rec.DepletedBy,
	}
	if !rec.RespawnAt.IsZero() && rec.RespawnAt.After(rec.DepletedAt) {
		msg.RespawnDelayMs = rec.RespawnAt.Sub(rec.DepletedAt).Milliseconds()
	}
	return msg
}

// NewRespawnedBroadcast builds the broadcast sent when a node is restored
func NewRespawnedBroadcast(resourceType string, key NodeKey) Message {
	return Message{
		Kind:         KindRespawned,
		ResourceType: resourceType,
		X:            key.X,
		Y:            key.Y,
	}
}

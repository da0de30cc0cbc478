package domain

import "time"

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "session.started")
const (
	// EventTypeSkillBubble toggles the skill bubble above a gathering player
	EventTypeSkillBubble = "presentation.skill_bubble"

	// EventTypeNotification carries a player-facing message with a severity tag
	EventTypeNotification = "presentation.notification"

	// EventTypeNodeVisual toggles the exhausted presentation of a node
	EventTypeNodeVisual = "presentation.node_visual"

	// EventTypeSessionStarted is published when a session enters Active
	EventTypeSessionStarted = "session.started"

	// EventTypeSessionCompleted is published for every finished harvest cycle
	EventTypeSessionCompleted = "session.completed"

	// EventTypeSessionCancelled is published when a session is interrupted
	EventTypeSessionCancelled = "session.cancelled"

	// EventTypeActionDenied is published when approval is refused
	EventTypeActionDenied = "action.denied"

	// EventTypeNodeDepleted is published when a depletion record is applied
	EventTypeNodeDepleted = "node.depleted"

	// EventTypeNodeRespawned is published when a depletion record is removed
	EventTypeNodeRespawned = "node.respawned"

	// EventTypeLevelUp is published when granted experience raises a skill level
	EventTypeLevelUp = "skill.level_up"
)

// Severity tags a notification
type Severity string

// Notification severities
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// SkillBubblePayload is the event payload for presentation.skill_bubble events
type SkillBubblePayload struct {
	OwnerID string `json:"owner_id"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

// NotificationPayload is the event payload for presentation.notification events
type NotificationPayload struct {
	OwnerID  string   `json:"owner_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// NodeVisualPayload is the event payload for presentation.node_visual events
type NodeVisualPayload struct {
	Key          NodeKey `json:"key"`
	ResourceType string  `json:"resource_type"`
	Depleted     bool    `json:"depleted"`
}

// SessionPayload is the event payload for session.* events
type SessionPayload struct {
	Session SessionSnapshot `json:"session"`
	Reason  CancelReason    `json:"reason,omitempty"`
	ItemID  string          `json:"item_id,omitempty"`
	Amount  int             `json:"amount,omitempty"`
	XP      float64         `json:"xp,omitempty"`
}

// DeniedPayload is the event payload for action.denied events
type DeniedPayload struct {
	OwnerID      string  `json:"owner_id"`
	Key          NodeKey `json:"key"`
	ResourceType string  `json:"resource_type"`
	Reason       string  `json:"reason"`
	DepletedBy   string  `json:"depleted_by,omitempty"`
}

// NodePayload is the event payload for node.depleted and node.respawned events
type NodePayload struct {
	Record    DepletionRecord `json:"record"`
	Timestamp time.Time       `json:"timestamp"`
}

// LevelUpPayload is the event payload for skill.level_up events
type LevelUpPayload struct {
	OwnerID  string `json:"owner_id"`
	Skill    string `json:"skill"`
	NewLevel int    `json:"new_level"`
}

package domain

import "time"

// SessionState is a step of the gathering state machine.
type SessionState string

// Session states. Idle is never stored: an owner without a session is idle.
const (
	SessionIdle            SessionState = "idle"
	SessionPendingApproval SessionState = "pending_approval"
	SessionActive          SessionState = "active"
	SessionCompleted       SessionState = "completed"
	SessionCancelled       SessionState = "cancelled"
)

// SessionSnapshot is a read-only copy of a live action session.
type SessionSnapshot struct {
	ID           string        `json:"id"`
	OwnerID      string        `json:"owner_id"`
	Key          NodeKey       `json:"key"`
	ResourceType string        `json:"resource_type"`
	Family       Family        `json:"family"`
	ToolID       string        `json:"tool_id"`
	State        SessionState  `json:"state"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	Cycle        int           `json:"cycle"`
}

// CancelReason explains why a session left the Active or PendingApproval state early.
type CancelReason string

// Cancel reasons
const (
	CancelManual        CancelReason = "manual"
	CancelMovedAway     CancelReason = "moved_away"
	CancelNewAction     CancelReason = "new_action"
	CancelDenied        CancelReason = "denied"
	CancelNodeDepleted  CancelReason = "node_depleted"
	CancelApprovalStale CancelReason = "approval_timeout"
	CancelShutdown      CancelReason = "shutdown"

	// reasons a streak stops looping after a completed harvest
	CancelInventoryFull CancelReason = "inventory_full"
	CancelRewardFailed  CancelReason = "reward_failed"
	CancelToolMissing   CancelReason = "tool_missing"
)

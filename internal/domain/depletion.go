package domain

import "time"

// DepletionRecord marks a node as exhausted until it respawns.
type DepletionRecord struct {
	Key          NodeKey   `json:"key"`
	ResourceType string    `json:"resource_type"`
	DepletedAt   time.Time `json:"depleted_at"`
	DepletedBy   string    `json:"depleted_by,omitempty"`
	RespawnAt    time.Time `json:"respawn_at,omitempty"`
}

// RespawnDue reports whether the record's respawn time has passed.
// Records without a respawn time never become due on their own.
func (r DepletionRecord) RespawnDue(now time.Time) bool {
	return !r.RespawnAt.IsZero() && !now.Before(r.RespawnAt)
}

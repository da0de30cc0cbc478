package authority

import "time"

// Denial reasons sent back in action responses
const (
	ReasonDepleted    = "That resource has been depleted."
	ReasonUnavailable = "The server could not check that resource right now."
)

// MaxRespawnDelay bounds client-requested delays for resource types the server does not know
const MaxRespawnDelay = 10 * time.Minute

// Log messages
const (
	LogMsgActionChecked       = "Action request checked"
	LogMsgNodeDepleted        = "Node depleted"
	LogMsgDepletionConflict   = "Depletion request for already depleted node ignored"
	LogMsgNodeRespawned       = "Node respawned"
	LogMsgRespawnStale        = "Respawn skipped, record was replaced"
	LogMsgRecordsRestored     = "Depletion records restored"
	LogMsgSweepCompleted      = "Overdue depletion sweep completed"
	LogMsgPublishFailed       = "Failed to publish node event"
	LogMsgUnexpectedMessage   = "Ignoring unexpected message kind"
	LogMsgRespawnDelayClamped = "Requested respawn delay replaced by catalog value"
)

// Error messages
const (
	ErrMsgMissingPlayer   = "player id is required"
	ErrMsgMissingResource = "resource type is required"
	ErrMsgUnsupportedKind = "unsupported message kind"
)

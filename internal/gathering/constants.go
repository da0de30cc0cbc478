package gathering

// Outcome describes what a click or arrival led to
type Outcome string

// Click outcomes
const (
	OutcomeIgnored       Outcome = "ignored"
	OutcomeAlreadyActive Outcome = "already_active"
	OutcomeMoving        Outcome = "moving"
	OutcomePending       Outcome = "pending_approval"
	OutcomeStarted       Outcome = "started"
	OutcomeRejected      Outcome = "rejected"
)

// =============================================================================
// Player-facing messages
// =============================================================================

const (
	MsgNeedTool          = "You need a %s to %s."
	MsgLevelTooLow       = "You need a %s level of %d to %s."
	MsgNodeDepleted      = "There is nothing left to gather here right now."
	MsgNodeDepletedBy    = "%s got here first. There is nothing left to gather right now."
	MsgCannotReach       = "You can't reach that."
	MsgServerUnavailable = "Unable to contact the server."
	MsgDeniedDefault     = "You can't %s right now."
	MsgGathered          = "You get some %s."
	MsgGatheredMany      = "You get %d x %s."
	MsgInventoryFull     = "Your inventory is too full to hold any more %s."
	MsgRewardFailed      = "Something went wrong while collecting your reward."
	MsgLevelUp           = "Congratulations, you just advanced a %s level. Your %s level is now %d."
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgClickIgnored           = "Click ignored"
	LogMsgSessionStarted         = "Gathering session started"
	LogMsgSessionCancelled       = "Gathering session cancelled"
	LogMsgStreakEnded            = "Gathering streak ended"
	LogMsgStaleTimer             = "Ignoring stale session timer"
	LogMsgStaleDecision          = "Ignoring approval decision for a session that moved on"
	LogMsgHarvestCompleted       = "Harvest completed"
	LogMsgRewardFailed           = "Failed to add harvest reward"
	LogMsgExperienceFailed       = "Failed to grant experience"
	LogMsgNodeDepleted           = "Node depleted"
	LogMsgNodeRespawned          = "Node respawned"
	LogMsgDepletionRequested     = "Depletion roll succeeded, asking server to deplete node"
	LogMsgDepletionRequestFailed = "Failed to send depletion request"
	LogMsgRespawnScheduled       = "Respawn scheduled"
	LogMsgMoveFailed             = "Movement request failed"
	LogMsgPublishFailed          = "Failed to publish gathering event"
	LogMsgUnhandledMessage       = "Ignoring server message"
	LogMsgPositionUnavailable    = "Player position unavailable"
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgMissingDependency = "gathering engine requires %s"
	ErrMsgEngineClosed      = "gathering engine is closed"
)

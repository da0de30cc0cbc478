package gateway

import "time"

const (
	// DefaultApprovalTimeout is how long a remote approval may stay pending
	DefaultApprovalTimeout = 10 * time.Second

	// ReasonNoResponse is the denial reason for an approval that timed out
	ReasonNoResponse = "The server did not respond."
)

// Log messages
const (
	LogMsgApprovalSent        = "Approval request sent"
	LogMsgApprovalReplaced    = "Pending approval replaced by a new request"
	LogMsgApprovalMismatch    = "Ignoring action response with no matching pending request"
	LogMsgApprovalTimedOut    = "Approval request timed out"
	LogMsgApprovalSendFailed  = "Failed to send approval request"
	LogMsgDepletionSent       = "Depletion request sent"
	LogMsgDepletionSendFailed = "Failed to send depletion request"
)

// Error messages
const (
	ErrMsgSendApprovalFailed  = "failed to send approval request: %w"
	ErrMsgSendDepletionFailed = "failed to send depletion request: %w"
)

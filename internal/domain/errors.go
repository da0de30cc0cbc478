package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgUnknownResource = "unknown resource type"
	ErrMsgUnknownFamily   = "unknown resource family"
	ErrMsgInvalidCatalog  = "invalid resource catalog"

	// Precondition errors
	ErrMsgLevelTooLow   = "skill level too low"
	ErrMsgToolRequired  = "no usable tool"
	ErrMsgOutOfRange    = "node out of reach"
	ErrMsgPositionUnset = "player position unknown"

	// Contention errors
	ErrMsgNodeDepleted   = "node is depleted"
	ErrMsgNotDepleted    = "node is not depleted"
	ErrMsgActionDenied   = "action denied by server"
	ErrMsgApprovalFailed = "approval request failed"

	// Inventory errors
	ErrMsgInventoryFull        = "inventory is full"
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgItemNotFound         = "item not found"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"

	// Session errors
	ErrMsgNoSession = "no active session"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgNotConnected  = "transport not connected"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUnknownResource = errors.New(ErrMsgUnknownResource)
	ErrUnknownFamily   = errors.New(ErrMsgUnknownFamily)
	ErrInvalidCatalog  = errors.New(ErrMsgInvalidCatalog)

	ErrLevelTooLow   = errors.New(ErrMsgLevelTooLow)
	ErrToolRequired  = errors.New(ErrMsgToolRequired)
	ErrOutOfRange    = errors.New(ErrMsgOutOfRange)
	ErrPositionUnset = errors.New(ErrMsgPositionUnset)

	ErrNodeDepleted   = errors.New(ErrMsgNodeDepleted)
	ErrNotDepleted    = errors.New(ErrMsgNotDepleted)
	ErrActionDenied   = errors.New(ErrMsgActionDenied)
	ErrApprovalFailed = errors.New(ErrMsgApprovalFailed)

	ErrInventoryFull        = errors.New(ErrMsgInventoryFull)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrItemNotFound         = errors.New(ErrMsgItemNotFound)

	ErrOnCooldown = errors.New(ErrMsgOnCooldown)

	ErrNoSession = errors.New(ErrMsgNoSession)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
	ErrNotConnected  = errors.New(ErrMsgNotConnected)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// IsPreconditionFailure reports whether err means the player must change loadout or position.
func IsPreconditionFailure(err error) bool {
	return errors.Is(err, ErrLevelTooLow) ||
		errors.Is(err, ErrToolRequired) ||
		errors.Is(err, ErrOutOfRange)
}

// IsContention reports whether err is an expected contention outcome rather than a fault.
func IsContention(err error) bool {
	return errors.Is(err, ErrNodeDepleted) || errors.Is(err, ErrActionDenied)
}

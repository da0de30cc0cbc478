package player

import "time"

// Inventory defaults
const (
	// DefaultCapacity is the number of slots in a backpack
	DefaultCapacity = 28
)

// Experience curve constants. Advancing from level L to L+1 costs BaseXP * L^LevelExponent.
const (
	BaseXP        = 80.0
	LevelExponent = 1.5

	// StartingLevel is the level of a skill with no experience
	StartingLevel = 1

	// MaxLevel caps every skill
	MaxLevel = 99
)

// Movement defaults
const (
	// DefaultStepDelay is how long walking one tile takes
	DefaultStepDelay = 600 * time.Millisecond
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgItemAdded       = "Item added to inventory"
	LogMsgItemRemoved     = "Item removed from inventory"
	LogMsgInventoryFull   = "Inventory full"
	LogMsgExperienceAdded = "Experience granted"
	LogMsgLevelUp         = "Skill level up"
	LogMsgWalkStarted     = "Walk started"
	LogMsgWalkReplaced    = "Walk replaced before arrival"
	LogMsgArrived         = "Arrived next to node"
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgInvalidQuantity = "quantity must be positive"
	ErrMsgNegativeXP      = "experience amount must not be negative"
	ErrMsgInvalidLevel    = "level must be between 1 and 99"
)

package cooldown

import "time"

// =============================================================================
// Duration Constants
// =============================================================================

const (
	// DefaultClickCooldown throttles repeated clicks on the same node
	DefaultClickCooldown = 600 * time.Millisecond

	// DefaultResourceCooldown is the pause after a successful harvest before the node can be worked again
	DefaultResourceCooldown = time.Second

	// DefaultTableSize bounds each cooldown table; least recently stamped entries are evicted first
	DefaultTableSize = 4096
)

// =============================================================================
// Action Names
// =============================================================================

const (
	// ActionClick names the click table in errors and logs
	ActionClick = "click"

	// ActionResource names the resource table in errors and logs
	ActionResource = "resource"
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	// ErrMsgCreateTableFailed is returned when an LRU table cannot be allocated
	ErrMsgCreateTableFailed = "failed to create %s cooldown table: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	// LogMsgDevModeBypass is logged when dev mode bypasses cooldown enforcement
	LogMsgDevModeBypass = "DEV_MODE: Bypassing resource cooldown"

	// LogMsgClickThrottled is logged when a click lands inside the click cooldown
	LogMsgClickThrottled = "Click ignored - click cooldown active"
)

// =============================================================================
// Error Message Format Strings (for ErrOnCooldown.Error())
// =============================================================================

const (
	// ErrFmtCooldownWithMinutes formats cooldown error with minutes and seconds
	ErrFmtCooldownWithMinutes = "You can %s again in %dm %ds"

	// ErrFmtCooldownSecondsOnly formats cooldown error with seconds only
	ErrFmtCooldownSecondsOnly = "You must wait %d seconds before you can %s again"
)

// =============================================================================
// Time Conversion Constants
// =============================================================================

const (
	// SecondsPerMinute is used for time duration calculations
	SecondsPerMinute = 60
)

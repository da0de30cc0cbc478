package config

import "time"

// Defaults applied when a variable is unset
const (
	DefaultEnvironment       = EnvironmentDev
	DefaultServiceName       = "gathernode"
	DefaultVersion           = "dev"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultLogDir            = "logs"
	DefaultMode              = "standalone"
	DefaultPlayerID          = "player"
	DefaultPort              = "8080"
	DefaultCooldownTableSize = 1000
	DefaultInventoryCapacity = 28
	DefaultStorage           = "memory"
	DefaultWorkerCount       = 2
	DefaultDBMaxConns        = 10

	DefaultClickCooldown    = 600 * time.Millisecond
	DefaultResourceCooldown = time.Second
	DefaultApprovalTimeout  = 10 * time.Second
	DefaultStepDelay        = 600 * time.Millisecond
	DefaultSweepInterval    = 30 * time.Second

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Environments
const (
	EnvironmentDev        = "dev"
	EnvironmentProduction = "production"
)

// Error messages
const (
	ErrMsgInvalidConfig = "invalid configuration"
)

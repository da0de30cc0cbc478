package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames: component, timestamp
	LogFileNamePattern = "%s_%s.log"

	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting GatherNode"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Catalog
// =============================================================================

const (
	LogMsgCatalogLoaded      = "Resource catalog loaded"
	ErrMsgFailedReadCatalog  = "failed to read catalog file"
	ErrMsgFailedParseCatalog = "failed to parse catalog"
	CatalogSourceEmbedded    = "embedded"
)

// =============================================================================
// Storage
// =============================================================================

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	DBMaxIdleTime = 5 * time.Minute
	DBMaxLifetime = 30 * time.Minute

	LogMsgStorageInitialized = "Depletion storage initialized"
	ErrMsgFailedConnectDB    = "failed to connect to database"
	ErrMsgFailedMigrateDB    = "failed to migrate database"
	ErrMsgUnknownStorage     = "unknown storage backend %q"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgHubSubscriberRegistered    = "Broadcast hub subscribed to node events"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Engine
// =============================================================================

const (
	LogMsgEngineInitialized   = "Gathering engine initialized"
	ErrMsgFailedCreateLedger  = "failed to create cooldown ledger"
	ErrMsgFailedConnectServer = "failed to connect to authority server"
	ErrMsgFailedCreateEngine  = "failed to create gathering engine"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"

	// Service names for shutdown logging
	ServiceNameAuthority = "authority"

	// Shutdown log message suffix (service name will be prepended)
	LogMsgServiceShutdownFailed = " service shutdown failed"
)

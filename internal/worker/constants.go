package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgJobQueueFull    = "Worker queue full, job dropped"
)

// ============================================================================
// Log Messages - Respawn Worker
// ============================================================================

// RespawnWorkerName names the respawn worker in shutdown logs
const RespawnWorkerName = "respawn worker"

// Log messages for respawn worker operations
const (
	LogMsgRespawnScheduled = "Respawn scheduled"
	LogMsgExecutingRespawn = "Executing scheduled respawn"
	LogMsgRespawnFailed    = "Scheduled respawn failed"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)

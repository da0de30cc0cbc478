package wsclient

import "time"

const (
	DefaultSendBuffer   = 64
	DefaultDialTimeout  = 10 * time.Second
	DefaultWriteTimeout = 5 * time.Second

	// ReadLimit bounds one inbound envelope
	ReadLimit = 64 << 10

	HeaderAPIKey     = "X-API-Key"
	QueryParamPlayer = "player"
)

// Error messages
const (
	ErrMsgDialFailed     = "failed to connect to %s: %w"
	ErrMsgSendQueueFull  = "send queue full"
	ErrMsgInvalidURL     = "invalid server url %q: %w"
	ErrMsgMissingPlayer  = "player id is required"
	ErrMsgAlreadyRunning = "client is already running"
)

// Log messages
const (
	LogMsgConnected       = "Connected to authority server"
	LogMsgDisconnected    = "Disconnected from authority server"
	LogMsgHandleFailed    = "Failed to handle server message"
	LogMsgSendQueueFull   = "Dropping outbound message, send queue full"
	LogMsgUnexpectedClose = "Authority connection closed unexpectedly"
)

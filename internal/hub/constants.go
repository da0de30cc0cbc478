package hub

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientMessageBuffer is the buffer size for each client's message channel
	ClientMessageBuffer = 64
)

// Client kinds, used as the connected-clients metric label
const (
	KindWebSocket = "websocket"
	KindSSE       = "sse"
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// EventTypeConnected is the first event every SSE stream receives
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"

	// QueryParamTypes filters an SSE stream to a comma-separated list of message kinds
	QueryParamTypes = "types"
)

// Log messages
const (
	LogMsgClientConnected    = "Hub client connected"
	LogMsgClientDisconnected = "Hub client disconnected"
	LogMsgMessageBroadcast   = "Broadcasting node message"
	LogMsgBroadcastDropped   = "Broadcast buffer full, message dropped"
	LogMsgClientLagging      = "Client buffer full, message skipped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscriberReady    = "Hub subscriber registered for event types"
	LogMsgInvalidPayload     = "Invalid node event payload"
)

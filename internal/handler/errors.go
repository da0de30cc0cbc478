package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Node error messages
	ErrMsgListDepletedFailed = "Failed to list depleted nodes"
)

// Query parameters
const (
	QueryParamPlayer = "player"
)

// Log messages
const (
	LogMsgWebSocketAcceptFailed = "WebSocket upgrade failed"
	LogMsgWebSocketConnected    = "WebSocket client connected"
	LogMsgWebSocketClosed       = "WebSocket client disconnected"
	LogMsgWebSocketBadMessage   = "WebSocket message rejected"
	LogMsgWebSocketReplyDropped = "WebSocket reply dropped, client buffer full"
	LogMsgForceRespawn          = "Admin force respawn"
)

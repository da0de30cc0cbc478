package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Gathering metric names
const (
	MetricNameHarvests          = "gathering_harvests_total"
	MetricNameItemsGathered     = "gathering_items_total"
	MetricNameExperienceGranted = "gathering_experience_total"
	MetricNameSessionsStarted   = "gathering_sessions_started_total"
	MetricNameSessionsCancelled = "gathering_sessions_cancelled_total"
	MetricNameActionsDenied     = "gathering_actions_denied_total"
	MetricNameLevelUps          = "gathering_level_ups_total"
	MetricNameNodesDepleted     = "nodes_depleted_total"
	MetricNameNodesRespawned    = "nodes_respawned_total"
)

// Authority metric names
const (
	MetricNameApprovalDecisions = "authority_approval_decisions_total"
	MetricNameDepletionRequests = "authority_depletion_requests_total"
	MetricNameDepletedNodes     = "authority_depleted_nodes"
	MetricNameConnectedClients  = "authority_connected_clients"
	MetricNameBroadcastsDropped = "authority_broadcasts_dropped_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Gathering metric help text
const (
	HelpTextHarvests          = "Total number of completed harvest cycles"
	HelpTextItemsGathered     = "Total number of items granted by harvests"
	HelpTextExperienceGranted = "Total experience granted by harvests"
	HelpTextSessionsStarted   = "Total number of gathering sessions that became active"
	HelpTextSessionsCancelled = "Total number of interrupted gathering sessions"
	HelpTextActionsDenied     = "Total number of gathering actions refused approval"
	HelpTextLevelUps          = "Total number of skill level ups"
	HelpTextNodesDepleted     = "Total number of nodes that became depleted"
	HelpTextNodesRespawned    = "Total number of nodes that respawned"
)

// Authority metric help text
const (
	HelpTextApprovalDecisions = "Total number of action requests answered by the authority"
	HelpTextDepletionRequests = "Total number of depletion requests handled by the authority"
	HelpTextDepletedNodes     = "Current number of depleted nodes held by the authority"
	HelpTextConnectedClients  = "Current number of connected hub clients"
	HelpTextBroadcastsDropped = "Total number of broadcasts dropped for slow clients"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelItem     = "item"
	LabelResource = "resource"
	LabelSkill    = "skill"
	LabelReason   = "reason"
	LabelResult   = "result"
	LabelKind     = "kind"
)

// Result label values
const (
	ResultApproved = "approved"
	ResultDenied   = "denied"
	ResultApplied  = "applied"
	ResultConflict = "conflict"
	ResultFailed   = "failed"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnreadable = "Event payload could not be decoded"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)

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

// Business metric names
const (
	MetricNameExperienceGranted  = "experience_granted_total"
	MetricNameLevelUps           = "character_level_ups_total"
	MetricNameSkillNodesUnlocked = "skill_nodes_unlocked_total"
	MetricNameItemsEquipped      = "items_equipped_total"
	MetricNameItemsMoved         = "items_moved_total"
	MetricNameItemsUsed          = "items_used_total"
	MetricNameJobSwitches        = "job_switches_total"
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

// Business metric help text
const (
	HelpTextExperienceGranted  = "Total experience points granted"
	HelpTextLevelUps           = "Total number of character level-ups"
	HelpTextSkillNodesUnlocked = "Total number of skill nodes unlocked"
	HelpTextItemsEquipped      = "Total number of items equipped"
	HelpTextItemsMoved         = "Total number of item location moves"
	HelpTextItemsUsed          = "Total number of consumable items used"
	HelpTextJobSwitches        = "Total number of current-job switches"
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
	LabelJobClass = "job_class_id"
	LabelSlot     = "slot"
	LabelFrom     = "from"
	LabelTo       = "to"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnrecognizedPayload = "Event payload type not recognized"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)

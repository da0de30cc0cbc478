package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Gathering Metrics
var (
	Harvests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHarvests,
			Help: HelpTextHarvests,
		},
		[]string{LabelResource},
	)

	ItemsGathered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsGathered,
			Help: HelpTextItemsGathered,
		},
		[]string{LabelItem},
	)

	ExperienceGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExperienceGranted,
			Help: HelpTextExperienceGranted,
		},
		[]string{LabelResource},
	)

	SessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsStarted,
			Help: HelpTextSessionsStarted,
		},
		[]string{LabelResource},
	)

	SessionsCancelled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsCancelled,
			Help: HelpTextSessionsCancelled,
		},
		[]string{LabelReason},
	)

	ActionsDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsDenied,
			Help: HelpTextActionsDenied,
		},
		[]string{LabelResource},
	)

	LevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
		[]string{LabelSkill},
	)

	NodesDepleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNodesDepleted,
			Help: HelpTextNodesDepleted,
		},
		[]string{LabelResource},
	)

	NodesRespawned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNodesRespawned,
			Help: HelpTextNodesRespawned,
		},
		[]string{LabelResource},
	)
)

// Authority Metrics
var (
	ApprovalDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameApprovalDecisions,
			Help: HelpTextApprovalDecisions,
		},
		[]string{LabelResult},
	)

	DepletionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDepletionRequests,
			Help: HelpTextDepletionRequests,
		},
		[]string{LabelResult},
	)

	DepletedNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDepletedNodes,
			Help: HelpTextDepletedNodes,
		},
	)

	ConnectedClients = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameConnectedClients,
			Help: HelpTextConnectedClients,
		},
		[]string{LabelKind},
	)

	BroadcastsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBroadcastsDropped,
			Help: HelpTextBroadcastsDropped,
		},
	)
)

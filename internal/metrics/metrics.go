package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Transitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_transitions_total",
			Help: "Total number of funnel step transitions",
		},
		[]string{"from", "to"},
	)

	ActionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_actions_rejected_total",
			Help: "Total number of funnel actions blocked by a guard or rejected as invalid",
		},
		[]string{"action", "reason"},
	)

	LeadSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Total number of leads relayed to the record store by outcome",
		},
		[]string{"outcome"},
	)

	AirtableRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "airtable_request_duration_seconds",
			Help:    "Duration of record store requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
)

// Submission outcomes.
const (
	OutcomeCreated        = "created"
	OutcomeUpstreamError  = "upstream_error"
	OutcomeTransportError = "transport_error"
	OutcomeNotConfigured  = "not_configured"
	OutcomeInvalid        = "invalid"
)

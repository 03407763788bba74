// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_messages_total",
			Help: "Total number of conversation messages handled, by resolved intent and action",
		},
		[]string{"intent", "action"},
	)

	MessageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_message_duration_seconds",
			Help:    "Duration of message handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"intent"},
	)

	CollaboratorFaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_collaborator_faults_total",
			Help: "Total number of collaborator lookups that failed and were turned into fallback replies",
		},
		[]string{"collaborator"},
	)

	CatalogIntents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_catalog_intents",
			Help: "Number of intents in the loaded catalog",
		},
	)

	CatalogFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_catalog_fallbacks_total",
			Help: "Number of times the built-in intent table replaced an unusable catalog source",
		},
		[]string{"reason"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)

// IntentLabel maps an absent intent to a stable label value.
func IntentLabel(intent string) string {
	if intent == "" {
		return "none"
	}
	return intent
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applications_submitted_total",
			Help: "Total number of job applications submitted",
		},
		[]string{"status"}, // status: success, failed
	)

	ApprovalActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_actions_total",
			Help: "Total admin approve/reject actions on staged employer changes",
		},
		[]string{"scope", "action"}, // scope: logo, profile; action: approve, reject
	)

	NotificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_published_total",
			Help: "Total notifications written and broadcast",
		},
		[]string{"status"},
	)

	OTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_requests_total",
			Help: "Total one-time-password requests",
		},
		[]string{"outcome"}, // outcome: sent, rate_limited, failed
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func IncrementApplicationsSubmitted(status string) {
	ApplicationsSubmitted.WithLabelValues(status).Inc()
}

func IncrementApprovalAction(scope, action string) {
	ApprovalActions.WithLabelValues(scope, action).Inc()
}

func IncrementNotificationsPublished(status string) {
	NotificationsPublished.WithLabelValues(status).Inc()
}

func IncrementOTPRequests(outcome string) {
	OTPRequests.WithLabelValues(outcome).Inc()
}

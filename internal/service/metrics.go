package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricenotify",
			Name:      "notifications_total",
			Help:      "Total notification requests by kind, provider and outcome.",
		},
		[]string{"kind", "provider", "outcome"},
	)

	providerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pricenotify",
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of delivery calls to the email provider.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	providerStatusTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricenotify",
			Name:      "provider_responses_total",
			Help:      "Provider responses by status code.",
		},
		[]string{"provider", "status_code"},
	)
)

package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storeops",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, path, and response code.",
	}, []string{"method", "path", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storeops",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and path.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storeops",
		Name:      "mutations_total",
		Help:      "Mutation attempts by entity and outcome.",
	}, []string{"entity", "outcome"})
)

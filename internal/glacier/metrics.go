package glacier

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/chainfeed/internal/custompromauto"
)

var requests = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
	Namespace: custompromauto.Namespace,
	Name:      "glacier_requests_total",
	Help:      "Number of Glacier API requests by endpoint and response status",
}, []string{"endpoint", "status"})

var requestDuration = custompromauto.Auto().NewHistogramVec(prometheus.HistogramOpts{
	Namespace: custompromauto.Namespace,
	Name:      "glacier_request_duration_seconds",
	Help:      "Latency of Glacier API requests that received a response, retries included",
	Buckets:   prometheus.DefBuckets,
}, []string{"endpoint"})

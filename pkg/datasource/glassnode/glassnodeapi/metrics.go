package glassnodeapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestTotalMetrics = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glassnode_api_request_total",
			Help: "Total number of glassnode api requests by endpoint and http status code (0 for network failures)",
		}, []string{"endpoint", "status_code"},
	)

	requestLatencyMetrics = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "glassnode_api_request_duration_milliseconds",
			Help:    "Glassnode api request duration from request to response in milliseconds",
			Buckets: prometheus.ExponentialBuckets(25, 2, 10), // 25ms to ~12.8s
		}, []string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(
		requestTotalMetrics,
		requestLatencyMetrics,
	)
}

func recordRequestMetrics(endpoint string, statusCode int, duration time.Duration) {
	endpoint = metricsEndpointLabel(endpoint)

	requestTotalMetrics.With(prometheus.Labels{
		"endpoint":    endpoint,
		"status_code": strconv.Itoa(statusCode),
	}).Inc()

	requestLatencyMetrics.With(prometheus.Labels{
		"endpoint": endpoint,
	}).Observe(float64(duration.Milliseconds()))
}

// metricsEndpointLabel collapses metric time-series paths to their endpoint prefix to bound the label cardinality.
func metricsEndpointLabel(endpoint string) string {
	for _, prefix := range []string{MetricAddressesEndpoint, MetricsEndpoint} {
		if strings.HasPrefix(endpoint, prefix+"/") {
			return prefix
		}
	}

	return endpoint
}

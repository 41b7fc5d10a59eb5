// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultDisabled = "disabled"
	ResultDropped  = "dropped"
)

var (
	activityOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moments",
		Subsystem: "activity",
		Name:      "operations_total",
		Help:      "Activity store operations partitioned by operation and result.",
	}, []string{"op", "result"})

	notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moments",
		Subsystem: "notification",
		Name:      "dispatch_total",
		Help:      "Notification deliveries partitioned by channel and result.",
	}, []string{"channel", "result"})

	geocodeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "moments",
		Subsystem: "geocode",
		Name:      "duration_seconds",
		Help:      "Latency of address lookups, including cache hits.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source", "result"})
)

func init() {
	prometheus.MustRegister(activityOperations, notifications, geocodeDuration)
}

// RecordActivityOperation counts one store operation.
func RecordActivityOperation(op string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	activityOperations.WithLabelValues(op, result).Inc()
}

// RecordNotification counts one channel delivery attempt.
func RecordNotification(channel, result string) {
	notifications.WithLabelValues(channel, result).Inc()
}

// ObserveGeocode records the latency of one lookup. source is "cache" or "remote".
func ObserveGeocode(source string, started time.Time, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	geocodeDuration.WithLabelValues(source, result).Observe(time.Since(started).Seconds())
}

// NotificationCounter exposes the counter for tests.
func NotificationCounter(channel, result string) prometheus.Counter {
	return notifications.WithLabelValues(channel, result)
}

// ActivityOperationCounter exposes the counter for tests.
func ActivityOperationCounter(op, result string) prometheus.Counter {
	return activityOperations.WithLabelValues(op, result)
}

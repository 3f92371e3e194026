// Package metrics holds the Prometheus instrumentation of the detector. All collectors register with the
// default registry, so hosts expose them by serving promhttp.Handler().
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicksTotal counts movement updates processed.
	TicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ascent_ticks_total",
		Help: "Total number of movement updates processed",
	})

	// TickDuration measures how long a single movement update takes to evaluate.
	TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ascent_tick_duration_seconds",
		Help:    "Time spent evaluating a single movement update",
		Buckets: []float64{.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005},
	})

	// FlagsTotal counts failed evaluations by check and reason.
	FlagsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ascent_flags_total",
		Help: "Total number of failed check evaluations",
	}, []string{"check", "reason"})

	// CancelsTotal counts updates whose cancellation was requested by the escalation engine.
	CancelsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ascent_cancels_total",
		Help: "Total number of movement updates cancelled",
	}, []string{"check"})

	// RemovalsTotal counts removals scheduled.
	RemovalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ascent_removals_total",
		Help: "Total number of removals scheduled",
	}, []string{"check"})

	// NotificationsTotal counts notification deliveries by result.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ascent_notifications_total",
		Help: "Total number of violation notifications delivered to observers",
	}, []string{"result"})

	// Sessions is the current number of tracked sessions.
	Sessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ascent_sessions",
		Help: "Current number of tracked sessions",
	})
)

// RecordTick records a processed movement update that took the duration passed.
func RecordTick(d time.Duration) {
	TicksTotal.Inc()
	TickDuration.Observe(d.Seconds())
}

// RecordFlag records a failed evaluation.
func RecordFlag(check, reason string) {
	FlagsTotal.WithLabelValues(check, reason).Inc()
}

// RecordCancel records a cancelled update.
func RecordCancel(check string) {
	CancelsTotal.WithLabelValues(check).Inc()
}

// RecordRemoval records a scheduled removal.
func RecordRemoval(check string) {
	RemovalsTotal.WithLabelValues(check).Inc()
}

// RecordNotification records the result of delivering a notification to a single observer.
func RecordNotification(delivered bool) {
	result := "delivered"
	if !delivered {
		result = "failed"
	}
	NotificationsTotal.WithLabelValues(result).Inc()
}

package messaging

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fourpaws/shelter-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// METRICS
// ══════════════════════════════════════════════════════════════════════════════

// Metrics tracks bus throughput and handler latency.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	published       *prometheus.CounterVec
	handlerDuration *prometheus.HistogramVec
	handlerFailures *prometheus.CounterVec
}

// NewMetrics registers the event bus collectors in reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shelter",
			Subsystem: "eventbus",
			Name:      "published_total",
			Help:      "Events published on the bus.",
		}, []string{"event_type"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shelter",
			Subsystem: "eventbus",
			Name:      "handler_duration_seconds",
			Help:      "Time spent in event handlers.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shelter",
			Subsystem: "eventbus",
			Name:      "handler_failures_total",
			Help:      "Handler invocations that returned an error.",
		}, []string{"event_type"}),
	}

	for _, c := range []prometheus.Collector{m.published, m.handlerDuration, m.handlerFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordPublish(eventType shared.EventType) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(string(eventType)).Inc()
}

func (m *Metrics) recordHandler(eventType shared.EventType, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.handlerDuration.WithLabelValues(string(eventType)).Observe(d.Seconds())
	if err != nil {
		m.handlerFailures.WithLabelValues(string(eventType)).Inc()
	}
}

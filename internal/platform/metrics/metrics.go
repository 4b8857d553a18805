package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del servicio sobre un Registry propio
// (no el global, así los tests pueden crear varios).
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	dosesGenerated   prometheus.Counter
	regenerations    prometheus.Counter
	dosesMarked      *prometheus.CounterVec
	markConflicts    prometheus.Counter
	lowStockDetected prometheus.Counter
	notifyFailures   prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dosesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dose_schedules_generated_total",
			Help: "Dose instances created by schedule generation.",
		}),
		regenerations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_regenerations_total",
			Help: "Future schedule regenerations after schedule-affecting updates.",
		}),
		dosesMarked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "doses_marked_total",
			Help: "Dose outcomes recorded, by status.",
		}, []string{"status"}),
		markConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dose_mark_conflicts_total",
			Help: "Mark attempts rejected because the dose was no longer pending.",
		}),
		lowStockDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medication_low_stock_total",
			Help: "Low stock conditions detected after a taken dose.",
		}),
		notifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notification_dispatch_failures_total",
			Help: "Events the notification dispatcher could not accept.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpLatency,
		m.dosesGenerated,
		m.regenerations,
		m.dosesMarked,
		m.markConflicts,
		m.lowStockDetected,
		m.notifyFailures,
	)
	return m
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Los métodos toleran receiver nil para que los servicios no tengan que chequear.

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) DosesGenerated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.dosesGenerated.Add(float64(n))
}

func (m *Metrics) Regenerated() {
	if m == nil {
		return
	}
	m.regenerations.Inc()
}

func (m *Metrics) DoseMarked(status string) {
	if m == nil {
		return
	}
	m.dosesMarked.WithLabelValues(status).Inc()
}

func (m *Metrics) MarkConflict() {
	if m == nil {
		return
	}
	m.markConflicts.Inc()
}

func (m *Metrics) LowStock() {
	if m == nil {
		return
	}
	m.lowStockDetected.Inc()
}

func (m *Metrics) NotifyFailed() {
	if m == nil {
		return
	}
	m.notifyFailures.Inc()
}

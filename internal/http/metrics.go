package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds every collector the service exports on /metrics.
type Metrics struct {
	SearchesTotal       *prometheus.CounterVec
	LinkResolutions     *prometheus.CounterVec
	UpstreamErrorsTotal *prometheus.CounterVec
	DegradationsTotal   *prometheus.CounterVec
	CacheLookupsTotal   *prometheus.CounterVec
	RateLimitedTotal    prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them, together with the Go
// and process collectors, on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arch1ve_searches_total",
				Help: "Total number of unified searches by outcome",
			},
			[]string{"status"},
		),
		LinkResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arch1ve_link_resolutions_total",
				Help: "Total number of link resolutions by outcome",
			},
			[]string{"status"},
		),
		UpstreamErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arch1ve_upstream_errors_total",
				Help: "Total number of failed upstream provider calls that failed a request",
			},
			[]string{"platform"},
		),
		DegradationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arch1ve_degradations_total",
				Help: "Total number of searches answered without an optional provider",
			},
			[]string{"platform", "reason"},
		),
		CacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arch1ve_cache_lookups_total",
				Help: "Total number of result cache lookups",
			},
			[]string{"platform", "result"},
		),
		RateLimitedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "arch1ve_rate_limited_total",
				Help: "Total number of requests rejected by the per-client limit",
			},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arch1ve_request_duration_seconds",
				Help:    "Time spent serving HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "code"},
		),
	}

	reg.MustRegister(
		metrics.SearchesTotal,
		metrics.LinkResolutions,
		metrics.UpstreamErrorsTotal,
		metrics.DegradationsTotal,
		metrics.CacheLookupsTotal,
		metrics.RateLimitedTotal,
		metrics.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return metrics
}

func (m *Metrics) RecordSearch(status string) {
	m.SearchesTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordLinkResolution(status string) {
	m.LinkResolutions.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordUpstreamError(platform string) {
	m.UpstreamErrorsTotal.WithLabelValues(platform).Inc()
}

func (m *Metrics) RecordDegradation(platform, reason string) {
	m.DegradationsTotal.WithLabelValues(platform, reason).Inc()
}

func (m *Metrics) RecordRateLimited() {
	m.RateLimitedTotal.Inc()
}

func (m *Metrics) RecordRequest(route, code string, duration time.Duration) {
	m.RequestDuration.WithLabelValues(route, code).Observe(duration.Seconds())
}

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds the app's Prometheus metrics. A nil *Registry is valid and
// records nothing, which keeps scripts and tests free of metric setup.
type Registry struct {
	*prometheus.Registry

	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	backtestsTotal    *prometheus.CounterVec
	backtestDuration  prometheus.Histogram
	factorScoresTotal *prometheus.CounterVec
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
		backtestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "factorlab_backtests_total",
				Help: "Total number of factor backtests by outcome",
			},
			[]string{"status"},
		),
		backtestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "factorlab_backtest_duration_seconds",
				Help:    "Factor backtest duration in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		factorScoresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "factorlab_factor_scores_total",
				Help: "Factor scores evaluated during backtests by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(
		r.httpRequestsTotal,
		r.httpRequestDuration,
		r.httpRequestsInFlight,
		r.backtestsTotal,
		r.backtestDuration,
		r.factorScoresTotal,
	)

	return r
}

func (r *Registry) RecordRequest(method, route string, status int, seconds float64) {
	if r == nil {
		return
	}
	r.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func (r *Registry) InFlightInc() {
	if r == nil {
		return
	}
	r.httpRequestsInFlight.Inc()
}

func (r *Registry) InFlightDec() {
	if r == nil {
		return
	}
	r.httpRequestsInFlight.Dec()
}

// RecordBacktest counts a finished backtest. status is "ok", "invalid",
// "timeout" or "error".
func (r *Registry) RecordBacktest(status string, seconds float64) {
	if r == nil {
		return
	}
	r.backtestsTotal.WithLabelValues(status).Inc()
	r.backtestDuration.Observe(seconds)
}

func (r *Registry) RecordFactorScores(scored, failed int) {
	if r == nil {
		return
	}
	r.factorScoresTotal.WithLabelValues("scored").Add(float64(scored))
	r.factorScoresTotal.WithLabelValues("failed").Add(float64(failed))
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// http
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	GaugeRequests              prometheus.Gauge
	HistogramRequestDuration   *prometheus.HistogramVec

	// progression
	CounterEligibilityChecks  *prometheus.CounterVec
	CounterPromotions         *prometheus.CounterVec
	CounterPromotionFailures  prometheus.Counter
	CounterProfileStoreErrors *prometheus.CounterVec
	CounterWorkoutSessions    *prometheus.CounterVec
	CounterAuthCacheLookups   *prometheus.CounterVec

	GaugeLifeSignal prometheus.Gauge
}

func NewTestManager() *Manager {
	return NewManager("tracking", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("tracking", "test_server", reg), reg
}

var requestDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// NewManager registers every collector of the service on reg, all under the same
// namespace and subsystem.
func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	f := promauto.With(reg)
	counter := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help}
	}
	gauge := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help}
	}

	return &Manager{
		CounterRequests: f.NewCounterVec(
			counter("request", "The total number of incoming requests"),
			[]string{"method", "status"},
		),
		CounterHandleRequestPanic: f.NewCounter(
			counter("handle_request_panic", "The total number of serve request panics"),
		),
		CounterRateLimitedRequests: f.NewCounter(
			counter("rate_limited_requests", "The total number of rate limited requests"),
		),
		GaugeRequests: f.NewGauge(
			gauge("current_requests", "Current number of requests served"),
		),
		HistogramRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Histogram of response time for requests in seconds",
			Buckets:   requestDurationBuckets,
		}, []string{"route", "method", "status_code"}),

		CounterEligibilityChecks: f.NewCounterVec(
			counter("progression_eligibility_checks", "Promotion eligibility checks by result (eligible, ineligible, max_level, unknown_level, unavailable)"),
			[]string{"result"},
		),
		CounterPromotions: f.NewCounterVec(
			counter("progression_promotions", "Successful fitness level promotions"),
			[]string{"level", "trigger"},
		),
		CounterPromotionFailures: f.NewCounter(
			counter("progression_promotion_failures", "Promotions that could not be written back to the profile store"),
		),
		CounterProfileStoreErrors: f.NewCounterVec(
			counter("profile_store_errors", "Failed calls to the user profile store"),
			[]string{"operation"},
		),
		CounterWorkoutSessions: f.NewCounterVec(
			counter("workout_sessions", "Recorded workout sessions by type"),
			[]string{"session_type", "completed"},
		),
		CounterAuthCacheLookups: f.NewCounterVec(
			counter("auth_token_cache_lookups", "Auth token validations by the layer that answered (local, redis, auth_service)"),
			[]string{"source"},
		),

		GaugeLifeSignal: f.NewGauge(
			gauge("life_signal", "Shows whether the service is alive"),
		),
	}
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	ProfilesBuiltTotal   *prometheus.CounterVec
	ProfileBuildDuration prometheus.Histogram
	ProfileCacheHits     prometheus.Counter
	ProfileCacheMisses   prometheus.Counter

	ScenariosGeneratedTotal    prometheus.Counter
	ScenarioValidationFailures prometheus.Counter
	EpisodeDerivationsTotal    *prometheus.CounterVec
	AssessmentsRecordedTotal   *prometheus.CounterVec

	DBConnections prometheus.Gauge
}

func NewCollector(serviceName string) *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		ProfilesBuiltTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "bundling",
			Name:      "profiles_built_total",
			Help:      "Total needs profiles built, by derived episode type.",
		}, []string{"episode_type"}),

		ProfileBuildDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "bundling",
			Name:      "profile_build_duration_seconds",
			Help:      "Needs profile build latency including source fetches.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}),

		ProfileCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "bundling",
			Name:      "profile_cache_hits_total",
			Help:      "Profile cache hits.",
		}),

		ProfileCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "bundling",
			Name:      "profile_cache_misses_total",
			Help:      "Profile cache misses.",
		}),

		ScenariosGeneratedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "bundling",
			Name:      "scenarios_generated_total",
			Help:      "Total scenario bundles generated.",
		}),

		ScenarioValidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "bundling",
			Name:      "scenario_validation_failures_total",
			Help:      "Scenarios returned with valid=false after safety checks.",
		}),

		EpisodeDerivationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "bundling",
			Name:      "episode_derivations_total",
			Help:      "Episode type derivations by cascade stage that fired.",
		}, []string{"stage"}),

		AssessmentsRecordedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "clinical",
			Name:      "assessments_recorded_total",
			Help:      "Assessment records created, by instrument type.",
		}, []string{"type"}),

		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "db",
			Name:      "open_connections",
			Help:      "Current number of open database connections.",
		}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

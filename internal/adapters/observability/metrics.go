package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "hotelmerge"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "external_requests_total", Help: "Outbound supplier requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del|purge
	)

	ReconcileRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "reconcile_runs_total", Help: "Reconciliation runs by outcome."},
		[]string{"outcome"}, // ok|dry_run|fetch_failed|malformed|persist_failed
	)
	ReconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "reconcile_duration_seconds",
			Help:    "End-to-end run duration: fetch, merge and replace.",
			Buckets: prometheus.DefBuckets,
		},
	)
	ReconciledHotels = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "reconciled_hotels", Help: "Hotels produced by the last run."},
	)
	SourceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "source_failures_total", Help: "Supplier fetches that yielded no data."},
		[]string{"supplier"},
	)
	RecordsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "records_skipped_total", Help: "Supplier listings without an identity key."},
		[]string{"supplier"},
	)
)

// Serve exposes the default registry on addr; empty addr disables it.
func Serve(addr string) {
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		ReconcileRuns, ReconcileDuration, ReconciledHotels, SourceFailures, RecordsSkipped,
	}
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors()...)
	return reg
}

// RegisterDefault registers all collectors on the default registry used by Serve.
func RegisterDefault() {
	for _, c := range collectors() {
		if err := prometheus.Register(c); err != nil {
			if _, dup := err.(prometheus.AlreadyRegisteredError); !dup {
				log.Warn().Err(err).Msg("metrics register failed")
			}
		}
	}
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveRun(outcome string, hotels int, dur time.Duration) {
	ReconcileRuns.WithLabelValues(outcome).Inc()
	ReconcileDuration.Observe(dur.Seconds())
	if outcome == "ok" {
		ReconciledHotels.Set(float64(hotels))
	}
}

func ObserveSourceFailure(supplier string) {
	SourceFailures.WithLabelValues(supplier).Inc()
}

func ObserveSkipped(supplier string, n int) {
	if n > 0 {
		RecordsSkipped.WithLabelValues(supplier).Add(float64(n))
	}
}

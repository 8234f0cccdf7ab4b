// Package metrics provides Prometheus instrumentation for the API server.
//
// Metrics registered here:
//
//	courtside_http_requests_total            counter: requests by method/route/status
//	courtside_http_request_duration_seconds  histogram: latency by method/route
//	courtside_provider_requests_total        counter: stats.nba.com calls by endpoint/result
//	courtside_provider_request_duration_seconds histogram: stats.nba.com latency
//	courtside_cache_lookups_total            counter: response cache hits and misses
//	courtside_directory_players              gauge: players in the search index
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPRequests counts HTTP requests by method, route pattern and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "courtside_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

// HTTPDuration tracks HTTP request latency.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "courtside_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

// ProviderRequests counts stats.nba.com calls by endpoint and result.
var ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "courtside_provider_requests_total",
	Help: "stats.nba.com requests by endpoint and result.",
}, []string{"endpoint", "result"})

// ProviderDuration tracks stats.nba.com latency. The provider is slow, so
// the buckets reach further than the HTTP ones.
var ProviderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "courtside_provider_request_duration_seconds",
	Help:    "stats.nba.com request latency in seconds.",
	Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
}, []string{"endpoint"})

// CacheLookups counts response cache lookups.
var CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "courtside_cache_lookups_total",
	Help: "Response cache lookups by result.",
}, []string{"result"})

// DirectoryPlayers is the size of the in-memory player search index.
var DirectoryPlayers = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "courtside_directory_players",
	Help: "Players loaded in the search index.",
})

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveProvider records one provider call.
func ObserveProvider(endpoint string, err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ProviderRequests.WithLabelValues(endpoint, result).Inc()
	ProviderDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveCache records a cache hit or miss.
func ObserveCache(hit bool) {
	if hit {
		CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	CacheLookups.WithLabelValues("miss").Inc()
}

// Middleware records request count and latency, labelled by the chi route
// pattern so path parameters do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

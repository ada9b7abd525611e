package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cinenotes", Name: "operations_total", Help: "Catalog service operations by entity, operation and outcome."},
		[]string{"entity", "operation", "outcome"},
	)
	MovieCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cinenotes", Name: "movie_cache_lookups_total", Help: "Movie cache lookups by result (hit, miss, error)."},
		[]string{"result"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "cinenotes", Name: "http_request_duration_seconds", Help: "HTTP request latency by method, route and status.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Operations)
	reg.MustRegister(MovieCacheLookups)
	reg.MustRegister(HTTPRequestDuration)
}

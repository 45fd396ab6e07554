package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream call outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeHTTPError    = "http_error"
	OutcomeNetworkError = "network_error"
	OutcomeParseError   = "parse_error"
)

var (
	// UpstreamRequests counts outbound mirror requests by host and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "passproxy_upstream_requests_total",
		Help: "Outbound mirror requests by host and outcome.",
	}, []string{"host", "outcome"})

	// CacheHits counts cache lookups that were served without recomputation.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "passproxy_cache_hits_total",
		Help: "Cache lookups served from the cache.",
	}, []string{"cache"})

	// CacheMisses counts cache lookups that triggered aggregation.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "passproxy_cache_misses_total",
		Help: "Cache lookups that fell through to the aggregator.",
	}, []string{"cache"})
)

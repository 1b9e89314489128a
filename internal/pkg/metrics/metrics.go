package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendRequests 按最终使用的策略计数
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by resolved strategy",
		},
		[]string{"strategy"},
	)

	// RecommendFallbacks 回退到热门的次数, reason: error/short
	RecommendFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_fallback_total",
			Help: "Total number of hot backfills by primary strategy and reason",
		},
		[]string{"strategy", "reason"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Recommendation latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"strategy"},
	)

	// CacheResults cache: profile/hot, result: hit/miss/error
	CacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cache_total",
			Help: "Cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests through circuit breaker by result (success/failure/rejected)",
		},
		[]string{"name", "result"},
	)

	// BehaviorEvents kafka 消费到的行为事件
	BehaviorEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behavior_events_consumed_total",
			Help: "Behavior binlog rows consumed by table",
		},
		[]string{"table"},
	)
)

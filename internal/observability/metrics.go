package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foms_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foms_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ListStrategyTotal counts request listings by the retrieval strategy served.
	ListStrategyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foms_request_list_strategy_total",
		Help: "Total request listings by retrieval strategy",
	}, []string{"strategy"})

	// StatusTransitionsTotal counts status transitions by target status code.
	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foms_status_transitions_total",
		Help: "Total request status transitions by target status",
	}, []string{"status"})

	// WebSocketConnectionsTotal is the gauge of active event-stream connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foms_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketDropsTotal counts event messages dropped due to slow clients.
	WebSocketDropsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foms_websocket_drops_total",
		Help: "Total number of WebSocket messages dropped",
	}, []string{"reason"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

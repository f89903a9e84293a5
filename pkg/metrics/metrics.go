package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AlarmsCreated counts persisted alarms by event type.
	AlarmsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amateurs_alarms_created_total",
			Help: "Total number of alarms persisted",
		},
		[]string{"type"},
	)

	// LivePushes counts live delivery attempts by result (delivered|skipped|failed).
	LivePushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amateurs_live_pushes_total",
			Help: "Total number of live push attempts",
		},
		[]string{"result"},
	)

	// LiveConnections tracks currently registered live channels.
	LiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "amateurs_live_connections",
			Help: "Number of registered live channels",
		},
	)

	// HeartbeatPruned counts channels removed during heartbeat sweeps.
	HeartbeatPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "amateurs_heartbeat_pruned_total",
			Help: "Total number of dead channels pruned by heartbeat",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "amateurs_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "doodleboard_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by statement kind.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "doodleboard_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// DoodlesSubmitted counts successfully stored doodles.
	DoodlesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doodleboard_doodles_submitted_total",
		Help: "Total number of doodles submitted and recorded",
	})

	// OrphanedUploads counts image files written to disk whose record creation failed.
	OrphanedUploads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doodleboard_orphaned_uploads_total",
		Help: "Total number of uploaded images left without a doodle record",
	})

	// EngagementEvents counts likes and comments by type.
	EngagementEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "doodleboard_engagement_events_total",
		Help: "Total number of engagement events by type",
	}, []string{"type"})

	// SessionsIssued counts server-side sessions created at login.
	SessionsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doodleboard_sessions_issued_total",
		Help: "Total number of login sessions issued",
	})
)

// ObserveQuery records the latency of a database statement. The operation
// label is the leading SQL keyword (select, insert, ...).
func ObserveQuery(sql string, elapsed time.Duration) {
	op := "other"
	for i, r := range sql {
		if r == ' ' || r == '\n' || r == '\t' {
			if i > 0 {
				op = strings.ToLower(sql[:i])
			}
			break
		}
	}
	switch op {
	case "select", "insert", "update", "delete":
	default:
		op = "other"
	}
	DatabaseQueryLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

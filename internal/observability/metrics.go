package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/julianstephens/habitual/internal/models"
)

var (
	habitsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "habitual",
		Subsystem: "habits",
		Name:      "created_total",
		Help:      "Habits created, by kind.",
	}, []string{"kind"})
	habitsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "habitual",
		Subsystem: "habits",
		Name:      "deleted_total",
		Help:      "Habit delete requests served.",
	})
	logsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "habitual",
		Subsystem: "logs",
		Name:      "recorded_total",
		Help:      "Log entries recorded, by habit kind.",
	}, []string{"kind"})
	httpRequests = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "habitual",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)

func init() {
	prometheus.MustRegister(habitsCreated, habitsDeleted, logsRecorded, httpRequests)
}

// RecordHabitCreated counts a new habit of the given kind.
func RecordHabitCreated(kind models.Kind) {
	habitsCreated.WithLabelValues(string(kind)).Inc()
}

// RecordHabitDeleted counts a served delete.
func RecordHabitDeleted() {
	habitsDeleted.Inc()
}

// RecordLog counts a log entry for a habit of the given kind.
func RecordLog(kind models.Kind) {
	logsRecorded.WithLabelValues(string(kind)).Inc()
}

// ObserveRequest records one HTTP request.
func ObserveRequest(method, route string, code int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	notesPurgedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notes_purged_total",
			Help: "Total number of trashed notes permanently deleted by the purge scheduler",
		},
	)

	trashEligibleGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "notes_trash_eligible",
			Help: "Number of trashed notes eligible for purge at last startup scan",
		},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func Init() {
	prometheus.MustRegister(notesPurgedCounter)
	prometheus.MustRegister(trashEligibleGauge)
	prometheus.MustRegister(requestDuration)
}

// Handler returns the scrape endpoint handler for the side metrics server.
func Handler() http.Handler {
	return promhttp.Handler()
}

func AddNotesPurged(count int64) {
	notesPurgedCounter.Add(float64(count))
}

func SetTrashEligible(count int64) {
	trashEligibleGauge.Set(float64(count))
}

func ObserveRequest(method, path, status string, seconds float64) {
	requestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

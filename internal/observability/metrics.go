package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "parking",
		Name:      "searches_total",
		Help:      "Total nearby searches executed",
	})
	SearchResultsSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "parking",
		Name:      "search_results_size",
		Help:      "Result-list size distribution per search",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})
	GeocodeFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "parking",
		Name:      "geocode_failures_total",
		Help:      "Total failed geocode resolutions",
	})
	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "parking",
		Name:      "bookings_total",
		Help:      "Total booking confirmations by outcome",
	}, []string{"outcome"})
	AvailabilityEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "parking",
		Name:      "availability_events_total",
		Help:      "Total availability events applied by the worker",
	})
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "parking",
		Name:      "active_search_sessions",
		Help:      "Currently open search sessions",
	})
)

// Serve exposes /metrics on its own listener so the API port stays clean.
func Serve(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profile_search",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "profile_search",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	searches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profile_search",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Searches executed, by mode and kind (live or full).",
		},
		[]string{"mode", "kind"},
	)

	searchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profile_search",
			Subsystem: "search",
			Name:      "failures_total",
			Help:      "Searches that fell back to an empty result, by failing stage.",
		},
		[]string{"stage"},
	)

	searchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "profile_search",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Time spent fetching and ranking candidates.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"kind"},
	)

	searchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "profile_search",
			Subsystem: "search",
			Name:      "candidates",
			Help:      "Number of candidate profiles scored per search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
	)

	prunedLogs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "profile_search",
			Subsystem: "scheduler",
			Name:      "pruned_search_logs_total",
			Help:      "Search log rows removed by the retention task.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		searches,
		searchFailures,
		searchDuration,
		searchCandidates,
		prunedLogs,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps next with request counting and latency, labelled by
// the matched chi route pattern.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordSearch records one completed search.
func RecordSearch(mode string, live bool, candidates int, duration time.Duration) {
	kind := searchKind(live)
	searches.WithLabelValues(mode, kind).Inc()
	searchDuration.WithLabelValues(kind).Observe(duration.Seconds())
	searchCandidates.Observe(float64(candidates))
}

// RecordSearchFailure counts a search that degraded to an empty result.
// stage is "fetch" or "score".
func RecordSearchFailure(stage string) {
	searchFailures.WithLabelValues(stage).Inc()
}

// RecordPrunedLogs adds n to the pruned search log counter.
func RecordPrunedLogs(n int64) {
	if n > 0 {
		prunedLogs.Add(float64(n))
	}
}

func searchKind(live bool) string {
	if live {
		return "live"
	}
	return "full"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

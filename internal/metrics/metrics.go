package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/3-lines-studio/plusfiles/internal/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unroutedPage = "unrouted"

// Metrics records per-page request counts and render latency on its own
// registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plusfiles_requests_total",
				Help: "Page requests handled, by page id and status code",
			},
			[]string{"page", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "plusfiles_render_duration_seconds",
				Help:    "Time spent resolving and rendering a page",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"page"},
		),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) ObserveRequest(page core.PageID, status int, elapsed time.Duration) {
	label := string(page)
	if label == "" {
		label = unroutedPage
	}
	m.requests.WithLabelValues(label, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
